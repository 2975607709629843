package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/slugkit/pkg/slug"
)

func newMakeCmd() *cobra.Command {
	return LeafCommand{
		Use:   "make [text...]",
		Short: "Make a slug, transliterating and never failing",
		Args:  cobra.MinimumNArgs(1),
		BoolFlags: []BoolFlag{
			{Name: "keep-case", Usage: "do not lower-case the result"},
		},
		StrFlags: []StringFlag{
			{Name: "separator", Default: slug.DefaultSeparator, Usage: "string placed between words"},
			{Name: "strip", Usage: "characters removed before processing"},
		},
		IntFlags: []IntFlag{
			{Name: "max-length", Usage: "maximum length in runes (0 = no limit)"},
			{Name: "min-length", Usage: "pad shorter slugs with a random suffix"},
			{Name: "suffix", Usage: "append a random suffix of this length"},
		},
		SliceFlags: []StringSliceFlag{
			{Name: "reserved", Usage: "slugs that get a random suffix instead of being used as-is"},
		},
		MapFlags: []StringMapFlag{
			{Name: "replace", Usage: "replacements applied first, as from=to"},
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			sep, _ := f.GetString("separator")
			strip, _ := f.GetString("strip")
			keepCase, _ := f.GetBool("keep-case")
			maxLen, _ := f.GetInt("max-length")
			minLen, _ := f.GetInt("min-length")
			suffix, _ := f.GetInt("suffix")
			reserved, _ := f.GetStringSlice("reserved")
			replace, _ := f.GetStringToString("replace")

			out := slug.Make(strings.Join(args, " "),
				slug.Separator(sep),
				slug.Lowercase(!keepCase),
				slug.StripChars(strip),
				slug.MaxLength(maxLen),
				slug.MinLength(minLen),
				slug.WithSuffix(suffix),
				slug.ReservedSlugs(reserved...),
				slug.CustomReplace(replace),
			)
			if out == "" {
				return slug.ErrUngeneratable
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}.Build()
}
