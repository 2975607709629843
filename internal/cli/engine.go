package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/slugkit/pkg/slug"
)

// Flags shared by generate, parse and truncate.
var (
	engineStrFlags = []StringFlag{
		{Name: "separator", Default: slug.DefaultSeparator, Usage: "string placed between words (may be empty)"},
		{Name: "filter", Default: slug.FilterLatin1AlphaNum, Usage: "code points kept as words: latin1-alnum, latin1, ascii-alnum"},
	}
	engineBoolFlags = []BoolFlag{
		{Name: "keep-case", Usage: "do not lower-case the input"},
		{Name: "keep-apostrophes", Usage: "treat apostrophes as word breaks instead of deleting them"},
	}
)

func engineOptions(cmd *cobra.Command) (slug.Options, error) {
	sep, _ := cmd.Flags().GetString("separator")
	name, _ := cmd.Flags().GetString("filter")
	keepCase, _ := cmd.Flags().GetBool("keep-case")
	keepApostrophes, _ := cmd.Flags().GetBool("keep-apostrophes")

	filter, err := slug.NamedFilter(name)
	if err != nil {
		return slug.Options{}, err
	}

	opts := slug.Options{
		Filter:           filter,
		Separator:        sep,
		LowerCase:        !keepCase,
		StripApostrophes: !keepApostrophes,
	}
	if err := opts.Validate(); err != nil {
		return slug.Options{}, err
	}
	return opts, nil
}
