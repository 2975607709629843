package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/slugkit/pkg/slug"
)

func newTruncateCmd() *cobra.Command {
	return LeafCommand{
		Use:       "truncate <slug>",
		Short:     "Shorten a slug without leaving a dangling separator",
		Args:      cobra.ExactArgs(1),
		BoolFlags: engineBoolFlags,
		StrFlags:  engineStrFlags,
		IntFlags: []IntFlag{
			{Name: "max", Usage: "maximum length in code points (required)"},
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := engineOptions(cmd)
			if err != nil {
				return err
			}
			maxLen, _ := cmd.Flags().GetInt("max")

			s, err := slug.ParseWithOptions(opts, args[0])
			if err != nil {
				return err
			}
			if s, err = slug.TruncateWithOptions(opts, maxLen, s); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}.Build()
}
