package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/slugkit/pkg/slug"
)

func newParseCmd() *cobra.Command {
	return LeafCommand{
		Use:       "parse <text>",
		Short:     "Check that text is already a slug",
		Args:      cobra.ExactArgs(1),
		BoolFlags: engineBoolFlags,
		StrFlags:  engineStrFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := engineOptions(cmd)
			if err != nil {
				return err
			}

			s, err := slug.ParseWithOptions(opts, args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}.Build()
}
