package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/slugkit/pkg/slug"
)

func newGenerateCmd() *cobra.Command {
	return LeafCommand{
		Use:   "generate [text...]",
		Short: "Generate a slug from text",
		Long: "Generate a slug from the arguments joined by spaces. With no arguments,\n" +
			"every non-empty line of standard input produces one slug.",
		BoolFlags: engineBoolFlags,
		StrFlags:  engineStrFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := engineOptions(cmd)
			if err != nil {
				return err
			}

			if len(args) > 0 {
				return printSlug(cmd, opts, strings.Join(args, " "))
			}

			sc := bufio.NewScanner(cmd.InOrStdin())
			for line := 1; sc.Scan(); line++ {
				if strings.TrimSpace(sc.Text()) == "" {
					continue
				}
				if err := printSlug(cmd, opts, sc.Text()); err != nil {
					return fmt.Errorf("line %d: %w", line, err)
				}
			}
			return sc.Err()
		},
	}.Build()
}

func printSlug(cmd *cobra.Command, opts slug.Options, text string) error {
	s, err := slug.GenerateWithOptions(opts, text)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), s)
	return nil
}
