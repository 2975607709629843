// Package cli implements the slugkit command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewRootCommand builds a fresh command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "slugkit",
		Short:         "Generate, validate and claim URL slugs",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newGenerateCmd(),
		newParseCmd(),
		newTruncateCmd(),
		newMakeCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
