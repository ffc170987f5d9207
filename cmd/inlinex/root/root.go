package root

import (
	"github.com/flarebyte/inline-transforms/cmd/inlinex/list"
	"github.com/flarebyte/inline-transforms/cmd/inlinex/run"
	"github.com/flarebyte/inline-transforms/cmd/inlinex/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for inlinex.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inlinex",
		Short: "Apply inline directive transforms to content",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(version.NewCmd())
	cmd.AddCommand(run.NewCmd())
	cmd.AddCommand(list.NewCmd())

	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}
