package list

import (
	"encoding/json"
	"fmt"

	"github.com/flarebyte/inline-transforms/internal/builtin"
	"github.com/spf13/cobra"
)

// NewCmd creates the `inlinex list` command.
func NewCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List the available transforms",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := builtin.NewRegistry(builtin.DefaultOptions()).Names()
			w := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(w).Encode(names)
			}
			for _, n := range names {
				if _, err := fmt.Fprintln(w, n); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print names as a JSON array")
	return cmd
}
