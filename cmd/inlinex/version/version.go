package version

import (
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"github.com/flarebyte/inline-transforms/internal/buildinfo"
	"github.com/spf13/cobra"
)

// NewCmd creates the `inlinex version` command.
func NewCmd() *cobra.Command {
	var short, asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), buildinfo.Short())
				return err
			}
			if !asJSON {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "inlinex %s\n", buildinfo.Summary())
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"version":   buildinfo.Version,
				"commit":    buildinfo.Commit,
				"date":      buildinfo.Date,
				"go":        runtime.Version(),
				"go_os":     runtime.GOOS,
				"go_arch":   runtime.GOARCH,
				"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
			})
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print detailed JSON version info")
	cmd.MarkFlagsMutuallyExclusive("short", "json")
	return cmd
}
