package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSyncCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run a sync pass against the configured backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := buildContainer(cmd, opts)
			if err != nil {
				return err
			}
			if !container.SyncEnabled() {
				return fmt.Errorf("sync is not configured: set sync.endpoint and preferences.user_id")
			}

			report, err := container.Syncer.Sync(cmd.Context(), true)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if report.Skipped != "" {
				fmt.Fprintf(out, "Skipped: %s\n", report.Skipped)
				return nil
			}
			if len(report.Pulled) > 0 {
				fmt.Fprintf(out, "Pulled from remote: %s\n", strings.Join(report.Pulled, ", "))
			}
			if len(report.Pushed) > 0 {
				fmt.Fprintf(out, "Pushed to remote: %s\n", strings.Join(report.Pushed, ", "))
			}
			if len(report.Pulled) == 0 && len(report.Pushed) == 0 {
				fmt.Fprintln(out, "Nothing to sync.")
			}
			return nil
		},
	}
}
