package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariahq/aria/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "aria %s\n", version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, "commit: %s\n", version.Commit)
			}
			if version.BuildDate != "" {
				fmt.Fprintf(out, "built:  %s\n", version.BuildDate)
			}
		},
	}
}
