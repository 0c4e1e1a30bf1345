package cli

import (
	"github.com/spf13/cobra"
)

func newDoctorCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration, credentials, and local stores",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := buildContainer(cmd, opts)
			if err != nil {
				return err
			}
			renderChecks(cmd.OutOrStdout(), container.Doctor.Run(cmd.Context()))
			return nil
		},
	}
}
