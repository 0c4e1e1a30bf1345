package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func newCommandsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List custom commands and whether each is active right now",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := buildContainer(cmd, opts)
			if err != nil {
				return err
			}
			cmds, err := container.Commands.Commands(cmd.Context())
			if err != nil {
				return err
			}

			now := time.Now()
			active := make(map[string]bool, len(cmds))
			evaluator := container.Chat.Composer.Evaluator
			for _, c := range cmds {
				active[c.ID] = c.Condition == "" || evaluator.Active(c.Condition, now)
			}
			renderCommands(cmd.OutOrStdout(), cmds, active)
			return nil
		},
	}
}
