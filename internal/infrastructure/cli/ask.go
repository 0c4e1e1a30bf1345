package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ariahq/aria/internal/domain"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <text>",
		Short: "Send a single message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := buildContainer(cmd, opts)
			if err != nil {
				return err
			}
			result, err := container.Chat.Turn(cmd.Context(), domain.TurnRequest{
				Text:             strings.Join(args, " "),
				ProviderOverride: opts.provider,
			})
			if err != nil {
				return err
			}
			renderReply(cmd.OutOrStdout(), result)
			container.SyncAfterTurn(cmd.Context())
			return nil
		},
	}
}
