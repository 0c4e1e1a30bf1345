package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ariahq/aria/internal/domain"
)

func newChatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChatSession(cmd, opts)
		},
	}
}

func runChatSession(cmd *cobra.Command, opts *rootOptions) error {
	container, err := buildContainer(cmd, opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Aria is ready. Type your message, or /quit to leave.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			fmt.Fprintln(out, "Bye.")
			return nil
		case "/clear":
			if err := container.History.Clear(); err != nil {
				fmt.Fprintf(out, "could not clear history: %v\n", err)
				continue
			}
			fmt.Fprintln(out, "History cleared.")
			continue
		}

		result, err := container.Chat.Turn(cmd.Context(), domain.TurnRequest{
			Text:             line,
			ProviderOverride: opts.provider,
		})
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		renderReply(out, result)
		container.SyncAfterTurn(cmd.Context())
	}
}
