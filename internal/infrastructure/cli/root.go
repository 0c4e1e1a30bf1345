// Package cli wires the cobra command tree. Commands build the application
// container on demand and stay thin; behavior lives in the application and
// core packages.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ariahq/aria/internal/app"
)

// EnvDebug enables verbose logging when set to any non-empty value.
const EnvDebug = "ARIA_DEBUG"

// NewRootCmd assembles the full command tree. Running the bare binary opens
// the interactive chat session.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "aria",
		Short:         "Aria is a conversational assistant for your terminal",
		Long:          "Aria chats through your configured LLM providers, remembers past conversations,\nand hands selected requests off to connected services.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChatSession(cmd, opts)
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&opts.provider, "provider", "p", "", "provider to use for this invocation")

	root.AddCommand(
		newAskCmd(opts),
		newChatCmd(opts),
		newHistoryCmd(opts),
		newMemoryCmd(opts),
		newCommandsCmd(opts),
		newConfigCmd(opts),
		newSyncCmd(opts),
		newDoctorCmd(opts),
		newVersionCmd(),
	)
	return root
}

type rootOptions struct {
	verbose  bool
	provider string
}

func (o *rootOptions) debug() bool {
	return o.verbose || os.Getenv(EnvDebug) != ""
}

func buildContainer(cmd *cobra.Command, opts *rootOptions) (*app.Container, error) {
	return app.Build(cmd.Context(), opts.debug())
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}
