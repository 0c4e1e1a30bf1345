package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := buildContainer(cmd, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			cfg := container.Settings
			fmt.Fprintf(out, "config file:      %s\n", container.Loader.Path())
			fmt.Fprintf(out, "default provider: %s\n", cfg.Preferences.DefaultProvider)
			for _, p := range cfg.Providers {
				fmt.Fprintf(out, "provider %-12s model=%s auth_env=%s\n", p.Name, p.ModelID, p.AuthEnvVar)
			}
			fmt.Fprintf(out, "history:          max=%d window=%d stride=%d\n",
				cfg.History.MaxMessages, cfg.History.WindowSize, cfg.History.WindowStride)
			fmt.Fprintf(out, "memory:           max=%d min_relevance=%.2f save_turns=%v\n",
				cfg.Memory.MaxEntries, cfg.Memory.MinRelevance, cfg.Memory.SaveTurns)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set-provider <name>",
		Short: "Change the default provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := buildContainer(cmd, opts)
			if err != nil {
				return err
			}
			cfg := container.Settings
			if _, ok := cfg.ActiveProvider(args[0]); !ok {
				return fmt.Errorf("no provider named %q is configured", args[0])
			}
			cfg.Preferences.DefaultProvider = args[0]
			if err := container.Loader.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default provider set to %s.\n", args[0])
			return nil
		},
	})
	return cmd
}
