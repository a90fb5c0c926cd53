package main

import (
	"log/slog"

	"github.com/frameart/storefront/internal/config"
	"github.com/frameart/storefront/internal/logger"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	ConfigPath string
	cfg        *config.Config
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "storefront",
		Short: "Frame Art storefront API",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfigFromPath(config.ResolvePath(opts.ConfigPath))
			if err != nil {
				return err
			}

			opts.cfg = cfg
			slog.SetDefault(logger.New(cfg.Env))

			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to the config file")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))

	return cmd
}
