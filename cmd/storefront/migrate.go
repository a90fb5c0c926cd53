package main

import (
	"fmt"
	"log/slog"

	"github.com/frameart/storefront/internal/config"
	repository "github.com/frameart/storefront/internal/repositories"
	"github.com/spf13/cobra"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or roll back the postgres schema",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(repository.MigrateUp), string(repository.MigrateDown)},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := repository.MigrationDirection(args[0])
			if direction != repository.MigrateUp && direction != repository.MigrateDown {
				return fmt.Errorf("unknown migration direction %q", args[0])
			}

			if opts.cfg.Store.Backend != config.StoreBackendPostgres {
				return fmt.Errorf("migrations only apply to the postgres store backend, got %q", opts.cfg.Store.Backend)
			}

			repo, err := repository.NewPostgres(&opts.cfg.Database)
			if err != nil {
				return err
			}
			defer repo.Close()

			if err := repository.RunMigrations(repo.DB, direction); err != nil {
				return err
			}

			slog.Info("✅ Migrations applied", slog.String("direction", string(direction)))

			return nil
		},
	}
}
