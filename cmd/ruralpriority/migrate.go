package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/RuralPriority/internal/config"
	"github.com/MikeSquared-Agency/RuralPriority/internal/store"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the village_problems table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			url := firstNonEmpty(databaseURL, cfg.Database.URL)
			if url == "" {
				return errors.New("database URL required (--database-url or database.url)")
			}

			logger := newLogger(os.Stderr, cfg.Logging)
			if err := store.Migrate(url); err != nil {
				return err
			}
			logger.Info("migrations applied")
			return nil
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "Postgres connection URL (overrides config)")
	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
