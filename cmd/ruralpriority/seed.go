package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/RuralPriority/internal/config"
	"github.com/MikeSquared-Agency/RuralPriority/internal/store"
)

func newSeedCmd(configPath *string) *cobra.Command {
	var (
		input       string
		databaseURL string
		migrate     bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Bulk-load a village data CSV into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			url := firstNonEmpty(databaseURL, cfg.Database.URL)
			if url == "" {
				return errors.New("database URL required (--database-url or database.url)")
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			logger := newLogger(os.Stderr, cfg.Logging)

			if migrate {
				if err := store.Migrate(url); err != nil {
					return err
				}
			}

			table, err := store.NewFileSource(input).Load(ctx)
			if err != nil {
				return err
			}

			db, err := store.NewPostgresStore(ctx, url, cfg.Source.Table)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := db.Import(ctx, table)
			if err != nil {
				return fmt.Errorf("seed %s: %w", input, err)
			}
			logger.Info("seeded village data", "rows", n, "table", cfg.Source.Table, "input", input)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "CSV file to load (required)")
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "Postgres connection URL (overrides config)")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply migrations before loading")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
