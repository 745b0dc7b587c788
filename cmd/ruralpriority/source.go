package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MikeSquared-Agency/RuralPriority/internal/config"
	"github.com/MikeSquared-Agency/RuralPriority/internal/store"
)

// openSource builds the row source selected by cfg. The returned close func
// is never nil.
func openSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Source, func(), error) {
	noop := func() {}

	switch cfg.Source.Kind {
	case config.SourceFile:
		logger.Info("reading village data from file", "path", cfg.Source.Path)
		return store.NewFileSource(cfg.Source.Path), noop, nil

	case config.SourceS3:
		r, err := store.NewS3Reader(ctx, store.S3Config{
			Bucket:    cfg.Source.Bucket,
			Region:    cfg.Source.Region,
			Endpoint:  cfg.Source.Endpoint,
			AccessKey: cfg.Source.AccessKey,
			SecretKey: cfg.Source.SecretKey,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("s3 source: %w", err)
		}
		logger.Info("reading village data from s3", "bucket", cfg.Source.Bucket, "key", cfg.Source.Key)
		return store.NewBlobSource(r, cfg.Source.Key), noop, nil

	case config.SourceGCS:
		r, err := store.NewGCSReader(ctx, cfg.Source.Bucket)
		if err != nil {
			return nil, noop, fmt.Errorf("gcs source: %w", err)
		}
		logger.Info("reading village data from gcs", "bucket", cfg.Source.Bucket, "key", cfg.Source.Key)
		closeFn := func() {
			if err := r.Close(); err != nil {
				logger.Warn("gcs client close", "error", err)
			}
		}
		return store.NewBlobSource(r, cfg.Source.Key), closeFn, nil

	case config.SourcePostgres:
		db, err := store.NewPostgresStore(ctx, cfg.Database.URL, cfg.Source.Table)
		if err != nil {
			return nil, noop, fmt.Errorf("postgres source: %w", err)
		}
		logger.Info("reading village data from postgres", "table", cfg.Source.Table)
		return db, func() { _ = db.Close() }, nil
	}
	return nil, noop, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
}
