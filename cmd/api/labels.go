package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"wastevision/internal/classification"
	"wastevision/internal/config"
	"wastevision/internal/database"
	"wastevision/internal/database/migration"
	"wastevision/internal/repository/postgres"
)

// loadLabels builds the classification table from the configured source.
// The returned db is nil unless labels come from postgres.
func loadLabels(ctx context.Context, cfg *config.AppConfig, log logrus.FieldLogger) (*classification.Table, *sql.DB, error) {
	switch cfg.LabelsSource {
	case config.LabelsSourceBuiltin:
		return classification.Builtin(), nil, nil

	case config.LabelsSourcePostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			db.Close()
			return nil, nil, err
		}
		table, err := classification.LoadSeeded(ctx, postgres.NewLabelPostgres(db), log)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return table, db, nil

	default:
		return nil, nil, fmt.Errorf("unknown labels source %q", cfg.LabelsSource)
	}
}
