package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"wastevision/internal/model"
	"wastevision/internal/repository"
)

// LabelPostgres is a PostgreSQL implementation of repository.LabelRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type LabelPostgres struct {
	db *sql.DB
}

// NewLabelPostgres creates a new LabelPostgres repository.
func NewLabelPostgres(db *sql.DB) *LabelPostgres {
	return &LabelPostgres{db: db}
}

var _ repository.LabelRepository = (*LabelPostgres)(nil)

// ListLabels reads the whole waste_labels table.
func (r *LabelPostgres) ListLabels(ctx context.Context) (map[string]model.WasteCategory, error) {
	const q = `
		SELECT label, category
		FROM waste_labels
		ORDER BY label
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]model.WasteCategory)
	for rows.Next() {
		var label, category string
		if err := rows.Scan(&label, &category); err != nil {
			return nil, err
		}
		c, err := model.ParseWasteCategory(category)
		if err != nil {
			return nil, fmt.Errorf("label %q: %w", label, err)
		}
		out[label] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of rows in waste_labels.
func (r *LabelPostgres) Count(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(*) FROM waste_labels`
	var n int
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Upsert inserts missing labels inside a single transaction. Existing rows are kept as-is.
func (r *LabelPostgres) Upsert(ctx context.Context, entries map[string]model.WasteCategory) (int, error) {
	const q = `
		INSERT INTO waste_labels (label, category)
		VALUES ($1, $2)
		ON CONFLICT (label) DO NOTHING
	`
	// deterministic statement order
	labels := make([]string, 0, len(entries))
	for k := range entries {
		labels = append(labels, k)
	}
	sort.Strings(labels)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, label := range labels {
		res, err := tx.ExecContext(ctx, q, label, string(entries[label]))
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert label %q: %w", label, err)
		}
		n, _ := res.RowsAffected()
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}
