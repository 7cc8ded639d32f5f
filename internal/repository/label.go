// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g. postgres) inside this directory.
package repository

import (
	"context"

	"wastevision/internal/model"
)

// LabelRepository reads the label -> waste category mapping.
// No business logic here, strictly persistence operations.
type LabelRepository interface {
	// ListLabels returns every stored mapping keyed by label.
	ListLabels(ctx context.Context) (map[string]model.WasteCategory, error)

	// Count returns the number of stored mappings.
	Count(ctx context.Context) (int, error)

	// Upsert inserts the given mappings, leaving existing labels untouched.
	// It returns the number of rows actually inserted.
	Upsert(ctx context.Context, entries map[string]model.WasteCategory) (int, error)
}
