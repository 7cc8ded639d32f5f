package classification

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"wastevision/internal/model"
)

// Source provides label mappings from an external store.
type Source interface {
	ListLabels(ctx context.Context) (map[string]model.WasteCategory, error)
}

// Load reads the full mapping from src once and freezes it into a Table.
// An empty source is treated as an error so a misconfigured store cannot
// silently classify everything as unknown.
func Load(ctx context.Context, src Source) (*Table, error) {
	entries, err := src.ListLabels(ctx)
	if err != nil {
		return nil, fmt.Errorf("load labels: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("load labels: source returned no labels")
	}
	for label, c := range entries {
		if !c.Valid() {
			return nil, fmt.Errorf("load labels: label %q has invalid category %q", label, c)
		}
	}
	return NewTable(entries), nil
}

// Store is a Source that can also be populated.
type Store interface {
	Source
	Count(ctx context.Context) (int, error)
	Upsert(ctx context.Context, entries map[string]model.WasteCategory) (int, error)
}

// LoadSeeded fills an empty store with the built-in mapping and then loads it.
// A store that already holds labels is read as-is.
func LoadSeeded(ctx context.Context, store Store, log logrus.FieldLogger) (*Table, error) {
	n, err := store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count labels: %w", err)
	}
	if n == 0 {
		inserted, err := store.Upsert(ctx, BuiltinEntries())
		if err != nil {
			return nil, fmt.Errorf("seed labels: %w", err)
		}
		log.WithFields(logrus.Fields{
			"component": "classification",
			"event":     "labels_seeded",
			"inserted":  inserted,
		}).Info("seeded label table with built-in mapping")
	}
	return Load(ctx, store)
}
