// Package classification maps detector labels onto waste categories.
package classification

import (
	"image/color"
	"sort"

	"wastevision/internal/model"
)

// Table is an immutable label -> category lookup built once at process start.
// It is safe for concurrent use.
type Table struct {
	entries map[string]model.WasteCategory
}

// NewTable copies entries into a new Table. Later changes to entries are not observed.
func NewTable(entries map[string]model.WasteCategory) *Table {
	m := make(map[string]model.WasteCategory, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return &Table{entries: m}
}

// Classify returns the category for label, or model.Unknown when the label is absent.
func (t *Table) Classify(label string) model.WasteCategory {
	if c, ok := t.entries[label]; ok {
		return c
	}
	return model.Unknown
}

// Len returns the number of labels in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Labels returns all labels in sorted order.
func (t *Table) Labels() []string {
	out := make([]string, 0, len(t.entries))
	for k := range t.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Entries returns a copy of the underlying mapping.
func (t *Table) Entries() map[string]model.WasteCategory {
	m := make(map[string]model.WasteCategory, len(t.entries))
	for k, v := range t.entries {
		m[k] = v
	}
	return m
}

var (
	Green  = color.RGBA{R: 0, G: 128, B: 0, A: 255}
	Blue   = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Red    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Gray   = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	Orange = color.RGBA{R: 255, G: 165, B: 0, A: 255}
)

// CategoryColor returns the overlay colour used for a category.
func CategoryColor(c model.WasteCategory) color.RGBA {
	switch c {
	case model.Recyclable:
		return Green
	case model.Biodegradable:
		return Blue
	case model.Hazardous:
		return Red
	case model.NotWaste:
		return Orange
	default:
		return Gray
	}
}
