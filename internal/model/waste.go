package model

import "fmt"

// WasteCategory is the coarse disposal bucket assigned to a detected label.
type WasteCategory string

const (
	Recyclable    WasteCategory = "recyclable"
	Biodegradable WasteCategory = "biodegradable"
	Hazardous     WasteCategory = "hazardous"
	NotWaste      WasteCategory = "not waste"
	Unknown       WasteCategory = "unknown"
)

// Categories lists every category in a stable order.
var Categories = []WasteCategory{Recyclable, Biodegradable, Hazardous, NotWaste, Unknown}

// Valid reports whether c is one of the known categories.
func (c WasteCategory) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// ParseWasteCategory converts a stored string into a WasteCategory.
func ParseWasteCategory(s string) (WasteCategory, error) {
	c := WasteCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown waste category %q", s)
	}
	return c, nil
}
