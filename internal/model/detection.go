package model

// BoundingBox is an axis-aligned box in source image pixels.
type BoundingBox struct {
	XMin float64 `json:"xmin"`
	YMin float64 `json:"ymin"`
	XMax float64 `json:"xmax"`
	YMax float64 `json:"ymax"`
}

// Width returns the box width, never negative.
func (b BoundingBox) Width() float64 {
	if b.XMax < b.XMin {
		return 0
	}
	return b.XMax - b.XMin
}

// Height returns the box height, never negative.
func (b BoundingBox) Height() float64 {
	if b.YMax < b.YMin {
		return 0
	}
	return b.YMax - b.YMin
}

// Area returns Width * Height.
func (b BoundingBox) Area() float64 {
	return b.Width() * b.Height()
}

// Detection is one object instance found by a model.
// It is produced per model invocation and never persisted.
type Detection struct {
	Label      string      `json:"label"`
	ClassID    int         `json:"class"`
	Confidence float64     `json:"confidence"`
	Box        BoundingBox `json:"box"`
}

// ItemResult is the wire form of one classified detection.
type ItemResult struct {
	Item       string  `json:"item"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// ModelResult holds the classified detections of one model and, optionally,
// the annotated image as a data URI.
type ModelResult struct {
	Detections []ItemResult `json:"detections"`
	Image      string       `json:"image,omitempty"`
}

// IdentifyResult is the body returned by POST /identify.
type IdentifyResult struct {
	DefaultModel ModelResult  `json:"default_model"`
	CustomModel  *ModelResult `json:"custom_model,omitempty"`
}
