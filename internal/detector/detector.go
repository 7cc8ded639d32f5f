// Package detector runs pretrained object-detection models over decoded images.
//
// Models are black boxes: a Detector turns an image into labelled boxes and the
// shared post-processing in this package applies the confidence threshold,
// class-aware non-maximum suppression and the detection cap, so every backend
// honours Options the same way.
package detector

import (
	"context"
	"image"

	"wastevision/internal/model"
)

// Detector finds objects in an image.
type Detector interface {
	// Name identifies the model in logs and metrics.
	Name() string
	// Detect returns detections in source image pixels, highest confidence first.
	Detect(ctx context.Context, img image.Image) ([]model.Detection, error)
	// Close releases any resources held by the detector.
	Close() error
}

// Pinger is implemented by detectors that depend on a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options holds the fixed thresholds applied to every inference.
type Options struct {
	// Confidence is the minimum score a detection must exceed.
	Confidence float64
	// IoU is the overlap above which a lower-scored box of the same class is suppressed.
	IoU float64
	// MaxDetections caps the number of detections returned per image.
	MaxDetections int
}

// DefaultOptions returns the thresholds the service ships with.
func DefaultOptions() Options {
	return Options{
		Confidence:    0.15,
		IoU:           0.15,
		MaxDetections: 1000,
	}
}
