package detector

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"wastevision/internal/config"
	"wastevision/internal/storage"
)

// New builds the detector for one model according to the configured backend.
// For the onnx backend the artifact is fetched from store first if needed.
func New(ctx context.Context, name string, cfg config.DetectorConfig, mc config.ModelConfig, store storage.Storage, log logrus.FieldLogger) (Detector, error) {
	opts := Options{
		Confidence:    cfg.Confidence,
		IoU:           cfg.IoU,
		MaxDetections: cfg.MaxDetections,
	}

	switch cfg.Backend {
	case config.BackendRemote:
		if mc.URL == "" {
			return nil, fmt.Errorf("%s: inference url is required for the remote backend", name)
		}
		d, err := NewRemoteDetector(name, mc.URL, opts, cfg.RequestTimeout)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return d, nil

	case config.BackendONNX:
		names, err := LoadNames(mc.NamesPath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if err := EnsureArtifact(ctx, store, mc.ObjectKey, mc.Path, log); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if err := InitRuntime(cfg.SharedLibPath); err != nil {
			return nil, err
		}
		d, err := NewONNXDetector(name, mc.Path, names, opts, cfg.InputSize)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return d, nil

	default:
		return nil, fmt.Errorf("unknown detector backend %q", cfg.Backend)
	}
}
