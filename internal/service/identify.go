package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	// decoders registered for image.Decode
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"wastevision/internal/annotate"
	"wastevision/internal/classification"
	"wastevision/internal/config"
	"wastevision/internal/detector"
	"wastevision/internal/model"
)

var (
	ErrReaderNil     = errors.New("reader is nil")
	ErrEmptyImage    = errors.New("empty image")
	ErrImageTooLarge = errors.New("image too large")
)

const (
	ModelCustom  = "custom"
	ModelDefault = "default"
)

var tracer = otel.Tracer("wastevision/internal/service")

// LabelEntry is one row of the classification table.
type LabelEntry struct {
	Label    string              `json:"label"`
	Category model.WasteCategory `json:"category"`
}

// IdentifyService defines the waste identification use case.
type IdentifyService interface {
	// Identify decodes an uploaded image, runs both detectors over it and
	// classifies the default model's labels into waste categories.
	Identify(ctx context.Context, r io.Reader) (*model.IdentifyResult, error)

	// Labels returns the loaded classification table sorted by label.
	Labels() []LabelEntry
}

type identifyService struct {
	custom  detector.Detector
	def     detector.Detector
	table   *classification.Table
	drawer  *annotate.Drawer
	cfg     config.IdentifyConfig
	metrics *Metrics
	log     logrus.FieldLogger
}

// NewIdentifyService constructs a new IdentifyService. metrics may be nil.
func NewIdentifyService(custom, def detector.Detector, table *classification.Table, drawer *annotate.Drawer, cfg config.IdentifyConfig, metrics *Metrics, log logrus.FieldLogger) IdentifyService {
	return &identifyService{
		custom:  custom,
		def:     def,
		table:   table,
		drawer:  drawer,
		cfg:     cfg,
		metrics: metrics,
		log:     log,
	}
}

func (s *identifyService) Identify(ctx context.Context, r io.Reader) (*model.IdentifyResult, error) {
	if r == nil {
		return nil, ErrReaderNil
	}

	ctx, span := tracer.Start(ctx, "IdentifyService.Identify")
	defer span.End()

	res, err := s.identify(ctx, r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("wastevision.detections.default", len(res.DefaultModel.Detections)),
	)
	return res, nil
}

func (s *identifyService) identify(ctx context.Context, r io.Reader) (*model.IdentifyResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	img, err := s.decode(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	customDets, err := detect(ctx, s.custom, img)
	if err != nil {
		return nil, fmt.Errorf("custom model: %w", err)
	}
	defaultDets, err := detect(ctx, s.def, img)
	if err != nil {
		return nil, fmt.Errorf("default model: %w", err)
	}

	customItems := make([]model.ItemResult, 0, len(customDets))
	customAnns := make([]annotate.Annotation, 0, len(customDets))
	for _, d := range customDets {
		customItems = append(customItems, model.ItemResult{Item: d.Label, Type: d.Label, Confidence: d.Confidence})
		customAnns = append(customAnns, annotate.Annotation{
			Box:     d.Box,
			Caption: s.drawer.Caption(d.Label, "", d.Confidence),
			Color:   classification.Green,
		})
	}

	defaultItems := make([]model.ItemResult, 0, len(defaultDets))
	defaultAnns := make([]annotate.Annotation, 0, len(defaultDets))
	for _, d := range defaultDets {
		cat := s.table.Classify(d.Label)
		defaultItems = append(defaultItems, model.ItemResult{Item: d.Label, Type: string(cat), Confidence: d.Confidence})
		defaultAnns = append(defaultAnns, annotate.Annotation{
			Box:     d.Box,
			Caption: s.drawer.Caption(d.Label, cat, d.Confidence),
			Color:   classification.CategoryColor(cat),
		})
	}

	customImage, err := s.render(ctx, ModelCustom, img, customAnns)
	if err != nil {
		return nil, err
	}
	defaultImage, err := s.render(ctx, ModelDefault, img, defaultAnns)
	if err != nil {
		return nil, err
	}

	s.metrics.observe(ModelCustom, customItems)
	s.metrics.observe(ModelDefault, defaultItems)

	s.log.WithFields(logrus.Fields{
		"component":          "service",
		"event":              "identify_done",
		"custom_detections":  len(customItems),
		"default_detections": len(defaultItems),
	}).Debug("image identified")

	res := &model.IdentifyResult{
		DefaultModel: model.ModelResult{Detections: defaultItems},
	}
	if s.cfg.IncludeImages {
		res.DefaultModel.Image = defaultImage
	}
	if s.cfg.IncludeCustom {
		res.CustomModel = &model.ModelResult{Detections: customItems}
		if s.cfg.IncludeImages {
			res.CustomModel.Image = customImage
		}
	}
	return res, nil
}

func (s *identifyService) Labels() []LabelEntry {
	labels := s.table.Labels()
	out := make([]LabelEntry, 0, len(labels))
	for _, l := range labels {
		out = append(out, LabelEntry{Label: l, Category: s.table.Classify(l)})
	}
	return out
}

// decode reads the header first so oversized images are refused before
// their pixels are allocated.
func (s *identifyService) decode(ctx context.Context, data []byte) (image.Image, error) {
	_, span := tracer.Start(ctx, "decode")
	defer span.End()

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		fail(span, err)
		return nil, err
	}
	if limit := s.cfg.MaxImagePixels; limit > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(limit) {
		err := fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
		fail(span, err)
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		fail(span, err)
		return nil, err
	}
	b := img.Bounds()
	if b.Empty() {
		err := errors.New("image has no pixels")
		fail(span, err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("image.format", format),
		attribute.Int("image.width", b.Dx()),
		attribute.Int("image.height", b.Dy()),
	)
	return img, nil
}

func detect(ctx context.Context, d detector.Detector, img image.Image) ([]model.Detection, error) {
	ctx, span := tracer.Start(ctx, "detect", trace.WithAttributes(attribute.String("model", d.Name())))
	defer span.End()

	dets, err := d.Detect(ctx, img)
	if err != nil {
		fail(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("detections", len(dets)))
	return dets, nil
}

func (s *identifyService) render(ctx context.Context, name string, img image.Image, anns []annotate.Annotation) (string, error) {
	_, span := tracer.Start(ctx, "annotate", trace.WithAttributes(attribute.String("model", name)))
	defer span.End()

	out, err := s.drawer.Draw(img, anns)
	if err != nil {
		fail(span, err)
		return "", fmt.Errorf("draw %s image: %w", name, err)
	}
	b, err := annotate.EncodePNG(out)
	if err != nil {
		fail(span, err)
		return "", fmt.Errorf("encode %s image: %w", name, err)
	}
	return annotate.DataURI(b), nil
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
