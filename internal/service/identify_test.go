package service

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wastevision/internal/annotate"
	"wastevision/internal/classification"
	"wastevision/internal/config"
	detMocks "wastevision/internal/detector/mocks"
	"wastevision/internal/model"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// pngHeader returns a grayscale PNG holding only its signature and IHDR chunk.
// It is enough for image.DecodeConfig while costing a few bytes to send.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth; color type, compression, filter and interlace stay 0

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

type fixture struct {
	custom  *detMocks.MockDetector
	def     *detMocks.MockDetector
	metrics *Metrics
	svc     IdentifyService
}

func newFixture(t *testing.T, cfg config.IdentifyConfig) *fixture {
	t.Helper()
	custom := new(detMocks.MockDetector)
	def := new(detMocks.MockDetector)
	custom.On("Name").Return("custom").Maybe()
	def.On("Name").Return("default").Maybe()

	drawer, err := annotate.NewDrawer(annotate.DefaultOptions())
	require.NoError(t, err)
	metrics, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	log, _ := logtest.NewNullLogger()

	return &fixture{
		custom:  custom,
		def:     def,
		metrics: metrics,
		svc:     NewIdentifyService(custom, def, classification.Builtin(), drawer, cfg, metrics, log),
	}
}

func TestIdentifyService_Identify(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		cfg        config.IdentifyConfig
		body       func(t *testing.T) []byte
		setupMocks func(custom, def *detMocks.MockDetector)
		wantErr    error
		wantErrMsg string
		check      func(t *testing.T, f *fixture, res *model.IdentifyResult)
	}{
		{
			name: "happy path",
			body: func(t *testing.T) []byte { return pngBytes(t, 64, 48) },
			setupMocks: func(custom, def *detMocks.MockDetector) {
				custom.On("Detect", mock.Anything, mock.Anything).Return([]model.Detection{
					{Label: "plastic", Confidence: 0.6, Box: model.BoundingBox{XMin: 1, YMin: 1, XMax: 10, YMax: 10}},
				}, nil)
				def.On("Detect", mock.Anything, mock.Anything).Return([]model.Detection{
					{Label: "bottle", Confidence: 0.9, Box: model.BoundingBox{XMin: 2, YMin: 2, XMax: 30, YMax: 40}},
					{Label: "banana", Confidence: 0.5, Box: model.BoundingBox{XMin: 30, YMin: 5, XMax: 60, YMax: 20}},
					{Label: "flux capacitor", Confidence: 0.3, Box: model.BoundingBox{XMin: 0, YMin: 0, XMax: 5, YMax: 5}},
				}, nil)
			},
			check: func(t *testing.T, f *fixture, res *model.IdentifyResult) {
				assert.Equal(t, []model.ItemResult{
					{Item: "bottle", Type: "recyclable", Confidence: 0.9},
					{Item: "banana", Type: "biodegradable", Confidence: 0.5},
					{Item: "flux capacitor", Type: "unknown", Confidence: 0.3},
				}, res.DefaultModel.Detections)
				assert.Empty(t, res.DefaultModel.Image)
				assert.Nil(t, res.CustomModel)

				assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.detections.WithLabelValues("default", "recyclable")))
				assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.detections.WithLabelValues("custom", "plastic")))
			},
		},
		{
			name: "jpeg with images and custom model",
			cfg:  config.IdentifyConfig{IncludeImages: true, IncludeCustom: true},
			body: func(t *testing.T) []byte {
				var buf bytes.Buffer
				require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 16, 16)), nil))
				return buf.Bytes()
			},
			setupMocks: func(custom, def *detMocks.MockDetector) {
				custom.On("Detect", mock.Anything, mock.Anything).Return([]model.Detection{
					{Label: "can", Confidence: 0.7, Box: model.BoundingBox{XMax: 8, YMax: 8}},
				}, nil)
				def.On("Detect", mock.Anything, mock.Anything).Return(nil, nil)
			},
			check: func(t *testing.T, f *fixture, res *model.IdentifyResult) {
				assert.NotNil(t, res.DefaultModel.Detections)
				assert.Empty(t, res.DefaultModel.Detections)
				assert.True(t, strings.HasPrefix(res.DefaultModel.Image, "data:image/png;base64,"))
				require.NotNil(t, res.CustomModel)
				assert.Equal(t, []model.ItemResult{{Item: "can", Type: "can", Confidence: 0.7}}, res.CustomModel.Detections)
				assert.True(t, strings.HasPrefix(res.CustomModel.Image, "data:image/png;base64,"))
			},
		},
		{
			name:       "dimensions above default pixel limit",
			cfg:        config.IdentifyConfig{MaxImagePixels: config.DefaultMaxImagePixels},
			body:       func(t *testing.T) []byte { return pngHeader(14000, 14000) },
			wantErr:    ErrImageTooLarge,
			wantErrMsg: "decode image: image too large: 14000x14000",
		},
		{
			name:       "dimensions above configured pixel limit",
			cfg:        config.IdentifyConfig{MaxImagePixels: 100},
			body:       func(t *testing.T) []byte { return pngBytes(t, 20, 20) },
			wantErr:    ErrImageTooLarge,
			wantErrMsg: "decode image: image too large: 20x20",
		},
		{
			name:    "empty body",
			body:    func(t *testing.T) []byte { return nil },
			wantErr: ErrEmptyImage,
		},
		{
			name:       "not an image",
			body:       func(t *testing.T) []byte { return []byte("definitely not an image") },
			wantErrMsg: "decode image: image: unknown format",
		},
		{
			name: "custom model fails",
			body: func(t *testing.T) []byte { return pngBytes(t, 8, 8) },
			setupMocks: func(custom, def *detMocks.MockDetector) {
				custom.On("Detect", mock.Anything, mock.Anything).Return(nil, errors.New("session closed"))
			},
			wantErrMsg: "custom model: session closed",
		},
		{
			name: "default model fails",
			body: func(t *testing.T) []byte { return pngBytes(t, 8, 8) },
			setupMocks: func(custom, def *detMocks.MockDetector) {
				custom.On("Detect", mock.Anything, mock.Anything).Return([]model.Detection{}, nil)
				def.On("Detect", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
			},
			wantErrMsg: "default model: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.cfg)
			if tt.setupMocks != nil {
				tt.setupMocks(f.custom, f.def)
			}

			res, err := f.svc.Identify(ctx, bytes.NewReader(tt.body(t)))

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantErrMsg != "" {
					assert.EqualError(t, err, tt.wantErrMsg)
				}
				assert.Nil(t, res)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
				assert.Nil(t, res)
			default:
				require.NoError(t, err)
				tt.check(t, f, res)
			}
			f.custom.AssertExpectations(t)
			f.def.AssertExpectations(t)
		})
	}
}

func TestIdentifyService_NilReader(t *testing.T) {
	f := newFixture(t, config.IdentifyConfig{})

	res, err := f.svc.Identify(context.Background(), nil)

	assert.ErrorIs(t, err, ErrReaderNil)
	assert.Nil(t, res)
}

func TestIdentifyService_ResponseShape(t *testing.T) {
	f := newFixture(t, config.IdentifyConfig{})
	f.custom.On("Detect", mock.Anything, mock.Anything).Return(nil, nil)
	f.def.On("Detect", mock.Anything, mock.Anything).Return(nil, nil)

	res, err := f.svc.Identify(context.Background(), bytes.NewReader(pngBytes(t, 4, 4)))
	require.NoError(t, err)

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"default_model":{"detections":[]}}`, string(b))
}

func TestIdentifyService_Labels(t *testing.T) {
	custom := new(detMocks.MockDetector)
	def := new(detMocks.MockDetector)
	drawer, err := annotate.NewDrawer(annotate.DefaultOptions())
	require.NoError(t, err)
	log, _ := logtest.NewNullLogger()
	table := classification.NewTable(map[string]model.WasteCategory{
		"cup":    model.Recyclable,
		"apple":  model.Biodegradable,
		"laptop": model.Hazardous,
	})

	svc := NewIdentifyService(custom, def, table, drawer, config.IdentifyConfig{}, nil, log)

	assert.Equal(t, []LabelEntry{
		{Label: "apple", Category: model.Biodegradable},
		{Label: "cup", Category: model.Recyclable},
		{Label: "laptop", Category: model.Hazardous},
	}, svc.Labels())
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	assert.Error(t, err)
}
