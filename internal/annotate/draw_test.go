package annotate

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastevision/internal/model"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	green = color.RGBA{G: 128, A: 255}
)

func whiteImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func TestCaption(t *testing.T) {
	d, err := NewDrawer(DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "bottle (recyclable) 0.87", d.Caption("bottle", model.Recyclable, 0.8712))
	assert.Equal(t, "plastic 0.50", d.Caption("plastic", "", 0.5))

	d, err = NewDrawer(Options{LineThickness: 5, FontSize: 20, HideConfidence: true})
	require.NoError(t, err)
	assert.Equal(t, "banana (biodegradable)", d.Caption("banana", model.Biodegradable, 0.9))

	d, err = NewDrawer(Options{HideLabels: true})
	require.NoError(t, err)
	assert.Empty(t, d.Caption("banana", model.Biodegradable, 0.9))
}

func TestNewDrawer_Defaults(t *testing.T) {
	d, err := NewDrawer(Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, d.opts.LineThickness)
	assert.Equal(t, float64(20), d.opts.FontSize)
}

func TestDraw_DoesNotMutateSource(t *testing.T) {
	src := whiteImage(100, 100)
	d, err := NewDrawer(DefaultOptions())
	require.NoError(t, err)

	out, err := d.Draw(src, []Annotation{{
		Box:     model.BoundingBox{XMin: 10, YMin: 40, XMax: 60, YMax: 90},
		Caption: "bottle 0.90",
		Color:   green,
	}})

	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), out.Bounds())
	assert.Equal(t, white, src.RGBAAt(10, 40))

	// outline, thickness 5
	assert.Equal(t, green, out.RGBAAt(10, 40))
	assert.Equal(t, green, out.RGBAAt(14, 60))
	assert.Equal(t, green, out.RGBAAt(60, 90))
	assert.Equal(t, white, out.RGBAAt(15, 60))
	assert.Equal(t, white, out.RGBAAt(35, 65))
}

func TestDraw_CaptionAboveBox(t *testing.T) {
	d, err := NewDrawer(DefaultOptions())
	require.NoError(t, err)

	out, err := d.Draw(whiteImage(200, 120), []Annotation{{
		Box:     model.BoundingBox{XMin: 20, YMin: 60, XMax: 180, YMax: 110},
		Caption: "WWWW",
		Color:   green,
	}})
	require.NoError(t, err)

	coloured := 0
	for y := 35; y < 60; y++ {
		for x := 20; x < 120; x++ {
			if out.RGBAAt(x, y) != white {
				coloured++
			}
		}
	}
	assert.Greater(t, coloured, 0)
}

func TestDraw_NoAnnotations(t *testing.T) {
	d, err := NewDrawer(DefaultOptions())
	require.NoError(t, err)
	src := whiteImage(8, 8)

	out, err := d.Draw(src, nil)

	require.NoError(t, err)
	assert.Equal(t, src.Pix, out.Pix)
}

func TestDraw_ClipsOutOfBounds(t *testing.T) {
	d, err := NewDrawer(DefaultOptions())
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		_, err := d.Draw(whiteImage(20, 20), []Annotation{{
			Box:     model.BoundingBox{XMin: -10, YMin: -10, XMax: 50, YMax: 50},
			Caption: "car (not waste) 0.99",
			Color:   green,
		}})
		assert.NoError(t, err)
	})
}

func TestEncodePNGAndDataURI(t *testing.T) {
	b, err := EncodePNG(whiteImage(3, 2))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())

	uri := DataURI(b)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, b, raw)
}
