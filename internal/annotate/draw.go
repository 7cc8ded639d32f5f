// Package annotate renders detections onto images.
package annotate

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"wastevision/internal/model"
)

// textOffset is how far above the box the caption starts.
const textOffset = 25

// Options controls box and caption rendering.
type Options struct {
	LineThickness  int
	FontSize       float64
	HideLabels     bool
	HideConfidence bool
}

// DefaultOptions returns the rendering used by the service.
func DefaultOptions() Options {
	return Options{LineThickness: 5, FontSize: 20}
}

// Annotation is a single box to draw.
type Annotation struct {
	Box     model.BoundingBox
	Caption string
	Color   color.Color
}

// Drawer draws annotations. It is safe for concurrent use.
type Drawer struct {
	opts Options
	font *sfnt.Font
}

// NewDrawer parses the embedded Go Regular font.
func NewDrawer(opts Options) (*Drawer, error) {
	if opts.LineThickness <= 0 {
		opts.LineThickness = 1
	}
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultOptions().FontSize
	}
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Drawer{opts: opts, font: f}, nil
}

// Caption formats the text for one detection. An empty category gives the
// short "<label> <conf>" form used for the custom model.
func (d *Drawer) Caption(label string, category model.WasteCategory, confidence float64) string {
	if d.opts.HideLabels {
		return ""
	}
	text := label
	if category != "" {
		text = fmt.Sprintf("%s (%s)", label, category)
	}
	if !d.opts.HideConfidence {
		text = fmt.Sprintf("%s %.2f", text, confidence)
	}
	return text
}

// Draw returns a copy of src with every annotation drawn on it.
func (d *Drawer) Draw(src image.Image, anns []Annotation) (*image.RGBA, error) {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)

	if len(anns) == 0 {
		return dst, nil
	}

	// faces cache glyphs and are not safe to share between goroutines
	face, err := opentype.NewFace(d.font, &opentype.FaceOptions{
		Size:    d.opts.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	defer face.Close()

	for _, a := range anns {
		x1, y1 := b.Min.X+int(a.Box.XMin), b.Min.Y+int(a.Box.YMin)
		x2, y2 := b.Min.X+int(a.Box.XMax), b.Min.Y+int(a.Box.YMax)
		drawRect(dst, x1, y1, x2, y2, d.opts.LineThickness, a.Color)
		if a.Caption != "" {
			drawText(dst, face, a.Caption, x1, y1-textOffset, a.Color)
		}
	}
	return dst, nil
}

func drawRect(img *image.RGBA, x1, y1, x2, y2, thickness int, col color.Color) {
	bounds := img.Bounds()

	setPixel := func(x, y int) {
		if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			img.Set(x, y, col)
		}
	}

	for t := 0; t < thickness; t++ {
		for x := x1; x <= x2; x++ {
			setPixel(x, y1+t)
			setPixel(x, y2-t)
		}
		for y := y1; y <= y2; y++ {
			setPixel(x1+t, y)
			setPixel(x2-t, y)
		}
	}
}

// drawText draws s with its top-left corner at (x, y), kept inside the image.
func drawText(img *image.RGBA, face font.Face, s string, x, y int, col color.Color) {
	b := img.Bounds()
	ascent := face.Metrics().Ascent.Ceil()
	if y < b.Min.Y {
		y = b.Min.Y
	}
	if x < b.Min.X {
		x = b.Min.X
	}

	dr := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+ascent),
	}
	dr.DrawString(s)
}
