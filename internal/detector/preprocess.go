package detector

import (
	"image"
	"math"

	"github.com/nfnt/resize"
)

// padValue is the grey YOLOv5 uses to fill letterbox borders.
const padValue = float32(114.0 / 255.0)

// prepareInput letterboxes img into a size x size square and returns it as a
// normalised NCHW float32 RGB tensor body.
func prepareInput(img image.Image, size int) ([]float32, letterbox) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	scale := math.Min(float64(size)/float64(w), float64(size)/float64(h))
	nw := int(math.Round(float64(w) * scale))
	nh := int(math.Round(float64(h) * scale))
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	padX := (size - nw) / 2
	padY := (size - nh) / 2

	resized := resize.Resize(uint(nw), uint(nh), img, resize.Bilinear)
	rb := resized.Bounds()

	stride := size * size
	input := make([]float32, 3*stride)
	for i := range input {
		input[i] = padValue
	}

	for y := 0; y < nh; y++ {
		for x := 0; x < nw; x++ {
			r, g, bl, _ := resized.At(rb.Min.X+x, rb.Min.Y+y).RGBA()
			idx := (y+padY)*size + (x + padX)
			input[idx] = float32(r>>8) / 255.0
			input[idx+stride] = float32(g>>8) / 255.0
			input[idx+2*stride] = float32(bl>>8) / 255.0
		}
	}

	return input, letterbox{scale: scale, padX: float64(padX), padY: float64(padY)}
}
