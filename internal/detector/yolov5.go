package detector

import (
	"fmt"

	"wastevision/internal/model"
)

// letterbox records how a source image was fitted into the square model input.
type letterbox struct {
	scale      float64
	padX, padY float64
}

// toSource maps a point in model input space back to source pixels.
func (l letterbox) toSource(x, y float64) (float64, float64) {
	return (x - l.padX) / l.scale, (y - l.padY) / l.scale
}

// decodeYOLOv5 turns a raw [1, rows, 5+classes] output tensor into candidates.
// Each row is (cx, cy, w, h, objectness, class scores...). The final score is
// objectness times the best class score; rows not exceeding conf are dropped.
func decodeYOLOv5(out []float32, rows, rowLen int, names []string, conf float64, lb letterbox) ([]model.Detection, error) {
	if rowLen < 6 {
		return nil, fmt.Errorf("unexpected output row length %d", rowLen)
	}
	if len(out) < rows*rowLen {
		return nil, fmt.Errorf("output has %d values, want %d", len(out), rows*rowLen)
	}

	var dets []model.Detection
	for r := 0; r < rows; r++ {
		row := out[r*rowLen : (r+1)*rowLen]
		obj := float64(row[4])
		if obj <= conf {
			continue
		}

		classID, best := 0, float32(0)
		for c, s := range row[5:] {
			if s > best {
				best, classID = s, c
			}
		}
		score := obj * float64(best)
		if score <= conf {
			continue
		}

		cx, cy, w, h := float64(row[0]), float64(row[1]), float64(row[2]), float64(row[3])
		x1, y1 := lb.toSource(cx-w/2, cy-h/2)
		x2, y2 := lb.toSource(cx+w/2, cy+h/2)

		dets = append(dets, model.Detection{
			Label:      className(names, classID),
			ClassID:    classID,
			Confidence: score,
			Box:        model.BoundingBox{XMin: x1, YMin: y1, XMax: x2, YMax: y2},
		})
	}
	return dets, nil
}

func className(names []string, id int) string {
	if id >= 0 && id < len(names) {
		return names[id]
	}
	return fmt.Sprintf("class%d", id)
}
