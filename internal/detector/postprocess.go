package detector

import (
	"math"
	"sort"

	"wastevision/internal/model"
)

// IoU returns the intersection-over-union of two boxes.
func IoU(a, b model.BoundingBox) float64 {
	x1 := math.Max(a.XMin, b.XMin)
	y1 := math.Max(a.YMin, b.YMin)
	x2 := math.Min(a.XMax, b.XMax)
	y2 := math.Min(a.YMax, b.YMax)

	inter := math.Max(0, x2-x1) * math.Max(0, y2-y1)
	union := a.Area() + b.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// Postprocess filters by confidence, suppresses overlapping boxes of the same
// label, caps the result at MaxDetections and clamps boxes to bounds.
// The input slice is not modified.
func Postprocess(dets []model.Detection, opts Options, width, height int) []model.Detection {
	cands := make([]model.Detection, 0, len(dets))
	for _, d := range dets {
		if d.Confidence > opts.Confidence {
			cands = append(cands, d)
		}
	}

	kept := nonMaxSuppression(cands, opts.IoU, opts.MaxDetections)
	for i := range kept {
		kept[i].Box = clampBox(kept[i].Box, width, height)
	}
	return kept
}

func nonMaxSuppression(cands []model.Detection, iouThreshold float64, maxDet int) []model.Detection {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Confidence > cands[j].Confidence
	})

	kept := make([]model.Detection, 0, len(cands))
	suppressed := make([]bool, len(cands))
	for i := range cands {
		if suppressed[i] {
			continue
		}
		kept = append(kept, cands[i])
		if maxDet > 0 && len(kept) >= maxDet {
			break
		}
		for j := i + 1; j < len(cands); j++ {
			if suppressed[j] || cands[j].Label != cands[i].Label {
				continue
			}
			if IoU(cands[i].Box, cands[j].Box) > iouThreshold {
				suppressed[j] = true
			}
		}
	}
	return kept
}

func clampBox(b model.BoundingBox, width, height int) model.BoundingBox {
	if width <= 0 || height <= 0 {
		return b
	}
	w, h := float64(width), float64(height)
	return model.BoundingBox{
		XMin: clamp(b.XMin, 0, w),
		YMin: clamp(b.YMin, 0, h),
		XMax: clamp(b.XMax, 0, w),
		YMax: clamp(b.YMax, 0, h),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
