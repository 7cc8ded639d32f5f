package detector

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// cocoNames is the class order of the stock YOLOv5 COCO weights.
var cocoNames = []string{
	"person", "bicycle", "car", "motorcycle", "airplane", "bus", "train", "truck", "boat",
	"traffic light", "fire hydrant", "stop sign", "parking meter", "bench", "bird", "cat",
	"dog", "horse", "sheep", "cow", "elephant", "bear", "zebra", "giraffe", "backpack",
	"umbrella", "handbag", "tie", "suitcase", "frisbee", "skis", "snowboard", "sports ball",
	"kite", "baseball bat", "baseball glove", "skateboard", "surfboard", "tennis racket",
	"bottle", "wine glass", "cup", "fork", "knife", "spoon", "bowl", "banana", "apple",
	"sandwich", "orange", "broccoli", "carrot", "hot dog", "pizza", "donut", "cake", "chair",
	"couch", "potted plant", "bed", "dining table", "toilet", "tv", "laptop", "mouse",
	"remote", "keyboard", "cell phone", "microwave", "oven", "toaster", "sink", "refrigerator",
	"book", "clock", "vase", "scissors", "teddy bear", "hair drier", "toothbrush",
}

// COCONames returns a copy of the 80 COCO class names.
func COCONames() []string {
	out := make([]string, len(cocoNames))
	copy(out, cocoNames)
	return out
}

// LoadNames reads class names, one per line, ignoring blank lines and '#' comments.
// An empty path yields the COCO names.
func LoadNames(path string) ([]string, error) {
	if path == "" {
		return COCONames(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open names file: %w", err)
	}
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read names file: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("names file %s is empty", path)
	}
	return names, nil
}
