package detector

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"wastevision/internal/model"
)

// InitRuntime loads the onnxruntime shared library once per process.
// An empty libPath lets onnxruntime_go use its platform default.
func InitRuntime(libPath string) error {
	if ort.IsInitialized() {
		return nil
	}
	if libPath != "" {
		ort.SetSharedLibraryPath(libPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("initialize onnxruntime: %w", err)
	}
	return nil
}

// ShutdownRuntime releases the onnxruntime environment.
func ShutdownRuntime() error {
	if !ort.IsInitialized() {
		return nil
	}
	return ort.DestroyEnvironment()
}

// ONNXDetector runs a YOLOv5 ONNX export with onnxruntime.
// A session owns fixed input/output tensors, so Detect calls are serialized.
type ONNXDetector struct {
	name      string
	names     []string
	opts      Options
	inputSize int

	mu      sync.Mutex
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
	rows    int
	rowLen  int
}

// NewONNXDetector loads the model at path whole into a new session.
// InitRuntime must have been called first.
func NewONNXDetector(name, path string, names []string, opts Options, inputSize int) (*ONNXDetector, error) {
	inputs, outputs, err := ort.GetInputOutputInfo(path)
	if err != nil {
		return nil, fmt.Errorf("read model io info %s: %w", path, err)
	}
	if len(inputs) != 1 || len(outputs) < 1 {
		return nil, fmt.Errorf("model %s: want 1 input and at least 1 output, got %d/%d", path, len(inputs), len(outputs))
	}

	// static exports fix the input size; it overrides the configured one
	if inDims := inputs[0].Dimensions; len(inDims) == 4 && inDims[2] > 0 && inDims[2] == inDims[3] {
		inputSize = int(inDims[2])
	}
	if inputSize <= 0 {
		return nil, fmt.Errorf("model %s: input size must be positive", path)
	}

	outDims := outputs[0].Dimensions
	if len(outDims) != 3 || outDims[1] <= 0 || outDims[2] <= 0 {
		return nil, fmt.Errorf("model %s: unsupported output shape %v", path, outDims)
	}
	rows, rowLen := int(outDims[1]), int(outDims[2])
	if rowLen-5 != len(names) {
		return nil, fmt.Errorf("model %s predicts %d classes but %d names were given", path, rowLen-5, len(names))
	}

	inputTensor, err := ort.NewTensor(ort.NewShape(1, 3, int64(inputSize), int64(inputSize)), make([]float32, 3*inputSize*inputSize))
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}
	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(rows), int64(rowLen)))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("create output tensor: %w", err)
	}

	options, err := newSessionOptions(runtime.NumCPU())
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, err
	}
	defer options.Destroy()

	session, err := ort.NewAdvancedSession(path,
		[]string{inputs[0].Name},
		[]string{outputs[0].Name},
		[]ort.Value{inputTensor},
		[]ort.Value{outputTensor},
		options,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("create session for %s: %w", path, err)
	}

	return &ONNXDetector{
		name:      name,
		names:     names,
		opts:      opts,
		inputSize: inputSize,
		session:   session,
		input:     inputTensor,
		output:    outputTensor,
		rows:      rows,
		rowLen:    rowLen,
	}, nil
}

// newSessionOptions builds session options using threads intra-op threads.
func newSessionOptions(threads int) (*ort.SessionOptions, error) {
	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("create session options: %w", err)
	}
	if err := options.SetIntraOpNumThreads(threads); err != nil {
		options.Destroy()
		return nil, fmt.Errorf("set intra-op threads to %d: %w", threads, err)
	}
	return options, nil
}

func (d *ONNXDetector) Name() string { return d.name }

// Detect letterboxes img, runs the session and decodes the output.
func (d *ONNXDetector) Detect(ctx context.Context, img image.Image) ([]model.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	input, lb := prepareInput(img, d.inputSize)

	d.mu.Lock()
	copy(d.input.GetData(), input)
	if err := d.session.Run(); err != nil {
		d.mu.Unlock()
		return nil, fmt.Errorf("run %s: %w", d.name, err)
	}
	raw := make([]float32, len(d.output.GetData()))
	copy(raw, d.output.GetData())
	d.mu.Unlock()

	cands, err := decodeYOLOv5(raw, d.rows, d.rowLen, d.names, d.opts.Confidence, lb)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", d.name, err)
	}
	b := img.Bounds()
	return Postprocess(cands, d.opts, b.Dx(), b.Dy()), nil
}

// Close destroys the session and its tensors.
func (d *ONNXDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var firstErr error
	for _, destroy := range []func() error{d.session.Destroy, d.input.Destroy, d.output.Destroy} {
		if err := destroy(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
