package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"wastevision/internal/model"
)

// RemoteDetector delegates inference to an HTTP model server.
//
// The image is sent as PNG in the multipart field "file" together with the
// conf, iou and max_det query parameters. The server answers with
//
//	{"detections": [{"name", "class", "confidence", "xmin", "ymin", "xmax", "ymax"}]}
//
// Thresholds are re-applied locally so a lenient server cannot widen them.
type RemoteDetector struct {
	name     string
	endpoint string
	opts     Options
	client   *http.Client
}

// NewRemoteDetector creates a detector posting to endpoint.
func NewRemoteDetector(name, endpoint string, opts Options, timeout time.Duration) (*RemoteDetector, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid inference url %q", endpoint)
	}
	return &RemoteDetector{
		name:     name,
		endpoint: endpoint,
		opts:     opts,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

type remoteDetection struct {
	Name       string  `json:"name"`
	Class      int     `json:"class"`
	Confidence float64 `json:"confidence"`
	XMin       float64 `json:"xmin"`
	YMin       float64 `json:"ymin"`
	XMax       float64 `json:"xmax"`
	YMax       float64 `json:"ymax"`
}

type remoteResponse struct {
	Detections []remoteDetection `json:"detections"`
}

func (d *RemoteDetector) Name() string { return d.name }

// Detect uploads img and converts the server's answer into detections.
func (d *RemoteDetector) Detect(ctx context.Context, img image.Image) ([]model.Detection, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "image.png")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if err := png.Encode(part, img); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.requestURL(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request to %s: %w", d.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("inference %s failed with status %d: %s", d.name, resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	dets := make([]model.Detection, 0, len(out.Detections))
	for _, rd := range out.Detections {
		dets = append(dets, model.Detection{
			Label:      rd.Name,
			ClassID:    rd.Class,
			Confidence: rd.Confidence,
			Box:        model.BoundingBox{XMin: rd.XMin, YMin: rd.YMin, XMax: rd.XMax, YMax: rd.YMax},
		})
	}
	b := img.Bounds()
	return Postprocess(dets, d.opts, b.Dx(), b.Dy()), nil
}

// Ping checks the server's /health endpoint on the same host.
func (d *RemoteDetector) Ping(ctx context.Context) error {
	u, _ := url.Parse(d.endpoint)
	u.Path = "/health"
	u.RawQuery = ""

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s unhealthy: %d", d.name, resp.StatusCode)
	}
	return nil
}

// Close releases idle connections.
func (d *RemoteDetector) Close() error {
	d.client.CloseIdleConnections()
	return nil
}

func (d *RemoteDetector) requestURL() string {
	u, _ := url.Parse(d.endpoint)
	q := u.Query()
	q.Set("conf", strconv.FormatFloat(d.opts.Confidence, 'f', -1, 64))
	q.Set("iou", strconv.FormatFloat(d.opts.IoU, 'f', -1, 64))
	q.Set("max_det", strconv.Itoa(d.opts.MaxDetections))
	u.RawQuery = q.Encode()
	return u.String()
}
