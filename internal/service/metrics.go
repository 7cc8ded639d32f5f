package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"wastevision/internal/model"
)

// Metrics counts detections returned by each model.
type Metrics struct {
	detections *prometheus.CounterVec
}

// NewMetrics registers the service metrics on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		detections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wastevision_detections_total",
				Help: "Total number of detections returned, by model and waste category.",
			},
			[]string{"model", "category"},
		),
	}
	if err := reg.Register(m.detections); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observe(modelName string, items []model.ItemResult) {
	if m == nil {
		return
	}
	for _, it := range items {
		m.detections.WithLabelValues(modelName, it.Type).Inc()
	}
}
