package loader

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	batchStatusSuccess = "success"
	batchStatusError   = "error"
)

// Metrics records every batch dispatched by the loaders of all requests.
type Metrics struct {
	batches       *prometheus.CounterVec
	batchSize     *prometheus.HistogramVec
	batchDuration *prometheus.HistogramVec
}

func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		batches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "checkpoint",
				Subsystem: "loader",
				Name:      "batches_total",
				Help:      "Total number of batched backing-store queries",
			},
			[]string{"entity", "status"},
		),
		batchSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "checkpoint",
				Subsystem: "loader",
				Name:      "batch_size",
				Help:      "Number of ids per batched backing-store query",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 11),
			},
			[]string{"entity"},
		),
		batchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "checkpoint",
				Subsystem: "loader",
				Name:      "batch_duration_seconds",
				Help:      "Duration of batched backing-store queries",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"entity"},
		),
	}

	for _, collector := range []prometheus.Collector{m.batches, m.batchSize, m.batchDuration} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) observeBatch(entity string, size int, duration time.Duration, err error) {
	if m == nil {
		return
	}

	status := batchStatusSuccess
	if err != nil {
		status = batchStatusError
	}

	m.batches.WithLabelValues(entity, status).Inc()
	m.batchSize.WithLabelValues(entity).Observe(float64(size))
	m.batchDuration.WithLabelValues(entity).Observe(duration.Seconds())
}
