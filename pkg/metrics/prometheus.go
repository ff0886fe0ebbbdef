package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	batchesIngested *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	bufferDepth     *prometheus.GaugeVec
	latency         *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		batchesIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "somnoscan_batches_ingested_total",
				Help: "Total number of sample batches ingested",
			},
			[]string{"device", "signal"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "somnoscan_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		bufferDepth: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "somnoscan_live_buffer_samples",
				Help: "Current sample depth of a live signal buffer",
			},
			[]string{"device", "signal"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "somnoscan_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		cacheLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "somnoscan_cache_lookups_total",
				Help: "Raster cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

// RecordBatchIngested counts one accepted sample batch.
func (r *Recorder) RecordBatchIngested(device, signal string) {
	r.batchesIngested.WithLabelValues(device, signal).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordBufferDepth records the sample depth of a live buffer.
func (r *Recorder) RecordBufferDepth(device, signal string, samples int) {
	r.bufferDepth.WithLabelValues(device, signal).Set(float64(samples))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordCacheLookup counts a raster cache hit or miss.
func (r *Recorder) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}
