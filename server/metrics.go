package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal counts assessment requests partitioned by test type
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entropic_requests_total",
			Help: "Total number of entropy assessment requests",
		},
		[]string{"test_type"},
	)

	// durationSeconds measures the duration of entropy assessments
	durationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "entropic_duration_seconds",
			Help:    "Duration of entropy assessment in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
		[]string{"test_type"},
	)

	// errorsTotal counts assessment errors partitioned by test type and classification
	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entropic_errors_total",
			Help: "Total number of entropy assessment errors",
		},
		[]string{"test_type", "error_type"},
	)

	// dataSizeBytes tracks the size of data being assessed
	dataSizeBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "entropic_data_size_bytes",
			Help:    "Size of data being assessed in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 10, 6),
		},
		[]string{"test_type"},
	)

	// minEntropyValue tracks the distribution of assessed min-entropy values
	minEntropyValue = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "entropic_min_entropy_value",
			Help:    "Minimum entropy values calculated",
			Buckets: prometheus.LinearBuckets(0, 0.5, 17),
		},
		[]string{"test_type"},
	)

	// sourceMinEntropy reports the most recent min-entropy per monitored noise source
	sourceMinEntropy = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "entropic_source_min_entropy",
			Help: "Most recent assessed min-entropy per noise source",
		},
		[]string{"id", "hostname"},
	)

	// sourceAlarmsTotal counts health test alarms per monitored noise source
	sourceAlarmsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entropic_source_alarms_total",
			Help: "Health test alarms reported per noise source",
		},
		[]string{"id", "test"},
	)
)
