// Package metrics exposes Prometheus counters and histograms for
// waterscape's encode/decode and steganographic hide/extract operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "waterscape"

// Registry is the Prometheus registry all waterscape metrics register
// against.
var Registry = prometheus.NewRegistry()

var (
	// ChannelOperations tracks encode/decode/group_encode/group_decode
	// calls by outcome.
	ChannelOperations = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "channel",
			Name:      "operations_total",
			Help:      "Total number of channel operations",
		},
		[]string{"operation", "outcome"}, // encode/decode/group_encode/group_decode, ok/error
	)

	// ChannelOperationDuration tracks channel operation latency.
	ChannelOperationDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "channel",
			Name:      "operation_duration_seconds",
			Help:      "Channel operation duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 15),
		},
		[]string{"operation"},
	)

	// StegoHiddenBytes tracks the size of payloads hidden in a carrier.
	StegoHiddenBytes = promauto.With(Registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "stego",
			Name:      "hidden_bytes",
			Help:      "Size in bytes of envelopes hidden in a carrier",
			Buckets:   prometheus.ExponentialBuckets(16, 2, 12),
		},
	)

	// AEADFailures tracks AEAD tag verification failures, a proxy for
	// "carrier not intended for this recipient".
	AEADFailures = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "crypto",
			Name:      "aead_failures_total",
			Help:      "Total number of AEAD authentication failures",
		},
	)
)

// ObserveChannelOperation records the outcome and duration of a single
// channel operation.
func ObserveChannelOperation(operation, outcome string, durationSeconds float64) {
	ChannelOperations.WithLabelValues(operation, outcome).Inc()
	ChannelOperationDuration.WithLabelValues(operation).Observe(durationSeconds)
}
