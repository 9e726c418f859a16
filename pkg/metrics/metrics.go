// Package metrics exposes Prometheus instruments for the extraction
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExtractionsTotal counts finished extractions by final method and
	// confidence.
	ExtractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "receipt_engine",
		Name:      "extractions_total",
		Help:      "Finished receipt extractions by method and confidence.",
	}, []string{"method", "confidence"})

	// ExtractionDuration observes end-to-end extraction latency.
	ExtractionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "receipt_engine",
		Name:      "extraction_duration_seconds",
		Help:      "End-to-end receipt extraction latency.",
		Buckets:   prometheus.DefBuckets,
	})

	// VisionFailures counts vision path errors; a rising rate with a
	// steady extraction rate means the engine is silently degrading to
	// local-only results.
	VisionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "receipt_engine",
		Name:      "vision_failures_total",
		Help:      "Vision extraction attempts that returned an error.",
	})

	// ItemsExtracted observes how many items each extraction produced.
	ItemsExtracted = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "receipt_engine",
		Name:      "items_extracted",
		Help:      "Line items per finished extraction.",
		Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
	})
)
