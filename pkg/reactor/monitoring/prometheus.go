package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements Collector using Prometheus for metric collection.
//
// This implementation exposes metrics in the Prometheus format, allowing them to be
// scraped by a Prometheus server and visualized in dashboards like Grafana.
//
// All metrics are prefixed with "reactor_" to avoid naming conflicts.
//
// Metrics exposed:
//   - reactor_track_total: Counter of track calls by target kind and op
//   - reactor_trigger_total: Counter of trigger calls by target kind and op
//   - reactor_effect_run_duration_seconds: Histogram of effect body durations
//   - reactor_computed_recompute_total: Counter of computed recomputations
//   - reactor_dep_set_size: Histogram of dependency set sizes
//
// Thread-safe: All Prometheus collectors are thread-safe by design.
//
// Example:
//
//	func main() {
//	    // Create Prometheus metrics
//	    metrics := monitoring.NewPrometheusMetrics(prometheus.DefaultRegisterer)
//	    monitoring.SetGlobalMetrics(metrics)
//
//	    // Expose metrics endpoint
//	    http.Handle("/metrics", promhttp.Handler())
//	    http.ListenAndServe(":2112", nil)
//	}
type PrometheusMetrics struct {
	trackTotal        *prometheus.CounterVec
	triggerTotal      *prometheus.CounterVec
	effectRunDuration prometheus.Histogram
	computedRecompute prometheus.Counter
	depSetSize        prometheus.Histogram
	registry          prometheus.Registerer
}

// NewPrometheusMetrics creates a new Prometheus metrics collector and registers all metrics.
//
// The provided Registerer is used to register all metrics. You can use:
//   - prometheus.DefaultRegisterer for the global default registry
//   - prometheus.NewRegistry() for a custom isolated registry
//
// All metrics are registered immediately. If any metric fails to register (e.g., duplicate),
// this function will panic. This is intentional for fail-fast behavior at startup.
//
// Example:
//
//	// Use default registry
//	metrics := monitoring.NewPrometheusMetrics(prometheus.DefaultRegisterer)
//
//	// Use custom registry
//	reg := prometheus.NewRegistry()
//	metrics := monitoring.NewPrometheusMetrics(reg)
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	// Labels: target_kind (ref, record, list, map, set), op (GET, SET, ...)
	trackTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reactor_track_total",
			Help: "Total number of dependency tracking calls, partitioned by target kind and operation.",
		},
		[]string{"target_kind", "op"},
	)

	triggerTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reactor_trigger_total",
			Help: "Total number of trigger calls, partitioned by target kind and operation.",
		},
		[]string{"target_kind", "op"},
	)

	effectRunDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reactor_effect_run_duration_seconds",
			Help:    "Histogram of effect function body execution duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	computedRecompute := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reactor_computed_recompute_total",
			Help: "Total number of computed value recomputations.",
		},
	)

	// Buckets chosen for typical dependency fan-out sizes.
	depSetSize := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reactor_dep_set_size",
			Help:    "Histogram of dependency set sizes per target/key pair.",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50, 100},
		},
	)

	// Register all metrics (will panic on duplicate registration - fail fast)
	reg.MustRegister(trackTotal)
	reg.MustRegister(triggerTotal)
	reg.MustRegister(effectRunDuration)
	reg.MustRegister(computedRecompute)
	reg.MustRegister(depSetSize)

	return &PrometheusMetrics{
		trackTotal:        trackTotal,
		triggerTotal:      triggerTotal,
		effectRunDuration: effectRunDuration,
		computedRecompute: computedRecompute,
		depSetSize:        depSetSize,
		registry:          reg,
	}
}

// RecordTrack increments reactor_track_total for the given target kind and op.
//
// Thread-safe: Safe to call concurrently from multiple goroutines.
func (pm *PrometheusMetrics) RecordTrack(targetKind, op string) {
	pm.trackTotal.WithLabelValues(targetKind, op).Inc()
}

// RecordTrigger increments reactor_trigger_total for the given target kind and op.
//
// Thread-safe: Safe to call concurrently from multiple goroutines.
func (pm *PrometheusMetrics) RecordTrigger(targetKind, op string) {
	pm.triggerTotal.WithLabelValues(targetKind, op).Inc()
}

// RecordEffectRun adds an observation to reactor_effect_run_duration_seconds.
//
// Thread-safe: Safe to call concurrently from multiple goroutines.
func (pm *PrometheusMetrics) RecordEffectRun(duration time.Duration) {
	pm.effectRunDuration.Observe(duration.Seconds())
}

// RecordComputedRecompute increments reactor_computed_recompute_total.
//
// Thread-safe: Safe to call concurrently from multiple goroutines.
func (pm *PrometheusMetrics) RecordComputedRecompute() {
	pm.computedRecompute.Inc()
}

// RecordDepSetSize adds an observation to reactor_dep_set_size.
//
// Thread-safe: Safe to call concurrently from multiple goroutines.
func (pm *PrometheusMetrics) RecordDepSetSize(size int) {
	pm.depSetSize.Observe(float64(size))
}
