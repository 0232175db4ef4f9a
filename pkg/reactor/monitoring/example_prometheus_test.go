package monitoring_test

import (
	"fmt"
	"time"

	"github.com/newbpydev/reactor/pkg/reactor/monitoring"
	"github.com/prometheus/client_golang/prometheus"
)

// ExampleNewPrometheusMetrics demonstrates creating Prometheus metrics with a custom registry.
func ExampleNewPrometheusMetrics() {
	// Create custom registry to avoid conflicts
	reg := prometheus.NewRegistry()

	// Create Prometheus metrics using custom registry
	metrics := monitoring.NewPrometheusMetrics(reg)

	// Set as global metrics
	monitoring.SetGlobalMetrics(metrics)

	// In a real app, expose metrics endpoint:
	// http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	// http.ListenAndServe(":2112", nil)

	fmt.Println("Prometheus metrics initialized")
	// Output: Prometheus metrics initialized
}

// ExampleNewPrometheusMetrics_customRegistry demonstrates using a custom registry.
func ExampleNewPrometheusMetrics_customRegistry() {
	// Create a custom registry for isolated metrics
	reg := prometheus.NewRegistry()

	// Create Prometheus metrics with custom registry
	metrics := monitoring.NewPrometheusMetrics(reg)

	// Set as global metrics
	monitoring.SetGlobalMetrics(metrics)

	// Use the registry with your metrics
	_ = metrics // Metrics ready to use

	fmt.Println("Custom Prometheus registry initialized")
	// Output: Custom Prometheus registry initialized
}

// Example_prometheusMetricsRecordTrack demonstrates recording dependency tracking.
func Example_prometheusMetricsRecordTrack() {
	reg := prometheus.NewRegistry()
	metrics := monitoring.NewPrometheusMetrics(reg)

	// Record dependency tracking calls
	metrics.RecordTrack("ref", "GET")
	metrics.RecordTrack("record", "GET")
	metrics.RecordTrack("ref", "GET")

	// Metrics are now available at /metrics endpoint
	// Example output in Prometheus format:
	// reactor_track_total{op="GET",target_kind="record"} 1
	// reactor_track_total{op="GET",target_kind="ref"} 2

	fmt.Println("Recorded dependency tracking")
	// Output: Recorded dependency tracking
}

// Example_prometheusMetricsRecordTrigger demonstrates tracking change propagation.
func Example_prometheusMetricsRecordTrigger() {
	reg := prometheus.NewRegistry()
	metrics := monitoring.NewPrometheusMetrics(reg)

	// Simulate triggers from various operations
	metrics.RecordTrigger("ref", "SET")
	metrics.RecordTrigger("list", "ADD")
	metrics.RecordTrigger("list", "DELETE")

	// Calculate trigger rates in Prometheus queries:
	// rate(reactor_trigger_total[5m])

	fmt.Println("Recorded trigger metrics")
	// Output: Recorded trigger metrics
}

// Example_prometheusMetricsRecordEffectRun demonstrates tracking effect execution time.
func Example_prometheusMetricsRecordEffectRun() {
	reg := prometheus.NewRegistry()
	metrics := monitoring.NewPrometheusMetrics(reg)

	// Record various effect run durations
	metrics.RecordEffectRun(100 * time.Microsecond)
	metrics.RecordEffectRun(250 * time.Microsecond)
	metrics.RecordEffectRun(50 * time.Microsecond)

	// Use Prometheus histogram_quantile to analyze:
	// histogram_quantile(0.95, rate(reactor_effect_run_duration_seconds_bucket[5m]))
	// This shows 95th percentile effect run duration

	fmt.Println("Recorded effect run durations")
	// Output: Recorded effect run durations
}

// Example_prometheusMetricsRecordDepSetSize demonstrates tracking dependency fan-out.
func Example_prometheusMetricsRecordDepSetSize() {
	reg := prometheus.NewRegistry()
	metrics := monitoring.NewPrometheusMetrics(reg)

	// Record dependency-set sizes observed after track/cleanup passes
	metrics.RecordDepSetSize(1)
	metrics.RecordDepSetSize(3)
	metrics.RecordDepSetSize(12)

	// Analyze fan-out patterns in Prometheus:
	// histogram_quantile(0.99, sum(rate(reactor_dep_set_size_bucket[5m])) by (le))

	fmt.Println("Recorded dependency set size metrics")
	// Output: Recorded dependency set size metrics
}

// Example_prometheusMetricsComplete demonstrates a complete setup with metrics endpoint.
func Example_prometheusMetricsComplete() {
	// Create custom registry
	reg := prometheus.NewRegistry()

	// Create Prometheus metrics
	metrics := monitoring.NewPrometheusMetrics(reg)

	// Set as global metrics so the reactivity core automatically records
	monitoring.SetGlobalMetrics(metrics)

	// Simulate some reactivity core activity
	metrics.RecordTrack("ref", "GET")
	metrics.RecordTrigger("ref", "SET")
	metrics.RecordEffectRun(100 * time.Nanosecond)
	metrics.RecordComputedRecompute()
	metrics.RecordDepSetSize(3)

	// In a real application, expose metrics endpoint:
	// http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	// http.ListenAndServe(":2112", nil)
	//
	// Then configure Prometheus to scrape:
	// scrape_configs:
	//   - job_name: 'reactor-app'
	//     static_configs:
	//       - targets: ['localhost:2112']

	fmt.Println("Complete Prometheus setup initialized")
	// Output: Complete Prometheus setup initialized
}
