// Package monitoring provides pluggable metrics collection for the
// reactivity core.
//
// The monitoring system is entirely optional and has zero overhead when
// disabled. By default, a NoOp implementation is used which performs no
// operations.
//
// This package is an alias for github.com/newbpydev/reactor/pkg/reactor/monitoring,
// providing a cleaner import path for hosts embedding the core.
//
// # Features
//
//   - Track/trigger call counts by target kind and operation
//   - Effect run count and duration histograms
//   - Computed recompute counts
//   - Dependency-set size sampling
//   - Prometheus metrics integration
//   - Effect-run profiling
//
// # Example
//
//	import "github.com/newbpydev/reactor/monitoring"
//
//	func main() {
//	    // Enable Prometheus metrics
//	    metrics := monitoring.NewPrometheusMetrics(prometheus.DefaultRegisterer)
//	    monitoring.SetGlobalMetrics(metrics)
//
//	    // Enable pprof profiling on port 6060
//	    monitoring.EnableProfiling(":6060")
//	    defer monitoring.StopProfiling()
//	}
//
// # Zero Overhead
//
// When monitoring is disabled (default), there is zero overhead:
//   - No allocations
//   - No mutex contention
//   - No function calls (inlined NoOp methods)
//   - No performance impact
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/newbpydev/reactor/pkg/reactor/monitoring"
)

// =============================================================================
// Global Metrics
// =============================================================================

// Collector defines the interface for collecting metrics from the
// reactivity core.
type Collector = monitoring.Collector

// GetGlobalMetrics returns the current global metrics implementation.
var GetGlobalMetrics = monitoring.GetGlobalMetrics

// SetGlobalMetrics sets the global metrics implementation.
var SetGlobalMetrics = monitoring.SetGlobalMetrics

// NoopCollector is a no-op implementation with zero overhead.
type NoopCollector = monitoring.NoopCollector

// =============================================================================
// Prometheus Integration
// =============================================================================

// PrometheusMetrics implements Collector using client_golang.
type PrometheusMetrics = monitoring.PrometheusMetrics

// NewPrometheusMetrics creates a new Prometheus-backed Collector registered
// against reg.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	return monitoring.NewPrometheusMetrics(reg)
}

// =============================================================================
// Profiling
// =============================================================================

// ProfileEffects runs effect-run profiling for the specified duration.
func ProfileEffects(duration time.Duration) *EffectProfile {
	return monitoring.ProfileEffects(duration)
}

// EffectProfile contains profiling results for effect runs.
type EffectProfile = monitoring.EffectProfile

// CallStats contains statistics about one named group of calls.
type CallStats = monitoring.CallStats

// =============================================================================
// pprof Profiling Endpoints
// =============================================================================

// EnableProfiling starts a pprof HTTP server on the specified address.
// Returns an error if profiling is already enabled or the address is empty;
// a failure to bind the address is not returned.
var EnableProfiling = monitoring.EnableProfiling

// StopProfiling stops the pprof HTTP server if running.
var StopProfiling = monitoring.StopProfiling

// IsProfilingEnabled returns whether pprof profiling is currently enabled.
var IsProfilingEnabled = monitoring.IsProfilingEnabled

// GetProfilingAddress returns the address of the pprof server if enabled.
var GetProfilingAddress = monitoring.GetProfilingAddress
