package observability

import (
	"log"
	"sync"
	"time"
)

// ConsoleReporter is a simple error reporter that logs errors to the console.
// It's designed for development and debugging, providing immediate feedback
// about reactivity failures without requiring external services.
//
// The reporter supports two modes:
//   - Verbose mode: Includes full stack traces in output
//   - Non-verbose mode: Only logs error messages without stack traces
//
// Thread-safe: All methods are safe for concurrent use.
//
// Example usage:
//
//	// Development: Verbose console reporter
//	reporter := NewConsoleReporter(true)
//	SetErrorReporter(reporter)
//
//	// Production: Non-verbose console reporter
//	reporter := NewConsoleReporter(false)
//	SetErrorReporter(reporter)
type ConsoleReporter struct {
	// verbose controls whether stack traces are included in output
	verbose bool

	// mu protects concurrent access to log output
	mu sync.Mutex
}

// NewConsoleReporter creates a new console error reporter.
//
// Parameters:
//   - verbose: If true, includes stack traces in error output.
//     If false, only logs error messages.
//
// Thread-safe: The returned reporter is safe for concurrent use.
func NewConsoleReporter(verbose bool) *ConsoleReporter {
	return &ConsoleReporter{
		verbose: verbose,
	}
}

// ReportPanic reports a panic that occurred inside an effect's body.
// Logs the panic to stderr with effect and operation information.
//
// If verbose mode is enabled and a stack trace is available,
// it will be included in the output.
//
// Thread-safe: Safe to call concurrently from multiple goroutines.
//
// Example output (verbose mode):
//
//	2024/01/01 12:00:00 [ERROR] Panic in effect 'effect-123' during op 'run': unexpected error
//	2024/01/01 12:00:00 Stack trace:
//	goroutine 1 [running]:
//	main.main()
//	    /path/to/main.go:42 +0x123
//
// Example output (non-verbose mode):
//
//	2024/01/01 12:00:00 [ERROR] Panic in effect 'effect-123' during op 'run': unexpected error
func (r *ConsoleReporter) ReportPanic(err *EffectPanicError, ctx *ErrorContext) {
	r.mu.Lock()
	defer r.mu.Unlock()

	log.Printf("[ERROR] Panic in effect '%s' during op '%s': %v",
		ctx.EffectID, ctx.Op, err.PanicValue)

	if r.verbose && len(ctx.StackTrace) > 0 {
		log.Printf("Stack trace:\n%s", ctx.StackTrace)
	}
}

// ReportError reports a general reactivity error.
// Logs the error to stderr with target and operation information.
//
// If verbose mode is enabled and a stack trace is available,
// it will be included in the output.
//
// Thread-safe: Safe to call concurrently from multiple goroutines.
//
// Example output (verbose mode):
//
//	2024/01/01 12:00:00 [ERROR] Error on target 'ref<counter>' op 'SET': readonly mutation refused
//	2024/01/01 12:00:00 Stack trace:
//	goroutine 1 [running]:
//	main.validateForm()
//	    /path/to/form.go:123 +0x456
//
// Example output (non-verbose mode):
//
//	2024/01/01 12:00:00 [ERROR] Error on target 'ref<counter>' op 'SET': readonly mutation refused
func (r *ConsoleReporter) ReportError(err error, ctx *ErrorContext) {
	r.mu.Lock()
	defer r.mu.Unlock()

	log.Printf("[ERROR] Error on target '%s' op '%s': %v", ctx.Target, ctx.Op, err)

	if r.verbose && len(ctx.StackTrace) > 0 {
		log.Printf("Stack trace:\n%s", ctx.StackTrace)
	}
}

// Flush ensures all pending errors are sent before shutdown.
// For ConsoleReporter, this is a no-op since console output is immediate.
//
// Thread-safe: Safe to call concurrently from multiple goroutines.
func (r *ConsoleReporter) Flush(timeout time.Duration) error {
	return nil
}
