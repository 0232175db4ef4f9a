package observability

import (
	"fmt"
	"sync"
	"time"
)

// EffectPanicError wraps a panic that occurred inside an effect's function
// body. The reactivity core always re-raises the original panic to the
// caller of Run after restoring the active-effect and tracking-enabled
// stacks -- this type only carries enough identifying detail for an
// ErrorReporter to record the event before that re-raise happens.
//
// This type is defined here to avoid import cycles between reactor and
// observability packages.
type EffectPanicError struct {
	// EffectID is the identifier of the effect where the panic occurred
	EffectID string
	// Op names the operation in flight (GET, HAS, ITERATE, SET, ADD,
	// DELETE, CLEAR) when the panic occurred, if applicable
	Op string
	// PanicValue is the value passed to panic()
	PanicValue interface{}
}

// Error implements the error interface for EffectPanicError.
func (e *EffectPanicError) Error() string {
	return fmt.Sprintf("panic in effect '%s' during op '%s': %v",
		e.EffectID, e.Op, e.PanicValue)
}

// ErrorReporter is a pluggable interface for error tracking backends.
// Implementations can send errors to services like Sentry, Rollbar, or custom backends.
//
// The interface is optional - if no reporter is configured via SetErrorReporter,
// errors are silently ignored with zero overhead (just a nil check).
//
// Thread-safe: All methods must be safe for concurrent use by multiple goroutines,
// since effects may run on any goroutine the host schedules them on.
//
// Example usage:
//
//	// Development: Console reporter
//	reporter := NewConsoleReporter(true)
//	SetErrorReporter(reporter)
//
//	// Production: Sentry reporter
//	reporter, err := NewSentryReporter(os.Getenv("SENTRY_DSN"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	SetErrorReporter(reporter)
//	defer reporter.Flush(5 * time.Second)
//
// Integration with effect panic recovery:
//
//	if reporter := GetErrorReporter(); reporter != nil {
//	    reporter.ReportPanic(panicErr, &ErrorContext{
//	        EffectID:   e.id,
//	        Op:         "run",
//	        Timestamp:  time.Now(),
//	        StackTrace: debug.Stack(),
//	    })
//	}
type ErrorReporter interface {
	// ReportPanic reports a panic recovered from an effect's function body.
	// This is called automatically by Effect.Run when its fn panics, before
	// the panic is re-raised to the caller.
	//
	// Thread-safe: Must be safe to call concurrently.
	ReportPanic(err *EffectPanicError, ctx *ErrorContext)

	// ReportError reports a general reactivity error -- e.g. a
	// readonly-mutation refusal or a setter-less computed write in dev mode.
	//
	// Thread-safe: Must be safe to call concurrently.
	ReportError(err error, ctx *ErrorContext)

	// Flush ensures all pending errors are sent before shutdown.
	// This should be called before the application exits to ensure no
	// errors are lost.
	//
	// Thread-safe: Must be safe to call concurrently.
	//
	// Example:
	//   defer reporter.Flush(5 * time.Second)
	Flush(timeout time.Duration) error
}

// ErrorContext provides rich context about where and when a reactivity
// error occurred. All fields are optional, but providing more context leads
// to better error reports.
//
// Example:
//
//	ctx := &ErrorContext{
//	    EffectID:  "effect-123",
//	    Target:    "ref<counter>",
//	    Op:        "SET",
//	    Timestamp: time.Now(),
//	    Tags: map[string]string{
//	        "environment": "production",
//	    },
//	    Extra: map[string]interface{}{
//	        "attempted_value": newValue,
//	    },
//	    Breadcrumbs: GetBreadcrumbs(),
//	    StackTrace:  debug.Stack(),
//	}
type ErrorContext struct {
	// EffectID identifies the effect involved, if any.
	// Example: "effect-7f3a", "computed-total"
	EffectID string

	// Target is a debug label for the Ref/Record/List/MapC/SetC involved,
	// if any. This is a label, never the raw wrapped value itself.
	// Example: "ref<counter>", "record<user>.name"
	Target string

	// Op names the reactivity operation in flight when the error occurred.
	// Example: "GET", "HAS", "ITERATE", "SET", "ADD", "DELETE", "CLEAR"
	Op string

	// Timestamp is when the error occurred.
	// Set to time.Now() when creating the context.
	Timestamp time.Time

	// Tags are key-value pairs for filtering and grouping errors.
	// Tags should be low-cardinality values (not unique per error).
	//
	// Good tags:
	//   - "environment": "production"
	//   - "target_kind": "record"
	//
	// Bad tags (too high cardinality):
	//   - "effect_id": "effect-7f3a0192" (use EffectID instead)
	Tags map[string]string

	// Extra contains arbitrary additional data about the error.
	//
	// Examples:
	//   - "key": "email"
	//   - "attempted_value": newValue
	Extra map[string]interface{}

	// Breadcrumbs is a trail of track/trigger/effect-run events leading up
	// to the error.
	//
	// Breadcrumbs should be added chronologically as actions occur.
	// Most recent breadcrumb should be last in the slice.
	Breadcrumbs []Breadcrumb

	// StackTrace is the stack trace from where the error occurred.
	// Use debug.Stack() to capture the current stack trace.
	StackTrace []byte
}

// Breadcrumb represents a single action or event in the trail leading to an
// error. Breadcrumbs help understand the sequence of track/trigger events
// that caused an error.
//
// Inspired by Sentry's breadcrumb system.
type Breadcrumb struct {
	// Type categorizes the breadcrumb by its nature.
	//
	// Common types:
	//   - "track": a dependency was recorded
	//   - "trigger": a dependency change propagated to its dependents
	//   - "effect-run": an effect body executed
	//   - "error": error or warning
	//   - "debug": debug information
	Type string

	// Category is a subcategory for grouping breadcrumbs.
	//
	// Examples:
	//   - "registry" (Registry bookkeeping)
	//   - "scheduler" (scheduler hook invocations)
	Category string

	// Message is a human-readable description of the breadcrumb.
	//
	// Examples:
	//   - "tracked ref<counter> for effect-123"
	//   - "triggered SET on record<user>.email"
	Message string

	// Level indicates the severity or importance of the breadcrumb.
	//
	// Common levels: "debug", "info", "warning", "error".
	Level string

	// Timestamp is when the breadcrumb was created.
	Timestamp time.Time

	// Data contains arbitrary additional data about the breadcrumb.
	Data map[string]interface{}
}

// Global error reporter state
var (
	// globalReporterMu protects access to globalReporter
	globalReporterMu sync.RWMutex

	// globalReporter is the currently configured error reporter.
	// nil means no reporter is configured (errors are silently ignored).
	globalReporter ErrorReporter
)

// SetErrorReporter configures the global error reporter.
// Pass nil to disable error reporting.
//
// The reporter will be used by Effect.Run to report panics recovered from
// effect bodies, and may be called manually to report other reactivity
// errors.
//
// Thread-safe: Safe to call concurrently from multiple goroutines.
func SetErrorReporter(reporter ErrorReporter) {
	globalReporterMu.Lock()
	defer globalReporterMu.Unlock()
	globalReporter = reporter
}

// GetErrorReporter returns the currently configured error reporter.
// Returns nil if no reporter is configured.
//
// Thread-safe: Safe to call concurrently from multiple goroutines.
func GetErrorReporter() ErrorReporter {
	globalReporterMu.RLock()
	defer globalReporterMu.RUnlock()
	return globalReporter
}
