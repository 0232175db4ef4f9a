// Package observability provides error tracking, breadcrumbs, and panic
// reporting for the reactivity core.
//
// # Overview
//
// The observability package enables error tracking and debugging for
// effects, refs, and other reactive targets. It provides a pluggable error
// reporting system, breadcrumb trails for debugging, and integration with
// Sentry.
//
// # Error Reporting
//
// The package supports multiple error reporting backends through the
// ErrorReporter interface:
//
//   - ConsoleReporter: Logs errors via the standard log package, stderr by default (development)
//   - SentryReporter: Sends errors to Sentry (production)
//   - Custom implementations: Implement ErrorReporter for other services
//
// Basic setup:
//
//	import "github.com/newbpydev/reactor/pkg/reactor/observability"
//
//	// Development: Use console reporter
//	reporter := observability.NewConsoleReporter(true)
//	observability.SetErrorReporter(reporter)
//
//	// Production: Use Sentry
//	reporter, err := observability.NewSentryReporter(os.Getenv("SENTRY_DSN"),
//	    observability.WithEnvironment("production"),
//	    observability.WithRelease("v1.0.0"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	observability.SetErrorReporter(reporter)
//	defer reporter.Flush(5 * time.Second)
//
// # Breadcrumbs
//
// Breadcrumbs provide a trail of track/trigger/effect-run events leading up
// to an error, making debugging easier. They are automatically included in
// error reports when using Sentry or custom reporters.
//
//	observability.RecordBreadcrumb("registry", "tracked ref<counter> for effect-1", map[string]interface{}{
//	    "effect": "effect-1",
//	})
//
//	observability.RecordBreadcrumb("scheduler", "triggered SET on ref<counter>", nil)
//
//	// Get all breadcrumbs
//	crumbs := observability.GetBreadcrumbs()
//
//	// Clear breadcrumbs after an error is reported
//	observability.ClearBreadcrumbs()
//
// # Error Types
//
// The package defines EffectPanicError, which wraps a panic recovered from
// an effect's function body:
//
//	err := &observability.EffectPanicError{
//	    EffectID:   "effect-1",
//	    Op:         "run",
//	    PanicValue: "nil pointer dereference",
//	}
//	fmt.Println(err.Error())
//	// Output: panic in effect 'effect-1' during op 'run': nil pointer dereference
//
// # Error Context
//
// When reporting errors, include rich context for easier debugging:
//
//	reporter.ReportPanic(err, &observability.ErrorContext{
//	    EffectID:  "effect-1",
//	    Op:        "run",
//	    Timestamp: time.Now(),
//	    StackTrace: debug.Stack(),
//	})
//
// # Thread Safety
//
// All functions and types in this package are thread-safe:
//
//   - SetErrorReporter/GetErrorReporter are protected by sync.RWMutex
//   - Breadcrumb recording is protected by sync.RWMutex
//   - All reporter implementations must be concurrent-safe, since effects
//     may run on any goroutine
//
// # Integration with the reactivity core
//
// The observability package integrates with the core via Effect.Run:
//
//   - Effect body panics are captured and reported before re-raise
//   - Readonly-mutation refusals and setter-less computed writes can report
//     via ReportError in dev mode
//   - track/trigger events may be recorded as breadcrumbs
//
// # Performance
//
// The package is designed for minimal overhead:
//
//   - No-op when no reporter is configured (single nil check)
//   - Breadcrumb recording: small, bounded circular buffer
//   - Error reporting: async by default (Sentry)
package observability
