package reactor

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"github.com/newbpydev/reactor/pkg/reactor/observability"
)

// debugMode gates the package's dev-only warnings (readonly mutation,
// setter-less computed write); wrapping an ineligible target is not warned
// about. Mirrors the
// teacher's package-level debugMode flag and EnableDebugMode/DisableDebugMode
// pair (pkg/core/signal_factory.go), generalized to an atomic bool since this
// core has no single global Signal owning the flag.
var debugMode atomic.Bool

// pkgLogger is where dev-mode warnings are written. Defaults to stderr, like
// the teacher's direct log.Printf calls; hosts that want warnings routed
// elsewhere call SetLogger.
var pkgLogger atomic.Pointer[log.Logger]

func init() {
	pkgLogger.Store(log.New(os.Stderr, "reactor: ", 0))
}

// EnableDebugMode turns on dev-mode warnings (readonly-mutation refusals,
// setter-less computed writes).
func EnableDebugMode() { debugMode.Store(true) }

// DisableDebugMode turns off dev-mode warnings. This is the default.
func DisableDebugMode() { debugMode.Store(false) }

// DebugModeEnabled reports the current dev-mode warning state.
func DebugModeEnabled() bool { return debugMode.Load() }

// SetLogger replaces the logger dev-mode warnings are written to. Passing
// nil is a no-op.
func SetLogger(l *log.Logger) {
	if l != nil {
		pkgLogger.Store(l)
	}
}

func warnf(format string, args ...any) {
	if !debugMode.Load() {
		return
	}
	pkgLogger.Load().Output(2, fmt.Sprintf(format, args...))
}

// warnAndReport is the shared path for every §7 dev-mode warning: it writes
// the log line (if enabled) and, independently of debugMode, forwards the
// error to the global observability.ErrorReporter (if one is configured) so
// a host's Sentry/console reporter sees readonly-refusal and setter-less
// events as breadcrumbs even when console warnings are off.
func warnAndReport(err error, target any, op string) {
	warnf("%s (target=%v op=%s)", err, target, op)
	observability.RecordBreadcrumb("reactivity", err.Error(), map[string]interface{}{"op": op})
	if rep := observability.GetErrorReporter(); rep != nil {
		rep.ReportError(err, &observability.ErrorContext{Op: op, Breadcrumbs: observability.GetBreadcrumbs()})
	}
}
