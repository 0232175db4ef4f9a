// Package reactorerr defines the sentinel errors for the reactivity core's
// documented failure modes (spec §7: Ineligible target, Mutation of
// read-only, Setter-less computed write, Missing getter, Effect body
// failure). None of these are returned from the public API in the happy
// path — per §7 the core warns and degrades gracefully rather than
// propagating most of them, so these values exist for dev-mode warning text
// and for hosts that want to match on error identity from an
// observability.ErrorReporter callback.
package reactorerr

import "errors"

var (
	// ErrIneligibleTarget names the failure of wrapping a primitive, a nil
	// pointer, or a target already marked raw. pkg/reactor itself never
	// returns, warns about or reports it: wrapping a nil target returns nil,
	// and wrapping a marked-raw target returns a wrapper (see MarkRaw).
	ErrIneligibleTarget = errors.New("reactor: target is not eligible for wrapping")

	// ErrReadonlyMutation is reported when a write or delete is attempted
	// through a read-only flavor. The write is refused and this error is
	// only ever surfaced to a dev-mode warning or an ErrorReporter.
	ErrReadonlyMutation = errors.New("reactor: refused write to readonly target")

	// ErrMissingSetter is reported when Computed.Set is called on a computed
	// built without a setter.
	ErrMissingSetter = errors.New("reactor: computed has no setter")

	// ErrNilComputeFn is raised (panic) when NewComputed is given a nil
	// getter -- there is no sensible degraded behavior for a computed with
	// no way to produce a value.
	ErrNilComputeFn = errors.New("reactor: computed getter function cannot be nil")

	// ErrNilCallback is raised (panic) when Watch is given a nil callback.
	ErrNilCallback = errors.New("reactor: watch callback cannot be nil")

	// ErrCircularDependency is reserved for hosts layering their own
	// circular-dependency detection on top of the core; the core itself
	// breaks cycles via the active-effect-stack re-entrancy guard (spec
	// §4.2) rather than by depth counting, so this is never returned by
	// pkg/reactor itself. See DESIGN.md for why the teacher's depth-limit
	// check was dropped rather than ported.
	ErrCircularDependency = errors.New("reactor: circular dependency detected")
)
