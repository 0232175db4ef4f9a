package reactor

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/newbpydev/reactor/pkg/reactor/monitoring"
	"github.com/newbpydev/reactor/pkg/reactor/observability"
)

// Op names the operation that caused a track or trigger call. It is exposed
// for debug hooks (OnTrack/OnTrigger) and for metrics labels.
type Op string

// Read-type operations.
const (
	OpGet     Op = "GET"
	OpHas     Op = "HAS"
	OpIterate Op = "ITERATE"
)

// Write-type operations.
const (
	OpSet    Op = "SET"
	OpAdd    Op = "ADD"
	OpDelete Op = "DELETE"
	OpClear  Op = "CLEAR"
)

// TrackEvent describes a single dependency-tracking call, delivered to an
// effect's OnTrack hook.
type TrackEvent struct {
	Target any
	Op     Op
	Key    Key
}

// TriggerEvent describes a single change-propagation call, delivered to an
// effect's OnTrigger hook just before that effect is scheduled or re-run.
type TriggerEvent struct {
	Target   any
	Op       Op
	Key      Key
	NewValue any
	OldValue any
}

// Scheduler receives a triggered effect instead of having it run inline.
// The scheduler decides when (and whether) to call Run on it — this is the
// core's only seam for host-driven batching.
type Scheduler func(e *Effect)

// EffectOptions configures the behavior of an Effect.
type EffectOptions struct {
	// Lazy defers the first run until Run is called explicitly.
	Lazy bool
	// Scheduler, if set, receives the effect on trigger instead of having it
	// run the body directly.
	Scheduler Scheduler
	// OnTrack is called on every tracked read during a run, including a
	// repeat read of a dependency already tracked.
	OnTrack func(TrackEvent)
	// OnTrigger is called once per triggered dependency, before the effect
	// is scheduled or re-run.
	OnTrigger func(TriggerEvent)
	// OnStop is called exactly once, when the effect transitions to stopped.
	OnStop func()
	// AllowRecurse opts the effect into re-triggering itself while it is on
	// the active-effect stack. Off by default to break write-during-compute
	// loops.
	AllowRecurse bool
}

// Effect is a re-runnable unit of work that records which (target, key)
// pairs it reads each time it runs, and is scheduled to re-run whenever any
// of them changes.
//
// The dependency edge between an Effect and a DepSet is bidirectional: the
// DepSet holds the Effect as a member, and the Effect holds the DepSet in
// its own subscription list, so that a full re-run can detach every prior
// subscription before rebuilding a fresh one.
type Effect struct {
	ID string

	mu     sync.Mutex
	active bool
	fn     func()
	opts   EffectOptions
	subs   []*DepSet
}

// NewEffect constructs an Effect around fn. Unless opts.Lazy is set, it runs
// once immediately, synchronously, before returning.
func NewEffect(fn func(), opts EffectOptions) *Effect {
	e := &Effect{
		ID:     uuid.NewString(),
		active: true,
		fn:     fn,
		opts:   opts,
	}
	if !opts.Lazy {
		e.Run()
	}
	return e
}

// addSub records a DepSet this effect is now a member of. Called by Track
// while this effect is the active effect.
func (e *Effect) addSub(ds *DepSet) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, ds)
}

// detachAll removes this effect from every DepSet it is currently a member
// of and clears its own subscription list. Called at the start of every run
// (so conditional reads never leave stale edges) and by Stop.
func (e *Effect) detachAll() {
	e.mu.Lock()
	subs := e.subs
	e.subs = nil
	e.mu.Unlock()

	for _, ds := range subs {
		ds.remove(e)
	}
}

// Run executes the effect's body, tracking every (target, key) pair it
// reads as a fresh subscription set.
//
// Per the run protocol: an inactive effect still computes directly (fn runs)
// unless it has a scheduler, in which case direct invocation is a no-op. A
// re-entrant call — this effect already on the active-effect stack — is
// ignored, since a nested computed pushes its own effect, not this one
// again. On any exit, normal or panicking, the active-effect stack and the
// tracking-enabled flag are restored before the panic (if any) is re-raised
// to the caller.
func (e *Effect) Run() {
	e.mu.Lock()
	active := e.active
	e.mu.Unlock()

	if !active {
		if e.opts.Scheduler != nil {
			return
		}
		e.fn()
		return
	}

	if globalRegistry.isOnEffectStack(e) {
		return
	}

	e.detachAll()

	globalRegistry.pushEffect(e)
	prevTracking := globalRegistry.pushTrackingEnabled(true)

	var panicked any
	start := time.Now()
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicked = r
			}
		}()
		e.fn()
	}()
	duration := time.Since(start)

	globalRegistry.popEffect()
	globalRegistry.restoreTrackingEnabled(prevTracking)

	monitoring.GetGlobalMetrics().RecordEffectRun(duration)
	monitoring.RecordEffectCall(e.ID, duration)

	if panicked != nil {
		observability.RecordBreadcrumb("effect", "panic recovered during effect run", map[string]interface{}{
			"effect_id": e.ID,
			"panic":     panicked,
		})
		if rep := observability.GetErrorReporter(); rep != nil {
			rep.ReportPanic(
				&observability.EffectPanicError{EffectID: e.ID, Op: "run", PanicValue: panicked},
				&observability.ErrorContext{EffectID: e.ID, Op: "run", Breadcrumbs: observability.GetBreadcrumbs()},
			)
		}
		panic(panicked)
	}
}

// Stop deactivates the effect: all current subscriptions are detached, the
// OnStop hook (if any) runs, and the effect is marked inactive. Idempotent —
// calling Stop on an already-stopped effect does nothing.
func (e *Effect) Stop() {
	e.mu.Lock()
	if !e.active {
		e.mu.Unlock()
		return
	}
	e.active = false
	onStop := e.opts.OnStop
	e.mu.Unlock()

	e.detachAll()

	if onStop != nil {
		onStop()
	}
}

// Active reports whether the effect has not been stopped.
func (e *Effect) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// AllowRecurse reports whether this effect opted into re-entrant self-triggering.
func (e *Effect) AllowRecurse() bool {
	return e.opts.AllowRecurse
}
