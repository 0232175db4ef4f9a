package reactor

import "github.com/newbpydev/reactor/pkg/reactor/reactorerr"

// WatchCallback is called when a watched Ref's value changes, receiving both
// the new and old value.
type WatchCallback[T any] func(newVal, oldVal T)

// WatchCleanup stops a Watch or WatchEffect from re-running.
type WatchCleanup func()

// WatchOptions configures Watch.
type WatchOptions struct {
	// Immediate runs the callback once immediately, as callback(v, v), before
	// waiting for the first real change.
	Immediate bool
	// Scheduler, if set, routes the callback's invocation through sched
	// instead of running it inline on trigger.
	Scheduler Scheduler
}

// WatchOption configures a Watch call.
type WatchOption func(*WatchOptions)

// WithImmediate runs the callback once immediately with (current, current).
func WithImmediate() WatchOption { return func(o *WatchOptions) { o.Immediate = true } }

// WithWatchScheduler routes the callback's invocation through sched instead
// of running it inline on trigger.
func WithWatchScheduler(sched Scheduler) WatchOption {
	return func(o *WatchOptions) { o.Scheduler = sched }
}

// Watch observes source and invokes callback(new, old) every time source's
// value changes, skipping the initial read unless WithImmediate is given. It
// returns a cleanup function that stops observing.
//
// Grounded on the teacher's pkg/bubbly/watch.go Watch, rebuilt on top of
// Effect so a watched Ref participates in the same dependency graph as every
// other reactive primitive instead of the teacher's own addWatcher/
// removeWatcher bookkeeping on Ref itself.
func Watch[T any](source *Ref[T], callback WatchCallback[T], opts ...WatchOption) WatchCleanup {
	if callback == nil {
		panic(reactorerr.ErrNilCallback)
	}

	var o WatchOptions
	for _, opt := range opts {
		opt(&o)
	}

	var prev T
	first := true

	fn := func() {
		v := source.Value()
		if first {
			first = false
			prev = v
			if o.Immediate {
				callback(v, v)
			}
			return
		}
		old := prev
		prev = v
		if changed(old, v) {
			callback(v, old)
		}
	}

	e := NewEffect(fn, EffectOptions{Scheduler: o.Scheduler})
	return func() { e.Stop() }
}
