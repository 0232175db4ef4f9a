package reactor

// WatchEffectOption configures a WatchEffect the way EffectOptions configures
// an Effect, narrowed to the subset meaningful for a fire-and-forget watcher.
type WatchEffectOption func(*EffectOptions)

// WithScheduler routes a WatchEffect's re-runs through sched instead of
// running them inline on trigger -- the host's hook for batching (spec's
// "automatic batching across frames... is the host's decision").
func WithScheduler(sched Scheduler) WatchEffectOption {
	return func(o *EffectOptions) { o.Scheduler = sched }
}

// WithOnTrack installs a debug hook called on every tracked read the effect
// makes during a run.
func WithOnTrack(fn func(TrackEvent)) WatchEffectOption {
	return func(o *EffectOptions) { o.OnTrack = fn }
}

// WithOnTrigger installs a debug hook called once per triggered dependency,
// before the effect is scheduled or re-run.
func WithOnTrigger(fn func(TriggerEvent)) WatchEffectOption {
	return func(o *EffectOptions) { o.OnTrigger = fn }
}

// WatchEffect runs fn immediately and re-runs it automatically whenever any
// Ref, Computed, Record, List, MapC, or SetC it reads during that run
// changes -- the dependency set is rediscovered fresh on every run, so
// conditionally-read dependencies drop out naturally when a branch stops
// being taken. It returns a cleanup function that stops further re-runs.
//
// Grounded on the teacher's pkg/bubbly/watch_effect.go WatchEffect, rebuilt
// directly on top of Effect instead of the teacher's own invalidationWatcher
// bookkeeping, since Effect already performs fresh-subscription-per-run
// tracking and re-entrancy guarding.
func WatchEffect(fn func(), opts ...WatchEffectOption) WatchCleanup {
	var o EffectOptions
	for _, opt := range opts {
		opt(&o)
	}
	e := NewEffect(fn, o)
	return func() { e.Stop() }
}
