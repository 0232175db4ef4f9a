package reactor

import "sync"

// BatchScheduler queues triggered effects instead of running them inline,
// coalescing repeated triggers of the same effect within one flush window
// into a single re-run. Nothing in this package installs a BatchScheduler
// automatically -- batching across frames/ticks is the host's decision (the
// core only provides the Scheduler hook effects can be given). Grounded on
// the teacher's pkg/bubbly/scheduler.go CallbackScheduler, generalized from
// watcher callbacks to arbitrary *Effect values.
type BatchScheduler struct {
	mu     sync.Mutex
	queued map[*Effect]struct{}
	order  []*Effect
}

// NewBatchScheduler constructs an empty BatchScheduler.
func NewBatchScheduler() *BatchScheduler {
	return &BatchScheduler{queued: make(map[*Effect]struct{})}
}

// Schedule is a Scheduler: pass it as EffectOptions.Scheduler to have that
// effect's re-runs batched by s instead of running inline.
func (s *BatchScheduler) Schedule(e *Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, queued := s.queued[e]; queued {
		return
	}
	s.queued[e] = struct{}{}
	s.order = append(s.order, e)
}

// Flush runs every distinct queued effect once, in the order each was first
// queued since the last flush, and clears the queue. Returns the number of
// effects run.
func (s *BatchScheduler) Flush() int {
	s.mu.Lock()
	pending := s.order
	s.queued = make(map[*Effect]struct{})
	s.order = nil
	s.mu.Unlock()

	for _, e := range pending {
		e.Run()
	}
	return len(pending)
}

// Pending returns the number of effects currently queued, awaiting Flush.
func (s *BatchScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// globalScheduler is the package's shared BatchScheduler, drained by
// FlushEffects and measured by PendingEffects. It is unexported, so only
// code inside this package can queue an effect onto it.
var globalScheduler = NewBatchScheduler()

// FlushEffects runs every effect queued against the package's shared
// BatchScheduler since the last flush.
func FlushEffects() int { return globalScheduler.Flush() }

// PendingEffects returns the number of effects queued against the package's
// shared BatchScheduler, awaiting FlushEffects.
func PendingEffects() int { return globalScheduler.Pending() }
