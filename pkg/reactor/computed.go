package reactor

import (
	"sync"

	"github.com/newbpydev/reactor/pkg/reactor/monitoring"
	"github.com/newbpydev/reactor/pkg/reactor/reactorerr"
)

// Computed is the lazy, memoized derived cell of spec §4.7: `{ effect,
// cached, dirty, dep, readonly }`. It is built directly on Effect + the
// Ref-shaped "value" key, the way the teacher's pkg/bubbly/computed.go
// layers a dirty bit on top of its own effect primitive.
type Computed[T any] struct {
	mu     sync.Mutex
	getter func() T
	setter func(T)
	effect *Effect
	cached T
	dirty  bool
}

// ComputedOption configures a Computed at construction time.
type ComputedOption[T any] func(*computedOptions[T])

type computedOptions[T any] struct {
	setter func(T)
}

// WithSetter supplies a setter, turning a read-only computed into a
// writable one (spec §4.7: "computed(getter, setter)").
func WithSetter[T any](setter func(T)) ComputedOption[T] {
	return func(o *computedOptions[T]) { o.setter = setter }
}

// NewComputed builds a Computed around getter. Per spec §7 ("Missing getter
// in computed options object: treated as a constant read-only"), there is no
// sensible degraded behavior for a nil getter in this Go binding -- callers
// always supply one directly -- so a nil getter panics instead.
func NewComputed[T any](getter func() T, opts ...ComputedOption[T]) *Computed[T] {
	if getter == nil {
		panic(reactorerr.ErrNilComputeFn)
	}

	o := &computedOptions[T]{}
	for _, apply := range opts {
		apply(o)
	}

	c := &Computed[T]{getter: getter, setter: o.setter, dirty: true}

	// The inner effect recomputes the getter. Its scheduler never runs fn
	// directly on trigger -- instead it flips the dirty bit and fires one
	// self-trigger to the Computed's own downstream effects, matching spec
	// §4.7: "exactly one self-trigger is emitted... and dirty == true until
	// the next read." AllowRecurse is left false (the zero value): a
	// computed cannot transitively invalidate itself without a stable fixed
	// point (spec invariant).
	c.effect = NewEffect(func() {
		c.mu.Lock()
		c.cached = c.getter()
		c.mu.Unlock()
	}, EffectOptions{
		Lazy: true,
		Scheduler: func(_ *Effect) {
			c.mu.Lock()
			alreadyDirty := c.dirty
			c.dirty = true
			c.mu.Unlock()
			if !alreadyDirty {
				Trigger(TriggerParams{Target: c, Kind: KindComputed, Op: OpSet, Key: "value"})
			}
		},
	})

	return c
}

// Value returns the cached value, recomputing first if dirty, then tracks
// (self, "value") against the active effect. Per spec invariant: after any
// read, dirty == false.
func (c *Computed[T]) Value() T {
	c.mu.Lock()
	dirty := c.dirty
	c.mu.Unlock()

	if dirty {
		c.effect.Run()
		c.mu.Lock()
		c.dirty = false
		c.mu.Unlock()
		monitoring.GetGlobalMetrics().RecordComputedRecompute()
	}

	Track(c, KindComputed, OpGet, "value")

	c.mu.Lock()
	v := c.cached
	c.mu.Unlock()
	return v
}

// Set invokes the setter, if one was supplied via WithSetter. Otherwise it
// warns in dev mode and ignores the write (spec §7: "Setter-less computed
// write: warn in dev, ignore").
func (c *Computed[T]) Set(v T) {
	if c.setter == nil {
		warnAndReport(reactorerr.ErrMissingSetter, c, "SET")
		return
	}
	c.setter(v)
}

// IsReadonly reports whether this computed has no setter.
func (c *Computed[T]) IsReadonly() bool {
	return c.setter == nil
}

// Stop deactivates the computed's inner effect, releasing its dependency
// subscriptions. A stopped computed's Value() keeps returning its
// last-cached value: the stopped inner effect receives no further triggers,
// so the dirty bit is not set again, and Effect.Run on an inactive effect
// that has a scheduler returns without recomputing.
func (c *Computed[T]) Stop() {
	c.effect.Stop()
}
