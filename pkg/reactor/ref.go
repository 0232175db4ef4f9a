package reactor

import "sync"

// refHandle is the flavor-erased view of a Ref[T] that Record/List/MapC/SetC
// need for auto-unwrap and forwarded assignment (spec §4.4 read step 6,
// write step 2): they hold a field typed `any` and must detect "this value
// is a Ref" and read/write it without knowing T. Every *Ref[T] satisfies it.
type refHandle interface {
	isRef() bool
	rawValue() any
	setRawValue(any) bool
}

// Ref is the single-slot reactive cell (spec §3, §4.6): `{ value, dep,
// is-ref: true }`. A Ref is its own (Target, Key) pair, the fixed key being
// the literal string "value". Ref is grounded on the teacher's
// pkg/bubbly/ref.go but rebuilt on top of the shared Track/Trigger
// primitives instead of the teacher's own ad hoc dependency map, so a Ref
// participates in the same Registry/DepSet graph as Record/List/MapC/SetC.
type Ref[T any] struct {
	mu      sync.Mutex
	value   T
	shallow bool
}

// NewRef constructs a deep Ref around v.
func NewRef[T any](v T) *Ref[T] {
	return &Ref[T]{value: v}
}

// NewShallowRef constructs a shallow Ref around v. Value and Set behave the
// same for deep and shallow Refs; the flag is only reported by IsShallow.
// Neither kind wraps what is written into it: a payload that is one of this
// package's container wrappers (Record/List/MapC/SetC) is stored as given,
// since Go's static typing already requires the caller to choose the
// wrapped type at the call site -- there is no implicit wrap-on-write the
// way spec §4.6 describes for a dynamically typed host. See DESIGN.md for
// this Open Question's resolution.
func NewShallowRef[T any](v T) *Ref[T] {
	return &Ref[T]{value: v, shallow: true}
}

// Value reads the current value, tracking (self, "value") against the
// active effect, if any.
func (r *Ref[T]) Value() T {
	r.mu.Lock()
	v := r.value
	r.mu.Unlock()
	Track(r, KindRef, OpGet, "value")
	return v
}

// Set writes a new value, triggering (self, "value") if it actually changed
// under NaN-aware equality (spec "No spurious trigger" invariant).
func (r *Ref[T]) Set(v T) {
	r.mu.Lock()
	old := r.value
	r.value = v
	r.mu.Unlock()

	if changed(old, v) {
		Trigger(TriggerParams{Target: r, Kind: KindRef, Op: OpSet, Key: "value", NewValue: v, OldValue: old})
	}
}

// IsShallow reports whether this Ref was constructed with NewShallowRef.
func (r *Ref[T]) IsShallow() bool { return r.shallow }

func (r *Ref[T]) isRef() bool { return true }

func (r *Ref[T]) rawValue() any {
	return r.Value()
}

// setRawValue implements the Record/List forwarded-assignment path (spec
// §4.4 write step 2: "forward assignment to old.value = new-value"). It
// reports false if v's dynamic type does not match T, so the caller can fall
// back to overwriting the slot outright instead of forwarding.
func (r *Ref[T]) setRawValue(v any) bool {
	tv, ok := v.(T)
	if !ok {
		return false
	}
	r.Set(tv)
	return true
}

// IsRef reports whether x is a *Ref[T] for some T.
func IsRef(x any) bool {
	_, ok := x.(refHandle)
	return ok
}

// asRefHandle returns x's flavor-erased Ref view, if x is a Ref.
func asRefHandle(x any) (refHandle, bool) {
	rh, ok := x.(refHandle)
	return rh, ok
}
