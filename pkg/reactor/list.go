package reactor

import (
	"github.com/newbpydev/reactor/pkg/reactor/reactorerr"
)

// List is the Object Interceptor (spec §4.4) for ordered sequences, wrapping
// a pointer to a Go slice. Integer indices are tracked individually; the
// synthetic "length" key is tracked and triggered per the sequence rules in
// spec §4.3's collection table. Per spec's boundary case ("writing a Ref
// into a sequence index (no auto-unwrap on read)"), List never auto-unwraps
// or forwards to a Ref the way Record does for struct fields.
type List[T any] struct {
	target *[]T
	flavor Flavor
}

// ReactiveList wraps target for deep, read-write access.
func ReactiveList[T any](target *[]T) *List[T] { return wrapList(target, MutableDeep) }

// ShallowReactiveList wraps target for shallow, read-write access.
func ShallowReactiveList[T any](target *[]T) *List[T] { return wrapList(target, MutableShallow) }

// ReadonlyList wraps target for deep, read-only access.
func ReadonlyList[T any](target *[]T) *List[T] { return wrapList(target, ReadonlyDeep) }

// ShallowReadonlyList wraps target for shallow, read-only access.
func ShallowReadonlyList[T any](target *[]T) *List[T] { return wrapList(target, ReadonlyShallow) }

func wrapList[T any](target *[]T, flavor Flavor) *List[T] {
	if target == nil {
		return nil
	}
	if globalRegistry.isMarkedRaw(target) {
		return &List[T]{target: target, flavor: flavor}
	}
	if !flavor.Readonly() {
		if p, ok := existingReadonly[*List[T]](target); ok {
			return p
		}
	}
	return getOrCreateProxy(target, flavor, func() *List[T] {
		return &List[T]{target: target, flavor: flavor}
	})
}

// Raw returns the underlying slice pointer, unwrapped.
func (l *List[T]) Raw() *[]T { return l.target }

// IsReactive reports whether this flavor permits mutation.
func (l *List[T]) IsReactive() bool { return !l.flavor.Readonly() }

// IsReadonly reports whether writes through this wrapper are refused.
func (l *List[T]) IsReadonly() bool { return l.flavor.Readonly() }

// Len returns the sequence length, tracking the "length" key.
func (l *List[T]) Len() int {
	if !l.flavor.Readonly() {
		Track(l.target, KindList, OpGet, LengthKey)
	}
	return len(*l.target)
}

// Get reads the element at index i, tracking (target, i).
func (l *List[T]) Get(i int) T {
	s := *l.target
	if i < 0 || i >= len(s) {
		panic("reactor: list index out of range")
	}
	if !l.flavor.Readonly() {
		Track(l.target, KindList, OpGet, i)
	}
	return s[i]
}

// Set writes value at index i (spec §4.4 "Write", sequence case: the
// integer index is always `hadKey`, so only SET ever fires, never ADD --
// appending is a distinct operation, see Append).
func (l *List[T]) Set(i int, value T) {
	if l.flavor.Readonly() {
		warnAndReport(reactorerr.ErrReadonlyMutation, l.target, "SET")
		return
	}
	s := *l.target
	if i < 0 || i >= len(s) {
		panic("reactor: list index out of range")
	}
	old := s[i]
	s[i] = value
	if changed(old, value) {
		Trigger(TriggerParams{Target: l.target, Kind: KindList, Op: OpSet, Key: i, NewValue: value, OldValue: old})
	}
}

// SetLength grows or shrinks the sequence to n elements (spec §4.3:
// "Sequence write where key == 'length'" fires the length DepSet plus every
// index DepSet >= the new length). New elements on growth are the zero
// value of T.
func (l *List[T]) SetLength(n int) {
	if l.flavor.Readonly() {
		warnAndReport(reactorerr.ErrReadonlyMutation, l.target, "SET")
		return
	}
	if n < 0 {
		panic("reactor: negative list length")
	}
	s := *l.target
	if n == len(s) {
		return
	}
	if n < len(s) {
		*l.target = s[:n:n]
	} else {
		grown := make([]T, n)
		copy(grown, s)
		*l.target = grown
	}
	Trigger(TriggerParams{Target: l.target, Kind: KindList, Op: OpSet, Key: LengthKey, NewLength: n})
}

// Append adds values to the end of the sequence (spec §4.4 step 3: a
// length-mutating method). Each new element fires ADD, which per the spec's
// collection table also triggers the "length" DepSet.
func (l *List[T]) Append(values ...T) int {
	if l.flavor.Readonly() {
		warnAndReport(reactorerr.ErrReadonlyMutation, l.target, "ADD")
		return len(*l.target)
	}
	prevEnable := globalRegistry.pushTrackingEnabled(false)
	start := len(*l.target)
	*l.target = append(*l.target, values...)
	globalRegistry.restoreTrackingEnabled(prevEnable)

	for i, v := range values {
		Trigger(TriggerParams{Target: l.target, Kind: KindList, Op: OpAdd, Key: start + i, NewValue: v})
	}
	return len(*l.target)
}

// Prepend inserts values at the front of the sequence, shifting every
// existing element's index. Every pre-existing index, whose element has
// changed, fires SET and the new length fires the length-grow rule.
func (l *List[T]) Prepend(values ...T) int {
	if l.flavor.Readonly() {
		warnAndReport(reactorerr.ErrReadonlyMutation, l.target, "ADD")
		return len(*l.target)
	}
	prevEnable := globalRegistry.pushTrackingEnabled(false)
	old := *l.target
	grown := make([]T, 0, len(values)+len(old))
	grown = append(grown, values...)
	grown = append(grown, old...)
	*l.target = grown
	globalRegistry.restoreTrackingEnabled(prevEnable)

	for i := range old {
		Trigger(TriggerParams{Target: l.target, Kind: KindList, Op: OpSet, Key: i})
	}
	Trigger(TriggerParams{Target: l.target, Kind: KindList, Op: OpSet, Key: LengthKey, NewLength: len(grown)})
	return len(grown)
}

// RemoveLast removes and returns the last element, shrinking the length by
// one (the "length" shrink rule also invalidates the removed index).
func (l *List[T]) RemoveLast() (T, bool) {
	var zero T
	if l.flavor.Readonly() {
		warnAndReport(reactorerr.ErrReadonlyMutation, l.target, "DELETE")
		return zero, false
	}
	s := *l.target
	if len(s) == 0 {
		return zero, false
	}
	last := s[len(s)-1]
	*l.target = s[:len(s)-1]
	Trigger(TriggerParams{Target: l.target, Kind: KindList, Op: OpSet, Key: LengthKey, NewLength: len(s) - 1})
	return last, true
}

// RemoveFirst removes and returns the first element, shifting every
// remaining element's index down by one.
func (l *List[T]) RemoveFirst() (T, bool) {
	var zero T
	if l.flavor.Readonly() {
		warnAndReport(reactorerr.ErrReadonlyMutation, l.target, "DELETE")
		return zero, false
	}
	s := *l.target
	if len(s) == 0 {
		return zero, false
	}
	first := s[0]
	prevEnable := globalRegistry.pushTrackingEnabled(false)
	*l.target = append(s[:0:0], s[1:]...)
	globalRegistry.restoreTrackingEnabled(prevEnable)

	newLen := len(*l.target)
	for i := 0; i < newLen; i++ {
		Trigger(TriggerParams{Target: l.target, Kind: KindList, Op: OpSet, Key: i})
	}
	Trigger(TriggerParams{Target: l.target, Kind: KindList, Op: OpSet, Key: LengthKey, NewLength: newLen})
	return first, true
}

// Splice removes deleteCount elements starting at start and inserts items in
// their place, returning the removed elements (spec §4.4 step 3).
func (l *List[T]) Splice(start, deleteCount int, items ...T) []T {
	if l.flavor.Readonly() {
		warnAndReport(reactorerr.ErrReadonlyMutation, l.target, "DELETE")
		return nil
	}
	s := *l.target
	if start < 0 {
		start = 0
	}
	if start > len(s) {
		start = len(s)
	}
	end := start + deleteCount
	if end > len(s) {
		end = len(s)
	}
	removed := append([]T(nil), s[start:end]...)

	prevEnable := globalRegistry.pushTrackingEnabled(false)
	next := make([]T, 0, len(s)-len(removed)+len(items))
	next = append(next, s[:start]...)
	next = append(next, items...)
	next = append(next, s[end:]...)
	*l.target = next
	globalRegistry.restoreTrackingEnabled(prevEnable)

	for i := start; i < len(next); i++ {
		Trigger(TriggerParams{Target: l.target, Kind: KindList, Op: OpSet, Key: i})
	}
	if len(next) != len(s) {
		Trigger(TriggerParams{Target: l.target, Kind: KindList, Op: OpSet, Key: LengthKey, NewLength: len(next)})
	}
	return removed
}

// Contains reports whether v is present, using eq for comparison. Per spec
// step 2, every index is tracked individually because the result depends on
// element identity, not just the length.
func (l *List[T]) Contains(v T, eq func(a, b T) bool) bool {
	s := *l.target
	if !l.flavor.Readonly() {
		for i := range s {
			Track(l.target, KindList, OpGet, i)
		}
	}
	for _, e := range s {
		if eq(e, v) {
			return true
		}
	}
	return false
}

// IndexOf returns the first index of v, or -1, using eq for comparison.
func (l *List[T]) IndexOf(v T, eq func(a, b T) bool) int {
	s := *l.target
	if !l.flavor.Readonly() {
		for i := range s {
			Track(l.target, KindList, OpGet, i)
		}
	}
	for i, e := range s {
		if eq(e, v) {
			return i
		}
	}
	return -1
}

// LastIndexOf returns the last index of v, or -1, using eq for comparison.
func (l *List[T]) LastIndexOf(v T, eq func(a, b T) bool) int {
	s := *l.target
	if !l.flavor.Readonly() {
		for i := range s {
			Track(l.target, KindList, OpGet, i)
		}
	}
	for i := len(s) - 1; i >= 0; i-- {
		if eq(s[i], v) {
			return i
		}
	}
	return -1
}

// Range enumerates every element, tracking ITERATE on the "length" key (spec
// §4.4 "Enumerate-own-keys": sequences track ITERATE on "length", not the
// generic Iterate sentinel).
func (l *List[T]) Range(fn func(i int, v T) bool) {
	if !l.flavor.Readonly() {
		Track(l.target, KindList, OpIterate, LengthKey)
	}
	for i, v := range *l.target {
		if !fn(i, v) {
			return
		}
	}
}
