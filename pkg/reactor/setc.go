package reactor

import (
	"github.com/newbpydev/reactor/pkg/reactor/reactorerr"
)

// SetC is the Collection Interceptor (spec §4.5) for unique sets, backed by
// a `map[T]struct{}` the way idiomatic Go represents a set.
type SetC[T comparable] struct {
	target *map[T]struct{}
	flavor Flavor
}

// ReactiveSet wraps target for deep, read-write access.
func ReactiveSet[T comparable](target *map[T]struct{}) *SetC[T] {
	return wrapSet(target, MutableDeep)
}

// ShallowReactiveSet wraps target for shallow, read-write access.
func ShallowReactiveSet[T comparable](target *map[T]struct{}) *SetC[T] {
	return wrapSet(target, MutableShallow)
}

// ReadonlySet wraps target for deep, read-only access.
func ReadonlySet[T comparable](target *map[T]struct{}) *SetC[T] {
	return wrapSet(target, ReadonlyDeep)
}

// ShallowReadonlySet wraps target for shallow, read-only access.
func ShallowReadonlySet[T comparable](target *map[T]struct{}) *SetC[T] {
	return wrapSet(target, ReadonlyShallow)
}

func wrapSet[T comparable](target *map[T]struct{}, flavor Flavor) *SetC[T] {
	if target == nil {
		return nil
	}
	if *target == nil {
		*target = make(map[T]struct{})
	}
	if globalRegistry.isMarkedRaw(target) {
		return &SetC[T]{target: target, flavor: flavor}
	}
	if !flavor.Readonly() {
		if p, ok := existingReadonly[*SetC[T]](target); ok {
			return p
		}
	}
	return getOrCreateProxy(target, flavor, func() *SetC[T] {
		return &SetC[T]{target: target, flavor: flavor}
	})
}

// Raw returns the underlying map pointer, unwrapped.
func (s *SetC[T]) Raw() *map[T]struct{} { return s.target }

// IsReadonly reports whether writes through this wrapper are refused.
func (s *SetC[T]) IsReadonly() bool { return s.flavor.Readonly() }

// Size returns the number of members, tracking ITERATE.
func (s *SetC[T]) Size() int {
	if !s.flavor.Readonly() {
		Track(s.target, KindSet, OpIterate, Iterate)
	}
	return len(*s.target)
}

// Has reports whether v is a member, tracking v.
func (s *SetC[T]) Has(v T) bool {
	_, ok := (*s.target)[v]
	if !s.flavor.Readonly() {
		Track(s.target, KindSet, OpHas, v)
	}
	return ok
}

// Add inserts v, reporting whether it was newly added (spec collection
// table: ADD on a unique set fires key+ITERATE).
func (s *SetC[T]) Add(v T) bool {
	if s.flavor.Readonly() {
		warnAndReport(reactorerr.ErrReadonlyMutation, s.target, "ADD")
		return false
	}
	if _, had := (*s.target)[v]; had {
		return false
	}
	(*s.target)[v] = struct{}{}
	Trigger(TriggerParams{Target: s.target, Kind: KindSet, Op: OpAdd, Key: v, NewValue: v})
	return true
}

// Delete removes v, if present (spec: DELETE on a non-map fires key+ITERATE).
func (s *SetC[T]) Delete(v T) bool {
	if s.flavor.Readonly() {
		warnAndReport(reactorerr.ErrReadonlyMutation, s.target, "DELETE")
		return false
	}
	if _, had := (*s.target)[v]; !had {
		return false
	}
	delete(*s.target, v)
	Trigger(TriggerParams{Target: s.target, Kind: KindSet, Op: OpDelete, Key: v})
	return true
}

// Clear empties the set (spec: CLEAR fires every DepSet registered for the
// target).
func (s *SetC[T]) Clear() []T {
	if s.flavor.Readonly() {
		warnAndReport(reactorerr.ErrReadonlyMutation, s.target, "CLEAR")
		return nil
	}
	if len(*s.target) == 0 {
		return nil
	}
	old := make([]T, 0, len(*s.target))
	for v := range *s.target {
		old = append(old, v)
	}
	*s.target = make(map[T]struct{})
	Trigger(TriggerParams{Target: s.target, Kind: KindSet, Op: OpClear})
	return old
}

// Range enumerates every member, tracking the whole-container ITERATE
// sentinel.
func (s *SetC[T]) Range(fn func(T) bool) {
	if !s.flavor.Readonly() {
		Track(s.target, KindSet, OpIterate, Iterate)
	}
	for v := range *s.target {
		if !fn(v) {
			return
		}
	}
}
