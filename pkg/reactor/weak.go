package reactor

import (
	"github.com/newbpydev/reactor/pkg/reactor/reactorerr"
)

// WeakMapC is the weak-map variant of MapC (spec §3, §4.5): identical to
// MapC except Size, Clear, and iteration are absent, since a weak map's
// membership is not meant to be enumerable. Go's garbage collector gives no
// hook for key-triggered eviction the way a true weak map would, so this is
// a documented simplification: WeakMapC evicts nothing on its own and is
// weak only in API shape, not in GC behavior (see DESIGN.md).
type WeakMapC[K comparable, V any] struct {
	target *map[K]V
	flavor Flavor
}

// ReactiveWeakMap wraps target for deep, read-write access.
func ReactiveWeakMap[K comparable, V any](target *map[K]V) *WeakMapC[K, V] {
	return wrapWeakMap(target, MutableDeep)
}

// ReadonlyWeakMap wraps target for deep, read-only access.
func ReadonlyWeakMap[K comparable, V any](target *map[K]V) *WeakMapC[K, V] {
	return wrapWeakMap(target, ReadonlyDeep)
}

func wrapWeakMap[K comparable, V any](target *map[K]V, flavor Flavor) *WeakMapC[K, V] {
	if target == nil {
		return nil
	}
	if *target == nil {
		*target = make(map[K]V)
	}
	if globalRegistry.isMarkedRaw(target) {
		return &WeakMapC[K, V]{target: target, flavor: flavor}
	}
	if !flavor.Readonly() {
		if p, ok := existingReadonly[*WeakMapC[K, V]](target); ok {
			return p
		}
	}
	return getOrCreateProxy(target, flavor, func() *WeakMapC[K, V] {
		return &WeakMapC[K, V]{target: target, flavor: flavor}
	})
}

// Raw returns the underlying map pointer, unwrapped.
func (m *WeakMapC[K, V]) Raw() *map[K]V { return m.target }

// IsReadonly reports whether writes through this wrapper are refused.
func (m *WeakMapC[K, V]) IsReadonly() bool { return m.flavor.Readonly() }

// Get returns the value for k and whether it was present, tracking k.
func (m *WeakMapC[K, V]) Get(k K) (V, bool) {
	v, ok := (*m.target)[k]
	if !m.flavor.Readonly() {
		Track(m.target, KindMap, OpGet, k)
	}
	return v, ok
}

// Has reports whether k is present, tracking k.
func (m *WeakMapC[K, V]) Has(k K) bool {
	_, ok := (*m.target)[k]
	if !m.flavor.Readonly() {
		Track(m.target, KindMap, OpHas, k)
	}
	return ok
}

// Set inserts or updates k.
func (m *WeakMapC[K, V]) Set(k K, v V) {
	if m.flavor.Readonly() {
		warnAndReport(reactorerr.ErrReadonlyMutation, m.target, "SET")
		return
	}
	old, had := (*m.target)[k]
	(*m.target)[k] = v
	if !had {
		Trigger(TriggerParams{Target: m.target, Kind: KindMap, Op: OpAdd, Key: k, NewValue: v})
		return
	}
	if changed(old, v) {
		Trigger(TriggerParams{Target: m.target, Kind: KindMap, Op: OpSet, Key: k, NewValue: v, OldValue: old})
	}
}

// Delete removes k, if present.
func (m *WeakMapC[K, V]) Delete(k K) bool {
	if m.flavor.Readonly() {
		warnAndReport(reactorerr.ErrReadonlyMutation, m.target, "DELETE")
		return false
	}
	old, had := (*m.target)[k]
	if !had {
		return false
	}
	delete(*m.target, k)
	Trigger(TriggerParams{Target: m.target, Kind: KindMap, Op: OpDelete, Key: k, OldValue: old})
	return true
}

// WeakSetC is the weak-set variant of SetC, with Size, Clear, and Range
// absent for the same reason as WeakMapC.
type WeakSetC[T comparable] struct {
	target *map[T]struct{}
	flavor Flavor
}

// ReactiveWeakSet wraps target for deep, read-write access.
func ReactiveWeakSet[T comparable](target *map[T]struct{}) *WeakSetC[T] {
	return wrapWeakSet(target, MutableDeep)
}

// ReadonlyWeakSet wraps target for deep, read-only access.
func ReadonlyWeakSet[T comparable](target *map[T]struct{}) *WeakSetC[T] {
	return wrapWeakSet(target, ReadonlyDeep)
}

func wrapWeakSet[T comparable](target *map[T]struct{}, flavor Flavor) *WeakSetC[T] {
	if target == nil {
		return nil
	}
	if *target == nil {
		*target = make(map[T]struct{})
	}
	if globalRegistry.isMarkedRaw(target) {
		return &WeakSetC[T]{target: target, flavor: flavor}
	}
	if !flavor.Readonly() {
		if p, ok := existingReadonly[*WeakSetC[T]](target); ok {
			return p
		}
	}
	return getOrCreateProxy(target, flavor, func() *WeakSetC[T] {
		return &WeakSetC[T]{target: target, flavor: flavor}
	})
}

// Raw returns the underlying map pointer, unwrapped.
func (s *WeakSetC[T]) Raw() *map[T]struct{} { return s.target }

// IsReadonly reports whether writes through this wrapper are refused.
func (s *WeakSetC[T]) IsReadonly() bool { return s.flavor.Readonly() }

// Has reports whether v is a member, tracking v.
func (s *WeakSetC[T]) Has(v T) bool {
	_, ok := (*s.target)[v]
	if !s.flavor.Readonly() {
		Track(s.target, KindSet, OpHas, v)
	}
	return ok
}

// Add inserts v, reporting whether it was newly added.
func (s *WeakSetC[T]) Add(v T) bool {
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

// Delete removes v, if present.
func (s *WeakSetC[T]) Delete(v T) bool {
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
