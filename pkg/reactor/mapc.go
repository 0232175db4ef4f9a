package reactor

import (
	"github.com/newbpydev/reactor/pkg/reactor/reactorerr"
)

// MapC is the Collection Interceptor (spec §4.5) for keyed maps. Go maps
// expose state only via indexing and range, not properties, matching the
// spec's "collections do not expose properties; their state is reached only
// via methods" -- MapC's methods are those method shims.
type MapC[K comparable, V any] struct {
	target *map[K]V
	flavor Flavor
}

// ReactiveMap wraps target for deep, read-write access.
func ReactiveMap[K comparable, V any](target *map[K]V) *MapC[K, V] {
	return wrapMap(target, MutableDeep)
}

// ShallowReactiveMap wraps target for shallow, read-write access.
func ShallowReactiveMap[K comparable, V any](target *map[K]V) *MapC[K, V] {
	return wrapMap(target, MutableShallow)
}

// ReadonlyMap wraps target for deep, read-only access.
func ReadonlyMap[K comparable, V any](target *map[K]V) *MapC[K, V] {
	return wrapMap(target, ReadonlyDeep)
}

// ShallowReadonlyMap wraps target for shallow, read-only access.
func ShallowReadonlyMap[K comparable, V any](target *map[K]V) *MapC[K, V] {
	return wrapMap(target, ReadonlyShallow)
}

func wrapMap[K comparable, V any](target *map[K]V, flavor Flavor) *MapC[K, V] {
	if target == nil {
		return nil
	}
	if *target == nil {
		*target = make(map[K]V)
	}
	if globalRegistry.isMarkedRaw(target) {
		return &MapC[K, V]{target: target, flavor: flavor}
	}
	if !flavor.Readonly() {
		if p, ok := existingReadonly[*MapC[K, V]](target); ok {
			return p
		}
	}
	return getOrCreateProxy(target, flavor, func() *MapC[K, V] {
		return &MapC[K, V]{target: target, flavor: flavor}
	})
}

// Raw returns the underlying map pointer, unwrapped.
func (m *MapC[K, V]) Raw() *map[K]V { return m.target }

// IsReadonly reports whether writes through this wrapper are refused.
func (m *MapC[K, V]) IsReadonly() bool { return m.flavor.Readonly() }

// Size returns the number of entries, tracking ITERATE.
func (m *MapC[K, V]) Size() int {
	if !m.flavor.Readonly() {
		Track(m.target, KindMap, OpIterate, Iterate)
	}
	return len(*m.target)
}

// Get returns the value for k and whether it was present, tracking k.
func (m *MapC[K, V]) Get(k K) (V, bool) {
	v, ok := (*m.target)[k]
	if !m.flavor.Readonly() {
		Track(m.target, KindMap, OpGet, k)
	}
	return v, ok
}

// Has reports whether k is present, tracking k.
func (m *MapC[K, V]) Has(k K) bool {
	_, ok := (*m.target)[k]
	if !m.flavor.Readonly() {
		Track(m.target, KindMap, OpHas, k)
	}
	return ok
}

// Set inserts or updates k (spec collection table: ADD fires key+ITERATE+
// MAP_KEY_ITERATE; SET fires key+ITERATE only).
func (m *MapC[K, V]) Set(k K, v V) {
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

// Delete removes k, if present (spec: DELETE fires key+ITERATE+
// MAP_KEY_ITERATE for maps).
func (m *MapC[K, V]) Delete(k K) bool {
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

// Clear empties the map (spec: CLEAR fires every DepSet registered for the
// target). clear snapshots the old collection so a debug hook may inspect it
// (spec §4.5 "clear requires snapshotting the old collection").
func (m *MapC[K, V]) Clear() map[K]V {
	if m.flavor.Readonly() {
		warnAndReport(reactorerr.ErrReadonlyMutation, m.target, "CLEAR")
		return nil
	}
	old := *m.target
	if len(old) == 0 {
		return old
	}
	*m.target = make(map[K]V)
	Trigger(TriggerParams{Target: m.target, Kind: KindMap, Op: OpClear})
	return old
}

// Range enumerates every entry, tracking the whole-container ITERATE
// sentinel (spec: "for iteration, track ITERATE").
func (m *MapC[K, V]) Range(fn func(K, V) bool) {
	if !m.flavor.Readonly() {
		Track(m.target, KindMap, OpIterate, Iterate)
	}
	for k, v := range *m.target {
		if !fn(k, v) {
			return
		}
	}
}

// Keys enumerates only the map's keys, tracking MAP_KEY_ITERATE (spec: "and
// MAP_KEY_ITERATE if iterating only keys").
func (m *MapC[K, V]) Keys(fn func(K) bool) {
	if !m.flavor.Readonly() {
		Track(m.target, KindMap, OpIterate, MapKeyIterate)
	}
	for k := range *m.target {
		if !fn(k) {
			return
		}
	}
}
