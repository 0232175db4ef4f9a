package reactor

import "sync"

// Registry is the process-wide bookkeeping the spec describes: a proxy index
// (Target → Flavor → Proxy), a dependency index (Target → Key → DepSet), the
// active-effect stack, and the tracking-enabled stack. Go has no transparent
// proxy mechanism, so "Target" here is always the pointer identity of a
// wrapper's underlying storage (see record.go/list.go/mapc.go/setc.go), used
// directly as a map key.
//
// The default, process-wide instance is globalRegistry. Every public
// constructor and the Tracker functions operate against it. A Registry is
// safe for concurrent use; the mutex exists purely as a defensive measure —
// the model it implements (single logical thread owns track/trigger at any
// instant) still holds for well-behaved callers, per the spec's concurrency
// section.
type Registry struct {
	mu sync.Mutex

	proxyIndex map[any]map[Flavor]any
	depIndex   map[any]map[any]*DepSet
	rawMarked  map[any]struct{}

	effectStack   []*Effect
	trackingStack []bool
	trackingOn    bool
}

// globalRegistry is the single process-wide Registry instance.
var globalRegistry = newRegistry()

func newRegistry() *Registry {
	return &Registry{
		proxyIndex: make(map[any]map[Flavor]any),
		depIndex:   make(map[any]map[any]*DepSet),
		rawMarked:  make(map[any]struct{}),
		trackingOn: true,
	}
}

// getDep returns the DepSet for (target, key), creating it if create is true
// and it does not yet exist. Returns nil if it does not exist and create is
// false.
func (r *Registry) getDep(target any, key Key, create bool) *DepSet {
	r.mu.Lock()
	defer r.mu.Unlock()

	byKey, ok := r.depIndex[target]
	if !ok {
		if !create {
			return nil
		}
		byKey = make(map[any]*DepSet)
		r.depIndex[target] = byKey
	}

	ds, ok := byKey[key]
	if !ok {
		if !create {
			return nil
		}
		ds = NewDepSet()
		byKey[key] = ds
	}
	return ds
}

// allDepSetsForTarget returns every DepSet registered for target, across all
// keys — used by CLEAR, which invalidates the whole container at once.
func (r *Registry) allDepSetsForTarget(target any) []*DepSet {
	r.mu.Lock()
	defer r.mu.Unlock()

	byKey, ok := r.depIndex[target]
	if !ok {
		return nil
	}
	out := make([]*DepSet, 0, len(byKey))
	for _, ds := range byKey {
		out = append(out, ds)
	}
	return out
}

// indexDepSetsAtLeast returns every DepSet registered for target under an
// integer key >= n — used by the sequence length-shrink trigger rule.
func (r *Registry) indexDepSetsAtLeast(target any, n int) []*DepSet {
	r.mu.Lock()
	defer r.mu.Unlock()

	byKey, ok := r.depIndex[target]
	if !ok {
		return nil
	}
	var out []*DepSet
	for k, ds := range byKey {
		if idx, ok := k.(int); ok && idx >= n {
			out = append(out, ds)
		}
	}
	return out
}

// markRaw records target as permanently ineligible for wrapping.
func (r *Registry) markRaw(target any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rawMarked[target] = struct{}{}
}

// isMarkedRaw reports whether target was previously passed to markRaw.
func (r *Registry) isMarkedRaw(target any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rawMarked[target]
	return ok
}

// pushEffect pushes e onto the active-effect stack.
func (r *Registry) pushEffect(e *Effect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effectStack = append(r.effectStack, e)
}

// popEffect pops the top of the active-effect stack.
func (r *Registry) popEffect() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.effectStack) == 0 {
		return
	}
	r.effectStack = r.effectStack[:len(r.effectStack)-1]
}

// activeEffect returns the effect currently at the top of the stack, or nil.
func (r *Registry) activeEffect() *Effect {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.effectStack) == 0 {
		return nil
	}
	return r.effectStack[len(r.effectStack)-1]
}

// isOnEffectStack reports whether e appears anywhere on the active-effect
// stack — re-entrancy is detected by membership, not by equality with the
// top, since a nested computed may push a different effect above this one.
func (r *Registry) isOnEffectStack(e *Effect) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.effectStack {
		if s == e {
			return true
		}
	}
	return false
}

// pushTrackingEnabled pushes the current tracking-enabled flag and sets a
// new one, returning the previous value so the caller can restore it.
func (r *Registry) pushTrackingEnabled(enabled bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.trackingOn
	r.trackingStack = append(r.trackingStack, prev)
	r.trackingOn = enabled
	return prev
}

// restoreTrackingEnabled restores the tracking-enabled flag to prev and pops
// the tracking stack (it is expected to mirror pushTrackingEnabled 1:1).
func (r *Registry) restoreTrackingEnabled(prev bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.trackingStack) > 0 {
		r.trackingStack = r.trackingStack[:len(r.trackingStack)-1]
	}
	r.trackingOn = prev
}

// trackingEnabled reports the current tracking-enabled flag.
func (r *Registry) trackingEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.trackingOn
}

// popTrackingEnabled pops the most recently pushed tracking-enabled frame and
// restores the flag to whatever it was before that push, for callers (the
// package-level ResetTracking) that never held onto the value
// pushTrackingEnabled returned.
func (r *Registry) popTrackingEnabled() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.trackingStack) == 0 {
		return
	}
	prev := r.trackingStack[len(r.trackingStack)-1]
	r.trackingStack = r.trackingStack[:len(r.trackingStack)-1]
	r.trackingOn = prev
}

// getOrCreateProxy looks up target's cached proxy for flavor and returns it
// if present; otherwise it calls factory, caches, and returns the result.
// This is the generic half of the spec's wrap(): each concrete wrapper type
// (Record/List/MapC/SetC) supplies the typed factory and result, since Go
// generics cannot express one polymorphic wrap(any, Flavor) any that
// preserves the caller's static type.
func getOrCreateProxy[P any](target any, flavor Flavor, factory func() P) P {
	globalRegistry.mu.Lock()
	byFlavor, ok := globalRegistry.proxyIndex[target]
	if !ok {
		byFlavor = make(map[Flavor]any)
		globalRegistry.proxyIndex[target] = byFlavor
	}
	if existing, ok := byFlavor[flavor]; ok {
		globalRegistry.mu.Unlock()
		return existing.(P)
	}
	globalRegistry.mu.Unlock()

	p := factory()

	globalRegistry.mu.Lock()
	byFlavor[flavor] = p
	globalRegistry.mu.Unlock()

	return p
}

// existingReadonly returns target's cached read-only proxy (either flavor),
// if one exists, as P. This backs the wrap() rule (spec §4.1): requesting a
// mutable flavor over a target that already has a read-only proxy returns
// that read-only proxy unchanged, rather than minting a new mutable one.
func existingReadonly[P any](target any) (P, bool) {
	var zero P
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()

	byFlavor, ok := globalRegistry.proxyIndex[target]
	if !ok {
		return zero, false
	}
	if p, ok := byFlavor[ReadonlyDeep]; ok {
		if typed, ok := p.(P); ok {
			return typed, true
		}
	}
	if p, ok := byFlavor[ReadonlyShallow]; ok {
		if typed, ok := p.(P); ok {
			return typed, true
		}
	}
	return zero, false
}

// resetRegistryForTest clears all Registry state. Test-only.
func resetRegistryForTest() {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.proxyIndex = make(map[any]map[Flavor]any)
	globalRegistry.depIndex = make(map[any]map[any]*DepSet)
	globalRegistry.rawMarked = make(map[any]struct{})
	globalRegistry.effectStack = nil
	globalRegistry.trackingStack = nil
	globalRegistry.trackingOn = true
}
