package reactor

import "sync"

// DepSet is the unordered set of Effects subscribed to a single (Target,
// Key) pair. DepSets are created lazily by the Registry and are never
// proactively shrunk to empty — only effect cleanup (detachAll) or Stop
// removes members.
type DepSet struct {
	mu      sync.Mutex
	effects map[*Effect]struct{}
}

// NewDepSet returns an empty DepSet.
func NewDepSet() *DepSet {
	return &DepSet{effects: make(map[*Effect]struct{})}
}

// add registers e as a member, returning true if it was not already one.
func (d *DepSet) add(e *Effect) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.effects[e]; ok {
		return false
	}
	d.effects[e] = struct{}{}
	return true
}

// remove drops e from the set, if present.
func (d *DepSet) remove(e *Effect) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.effects, e)
}

// snapshot returns a point-in-time copy of the current members. Trigger must
// iterate a snapshot, not the live set, since running an effect mutates its
// own subscriptions (and therefore this DepSet's membership) mid-iteration.
func (d *DepSet) snapshot() []*Effect {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*Effect, 0, len(d.effects))
	for e := range d.effects {
		out = append(out, e)
	}
	return out
}

// Len reports the current member count, used for dependency-set-size metrics.
func (d *DepSet) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.effects)
}
