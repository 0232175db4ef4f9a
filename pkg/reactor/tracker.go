package reactor

import (
	"github.com/newbpydev/reactor/pkg/reactor/monitoring"
)

// Kind names the flavor of container a (target, key) pair belongs to, so
// Trigger can apply the correct collection rule from the spec's table
// without each container type re-implementing it.
type Kind string

const (
	KindRecord Kind = "record"
	KindList   Kind = "list"
	KindMap    Kind = "map"
	KindSet    Kind = "set"
	KindRef    Kind = "ref"
	// KindComputed is used for a Computed's own self-tracking/self-triggering
	// (its cached "value" slot), distinct from the Kind of whatever it reads.
	KindComputed Kind = "computed"
)

// Track records that the currently active effect (if any) read (target, key)
// during the operation op. It is a no-op if tracking is disabled or no
// effect is active — the common case for reads outside any effect body.
func Track(target any, kind Kind, op Op, key Key) {
	if !globalRegistry.trackingEnabled() {
		return
	}
	e := globalRegistry.activeEffect()
	if e == nil {
		return
	}

	ds := globalRegistry.getDep(target, key, true)
	if ds.add(e) {
		e.addSub(ds)
	}

	if e.opts.OnTrack != nil {
		e.opts.OnTrack(TrackEvent{Target: target, Op: op, Key: key})
	}

	monitoring.GetGlobalMetrics().RecordTrack(string(kind), string(op))
	monitoring.GetGlobalMetrics().RecordDepSetSize(ds.Len())
}

// TriggerParams carries everything Trigger needs to apply the spec's
// collection rule table for one change. NewLength is only meaningful when
// Kind is KindList and Key is LengthKey (a sequence length write).
type TriggerParams struct {
	Target    any
	Kind      Kind
	Op        Op
	Key       Key
	NewValue  any
	OldValue  any
	NewLength int
}

// Trigger propagates a change at (Target, Key) to every effect subscribed,
// per the spec's collection rule table (spec.md §4.3):
//
//	CLEAR                              -> every DepSet for Target
//	sequence write, key == "length"    -> "length" DepSet + every index >= NewLength
//	ADD, sequence integer key          -> (Target,key) + (Target,"length")
//	ADD, keyed map                     -> (Target,key) + ITERATE + MAP_KEY_ITERATE
//	ADD, unique set / plain record     -> (Target,key) + ITERATE
//	DELETE, keyed map                  -> (Target,key) + ITERATE + MAP_KEY_ITERATE
//	DELETE, other                      -> (Target,key) + ITERATE
//	SET, keyed map                     -> (Target,key) + ITERATE
//	SET, other                         -> (Target,key) only
//
// The run set is computed as a de-duplicated union of effects from the
// collected DepSets, snapshotted before any of them runs (so effects that
// mutate their own subscriptions mid-trigger don't perturb this pass). A
// triggered effect that is also the currently-running effect is skipped
// unless it opted into AllowRecurse.
func Trigger(p TriggerParams) {
	depSets := collectDepSets(p)

	seen := make(map[*Effect]struct{})
	var toRun []*Effect
	for _, ds := range depSets {
		for _, e := range ds.snapshot() {
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			toRun = append(toRun, e)
		}
	}

	active := globalRegistry.activeEffect()
	evt := TriggerEvent{Target: p.Target, Op: p.Op, Key: p.Key, NewValue: p.NewValue, OldValue: p.OldValue}

	for _, e := range toRun {
		if e == active && !e.AllowRecurse() {
			continue
		}
		if e.opts.OnTrigger != nil {
			e.opts.OnTrigger(evt)
		}
		if e.opts.Scheduler != nil {
			e.opts.Scheduler(e)
		} else {
			e.Run()
		}
	}

	monitoring.GetGlobalMetrics().RecordTrigger(string(p.Kind), string(p.Op))
}

func collectDepSets(p TriggerParams) []*DepSet {
	add := func(out []*DepSet, key Key) []*DepSet {
		if ds := globalRegistry.getDep(p.Target, key, false); ds != nil {
			out = append(out, ds)
		}
		return out
	}

	switch {
	case p.Op == OpClear:
		return globalRegistry.allDepSetsForTarget(p.Target)

	case p.Kind == KindList && p.Key == LengthKey:
		var out []*DepSet
		out = add(out, LengthKey)
		out = append(out, globalRegistry.indexDepSetsAtLeast(p.Target, p.NewLength)...)
		return out

	case p.Op == OpAdd && p.Kind == KindList:
		var out []*DepSet
		out = add(out, p.Key)
		out = add(out, LengthKey)
		return out

	case p.Op == OpAdd && p.Kind == KindMap:
		var out []*DepSet
		out = add(out, p.Key)
		out = add(out, Iterate)
		out = add(out, MapKeyIterate)
		return out

	case p.Op == OpAdd:
		var out []*DepSet
		out = add(out, p.Key)
		out = add(out, Iterate)
		return out

	case p.Op == OpDelete && p.Kind == KindMap:
		var out []*DepSet
		out = add(out, p.Key)
		out = add(out, Iterate)
		out = add(out, MapKeyIterate)
		return out

	case p.Op == OpDelete:
		var out []*DepSet
		out = add(out, p.Key)
		out = add(out, Iterate)
		return out

	case p.Op == OpSet && p.Kind == KindMap:
		var out []*DepSet
		out = add(out, p.Key)
		out = add(out, Iterate)
		return out

	case p.Op == OpSet:
		var out []*DepSet
		out = add(out, p.Key)
		return out

	default:
		return nil
	}
}
