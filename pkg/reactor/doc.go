/*
Package reactor implements a Vue-inspired reactivity core: Refs, Computeds,
and Effects wired through a shared dependency graph, generalized to the
explicit accessor collection types Go's static typing calls for (Record,
List, MapC, SetC and their weak/shallow/readonly variants) in place of a
transparent proxy.

# Core Concepts

  - Ref[T]: a single-slot reactive cell, tracked/triggered on the fixed key
    "value".
  - Computed[T]: a lazily recomputed derived value with its own dirty bit.
  - Effect: a re-runnable unit of work that records which (target, key) pairs
    it reads each run and is scheduled to re-run when any of them change.
  - Record[T], List[T], MapC[K,V], SetC[T]: explicit Get/Set/Has/Delete/Range
    accessors over a struct, slice, map, or set, each call site a track or
    trigger point.
  - WeakMapC[K,V], WeakSetC[T]: the same accessors minus Size/Clear/Range.

# Quick Start

	count := reactor.NewRef(0)
	doubled := reactor.NewComputed(func() int { return count.Value() * 2 })

	stop := reactor.WatchEffect(func() {
	    fmt.Println("doubled:", doubled.Value())
	})
	defer stop()

	count.Set(21) // prints "doubled: 42"

# Collections

	type Profile struct {
	    Name string
	    Age  int
	}
	p := reactor.Reactive(&Profile{Name: "Ada", Age: 30})
	reactor.WatchEffect(func() {
	    fmt.Println(p.Get("Name"))
	})
	p.Set("Name", "Grace") // re-runs the effect above

# Tracking Control

PauseTracking/EnableTracking/ResetTracking let a read inside an effect body
opt out of (or back into) dependency tracking, mirroring the stack-based
pause/enable/reset trio of the reactivity systems this package is modeled on.

# Thread Safety

Ref, Computed, DepSet and the Registry lock around their own state; Record,
List, MapC, SetC and the weak variants do not lock. The Registry mutex
guards each bookkeeping step, but the active-effect and tracking-enabled
stacks are process-wide, so track/trigger assume one goroutine drives
effects at any instant. Effect bodies are
run synchronously on whichever goroutine triggers them -- there is no
implicit dispatch to a UI thread.

# Error Handling

This package panics on programming errors: NewComputed with a nil getter
(reactorerr.ErrNilComputeFn), Watch with a nil callback
(reactorerr.ErrNilCallback), an out-of-range List index, a negative
List.SetLength, and an unknown field name or mismatched value type on a
Record. A panic inside an effect body is re-raised to the caller once the
effect stacks are restored. Runtime misuse such as writing to a readonly
wrapper or calling Computed.Set without a setter is reported through the
observability package instead of panicking,
since a reactive write is rarely in a position to have its error checked by
the caller.

# Package Structure

  - ref.go: Ref[T]
  - computed.go: Computed[T]
  - record.go, list.go, mapc.go, setc.go, weak.go: collection interceptors
  - effect.go: Effect and its scheduling hooks
  - tracker.go: Track/Trigger and the collection rule table
  - registry.go: the shared proxy/dependency registry
  - watch.go, watch_effect.go, scheduler.go: Vue-style convenience layers
  - api.go: ToRaw, MarkRaw, IsReactive, IsReadonly, IsProxy, tracking control
*/
package reactor
