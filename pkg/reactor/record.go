package reactor

import (
	"fmt"
	"reflect"

	"github.com/newbpydev/reactor/pkg/reactor/reactorerr"
)

// Record is the Object Interceptor (spec §4.4) for plain records. Go has no
// transparent property-access hook, so per design note §9 this is the
// explicit accessor form: Record[T] wraps a pointer to a struct and makes
// its field reads/writes the track/trigger call sites the spec describes.
// Because Go struct shapes are fixed at compile time, a Record never grows
// or loses fields -- Set therefore only ever fires the spec's SET rule,
// never ADD (see DESIGN.md).
type Record[T any] struct {
	target *T
	flavor Flavor
	// passthrough marks a target that markRaw opted permanently out of
	// tracking (spec §4.1 wrap() rule: a raw-marked target passes through
	// unchanged).
	passthrough bool
}

// Reactive wraps target for deep, read-write access (spec §6 `reactive(t)`).
func Reactive[T any](target *T) *Record[T] { return wrapRecord(target, MutableDeep) }

// ShallowReactive wraps target for shallow, read-write access: nested
// container fields are returned raw, unwrapped (spec §6
// `shallow-reactive(t)`).
func ShallowReactive[T any](target *T) *Record[T] { return wrapRecord(target, MutableShallow) }

// ReadonlyRecord wraps target for deep, read-only access; writes are refused
// (spec §6 `readonly(t)`).
func ReadonlyRecord[T any](target *T) *Record[T] { return wrapRecord(target, ReadonlyDeep) }

// ShallowReadonlyRecord wraps target for shallow, read-only access (spec §6
// `shallow-readonly(t)`).
func ShallowReadonlyRecord[T any](target *T) *Record[T] { return wrapRecord(target, ReadonlyShallow) }

func wrapRecord[T any](target *T, flavor Flavor) *Record[T] {
	if target == nil {
		return nil
	}
	if globalRegistry.isMarkedRaw(target) {
		return &Record[T]{target: target, flavor: flavor, passthrough: true}
	}
	// wrap() rule: a mutable flavor requested over a target that already has
	// a read-only proxy returns that read-only proxy as-is.
	if !flavor.Readonly() {
		if p, ok := existingReadonly[*Record[T]](target); ok {
			return p
		}
	}
	return getOrCreateProxy(target, flavor, func() *Record[T] {
		return &Record[T]{target: target, flavor: flavor}
	})
}

// Raw returns the underlying target, unwrapped (spec `to-raw`).
func (r *Record[T]) Raw() *T { return r.target }

// IsReactive reports whether this flavor permits mutation.
func (r *Record[T]) IsReactive() bool { return !r.flavor.Readonly() }

// IsReadonly reports whether writes through this wrapper are refused.
func (r *Record[T]) IsReadonly() bool { return r.flavor.Readonly() }

// Flavor returns the wrapper's fixed flavor.
func (r *Record[T]) Flavor() Flavor { return r.flavor }

func (r *Record[T]) structValue() reflect.Value {
	return reflect.ValueOf(r.target).Elem()
}

func (r *Record[T]) fieldValue(field string) reflect.Value {
	fv := r.structValue().FieldByName(field)
	if !fv.IsValid() {
		panic(fmt.Sprintf("reactor: Record has no field %q", field))
	}
	return fv
}

// Has reports whether field names a field of the underlying struct,
// tracking HAS on field for read-write flavors (spec §4.4 "Has").
func (r *Record[T]) Has(field string) bool {
	fv := r.structValue().FieldByName(field)
	if !r.passthrough && !r.flavor.Readonly() {
		Track(r.target, KindRecord, OpHas, field)
	}
	return fv.IsValid()
}

// Keys enumerates the struct's field names, tracking ITERATE (spec §4.4
// "Enumerate-own-keys").
func (r *Record[T]) Keys() []string {
	t := r.structValue().Type()
	if !r.passthrough && !r.flavor.Readonly() {
		Track(r.target, KindRecord, OpIterate, Iterate)
	}
	keys := make([]string, t.NumField())
	for i := range keys {
		keys[i] = t.Field(i).Name
	}
	return keys
}

// Get reads field, tracking (target, field) for read-write flavors (spec
// §4.4 "Read"). Per step 6, a Ref-valued field auto-unwraps to its current
// value unless this wrapper is shallow.
func (r *Record[T]) Get(field string) any {
	fv := r.fieldValue(field)
	val := fv.Interface()

	if !r.passthrough && !r.flavor.Readonly() {
		Track(r.target, KindRecord, OpGet, field)
	}

	if r.passthrough || r.flavor.Shallow() {
		return val
	}
	if rh, ok := asRefHandle(val); ok {
		return rh.rawValue()
	}
	return val
}

// Set writes value into field (spec §4.4 "Write"). A read-only flavor
// refuses the write and warns in dev mode, returning without error -- per
// spec §7, throwing would propagate through opaque caller code. If the
// field currently holds a Ref and value is not itself a Ref, the assignment
// forwards to the Ref's own Set (spec step 2) instead of overwriting the
// slot, so the Ref's own subscribers still fire correctly.
func (r *Record[T]) Set(field string, value any) {
	if r.flavor.Readonly() {
		warnAndReport(reactorerr.ErrReadonlyMutation, r.target, "SET")
		return
	}

	fv := r.fieldValue(field)
	old := fv.Interface()

	if rh, ok := asRefHandle(old); ok {
		if _, valueIsRef := asRefHandle(value); !valueIsRef {
			if rh.setRawValue(value) {
				return
			}
		}
	}

	setReflectField(fv, value)

	if changed(old, value) {
		Trigger(TriggerParams{Target: r.target, Kind: KindRecord, Op: OpSet, Key: field, NewValue: value, OldValue: old})
	}
}

func setReflectField(fv reflect.Value, value any) {
	if value == nil {
		fv.Set(reflect.Zero(fv.Type()))
		return
	}
	rv := reflect.ValueOf(value)
	if !rv.Type().AssignableTo(fv.Type()) {
		panic(fmt.Sprintf("reactor: cannot assign %s to field of type %s", rv.Type(), fv.Type()))
	}
	fv.Set(rv)
}
