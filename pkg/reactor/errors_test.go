package reactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newbpydev/reactor/pkg/reactor/observability"
	"github.com/newbpydev/reactor/pkg/reactor/reactorerr"
)

func TestWatch_NilCallback(t *testing.T) {
	ref := NewRef(0)
	assert.PanicsWithValue(t, reactorerr.ErrNilCallback, func() {
		Watch(ref, nil)
	})
}

func TestNewComputed_NilFunction_Panics(t *testing.T) {
	assert.PanicsWithValue(t, reactorerr.ErrNilComputeFn, func() {
		NewComputed[int](nil)
	})
}

func TestReadonlyRecord_SetRefused(t *testing.T) {
	type Point struct{ X, Y int }
	ro := ReadonlyRecord(&Point{X: 1, Y: 2})
	assert.NotPanics(t, func() { ro.Set("X", 99) }, "a readonly write must warn, not panic")
	assert.Equal(t, 1, ro.Get("X"), "a refused write must leave the target unchanged")
}

func TestReadonlyList_SetRefused(t *testing.T) {
	s := []int{1, 2, 3}
	ro := ReadonlyList(&s)
	assert.NotPanics(t, func() { ro.Set(0, 99) })
	assert.Equal(t, 1, ro.Get(0))
}

func TestReadonlyMap_SetRefused(t *testing.T) {
	m := map[string]int{"a": 1}
	ro := ReadonlyMap(&m)
	assert.NotPanics(t, func() { ro.Set("a", 99) })
	v, _ := ro.Get("a")
	assert.Equal(t, 1, v)
}

func TestReadonlySet_AddRefused(t *testing.T) {
	m := map[int]struct{}{1: {}}
	ro := ReadonlySet(&m)
	assert.NotPanics(t, func() { ro.Add(2) })
	assert.False(t, ro.Has(2))
}

func TestComputed_Set_NoSetter_DoesNotPanic(t *testing.T) {
	c := NewComputed(func() int { return 1 })
	assert.NotPanics(t, func() { c.Set(5) })
}

func TestRecord_Get_UnknownField_Panics(t *testing.T) {
	type Point struct{ X, Y int }
	r := Reactive(&Point{})
	assert.Panics(t, func() { r.Get("Z") })
}

func TestReadonlyMutation_RecordsBreadcrumb(t *testing.T) {
	observability.ClearBreadcrumbs()

	type Point struct{ X, Y int }
	ro := ReadonlyRecord(&Point{X: 1})
	ro.Set("X", 99)

	crumbs := observability.GetBreadcrumbs()
	require.NotEmpty(t, crumbs, "a readonly-mutation refusal must leave a breadcrumb")
	last := crumbs[len(crumbs)-1]
	assert.Equal(t, reactorerr.ErrReadonlyMutation.Error(), last.Message)
}

func TestEffectPanic_RecordsBreadcrumb(t *testing.T) {
	resetRegistryForTest()
	observability.ClearBreadcrumbs()

	e := NewEffect(func() {}, EffectOptions{Lazy: true})
	defer e.Stop()

	assert.Panics(t, func() {
		e.fn = func() { panic("boom") }
		e.Run()
	})

	crumbs := observability.GetBreadcrumbs()
	require.NotEmpty(t, crumbs, "a panicking effect run must leave a breadcrumb")
	assert.Equal(t, "effect", crumbs[len(crumbs)-1].Category)
}
