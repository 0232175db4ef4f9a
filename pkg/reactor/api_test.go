package reactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type apiTestTarget struct{ X int }

func TestToRaw_UnwrapsWrapper(t *testing.T) {
	resetRegistryForTest()
	target := &apiTestTarget{X: 1}
	p := Reactive(target)
	assert.Same(t, target, ToRaw(p))
}

func TestToRaw_PassesThroughPlainValues(t *testing.T) {
	assert.Equal(t, 42, ToRaw(42))
	assert.Equal(t, "x", ToRaw("x"))
}

func TestIsProxy(t *testing.T) {
	resetRegistryForTest()
	target := &apiTestTarget{}
	p := Reactive(target)
	assert.True(t, IsProxy(p))
	assert.False(t, IsProxy(target))
	assert.False(t, IsProxy(42))
}

func TestIsReactive_IsReadonly(t *testing.T) {
	resetRegistryForTest()
	mutable := Reactive(&apiTestTarget{})
	readonly := ReadonlyRecord(&apiTestTarget{})

	assert.True(t, IsReactive(mutable))
	assert.False(t, IsReactive(readonly))

	assert.False(t, IsReadonly(mutable))
	assert.True(t, IsReadonly(readonly))
}

func TestIsReactive_IsReadonly_AcrossCollectionTypes(t *testing.T) {
	resetRegistryForTest()
	s := []int{1}
	ls := ReactiveList(&s)
	roLs := ReadonlyList(&s)
	assert.True(t, IsReactive(ls))
	assert.True(t, IsReadonly(roLs))

	m := map[string]int{}
	mc := ReactiveMap(&m)
	assert.True(t, IsReactive(mc))
	assert.False(t, IsReadonly(mc))
}

func TestMarkRaw_PreventsTracking(t *testing.T) {
	resetRegistryForTest()
	target := &apiTestTarget{X: 1}
	MarkRaw(target)
	p := Reactive(target)

	runs := 0
	e := NewEffect(func() {
		runs++
		p.Get("X")
	}, EffectOptions{})
	defer e.Stop()

	p.Set("X", 2)
	assert.Equal(t, 1, runs, "a marked-raw target's wrapper must never track or trigger")
}

func TestPauseEnableResetTracking_Nesting(t *testing.T) {
	resetRegistryForTest()
	r := NewRef(1)

	runs := 0
	e := NewEffect(func() {
		runs++
		PauseTracking()
		EnableTracking()
		r.Value() // tracked: innermost frame is enabled
		ResetTracking()
		r.Value() // not tracked: back to paused frame
		ResetTracking()
	}, EffectOptions{})
	defer e.Stop()

	r.Set(2)
	assert.Equal(t, 2, runs, "the nested EnableTracking read must still subscribe the effect")
}
