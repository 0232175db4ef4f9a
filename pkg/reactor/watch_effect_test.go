package reactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatchEffect_RunsImmediately(t *testing.T) {
	resetRegistryForTest()
	count := NewRef(0)
	var calls, lastValue int

	cleanup := WatchEffect(func() {
		calls++
		lastValue = count.Value()
	})
	defer cleanup()

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, lastValue)
}

func TestWatchEffect_ReRunsOnDependencyChange(t *testing.T) {
	resetRegistryForTest()
	count := NewRef(0)
	var calls int

	cleanup := WatchEffect(func() {
		calls++
		count.Value()
	})
	defer cleanup()

	count.Set(1)
	count.Set(2)
	assert.Equal(t, 3, calls)
}

func TestWatchEffect_TracksMultipleRefs(t *testing.T) {
	resetRegistryForTest()
	name := NewRef("John")
	age := NewRef(30)
	var calls int

	cleanup := WatchEffect(func() {
		calls++
		_ = name.Value()
		_ = age.Value()
	})
	defer cleanup()

	name.Set("Jane")
	age.Set(31)
	assert.Equal(t, 3, calls)
}

func TestWatchEffect_ConditionalDependenciesAdaptPerRun(t *testing.T) {
	resetRegistryForTest()
	toggle := NewRef(true)
	a := NewRef(1)
	b := NewRef(100)
	var calls int

	cleanup := WatchEffect(func() {
		calls++
		if toggle.Value() {
			a.Value()
		} else {
			b.Value()
		}
	})
	defer cleanup()
	assert.Equal(t, 1, calls)

	b.Set(200)
	assert.Equal(t, 1, calls, "b is not read on the true branch, so it must not be tracked")

	toggle.Set(false)
	assert.Equal(t, 2, calls)

	a.Set(2)
	assert.Equal(t, 2, calls, "a is no longer read once the branch switched, so it must drop out")

	b.Set(300)
	assert.Equal(t, 3, calls)
}

func TestWatchEffect_CleanupStopsReRuns(t *testing.T) {
	resetRegistryForTest()
	count := NewRef(0)
	var calls int

	cleanup := WatchEffect(func() {
		calls++
		count.Value()
	})
	cleanup()

	count.Set(1)
	assert.Equal(t, 1, calls, "a stopped watch effect must not react to further changes")
}

func TestWatchEffect_PanicDuringRerunStillAllowsStop(t *testing.T) {
	resetRegistryForTest()
	count := NewRef(0)

	cleanup := WatchEffect(func() {
		if count.Value() == 1 {
			panic("boom")
		}
	})

	assert.Panics(t, func() { count.Set(1) })
	assert.NotPanics(t, cleanup)
}

func TestWatchEffect_WithScheduler_DefersReRun(t *testing.T) {
	resetRegistryForTest()
	count := NewRef(0)
	sched := NewBatchScheduler()
	var calls int

	cleanup := WatchEffect(func() {
		calls++
		count.Value()
	}, WithScheduler(sched.Schedule))
	defer cleanup()
	assert.Equal(t, 1, calls)

	count.Set(1)
	assert.Equal(t, 1, calls, "a scheduled watch effect must not re-run inline")

	sched.Flush()
	assert.Equal(t, 2, calls)
}
