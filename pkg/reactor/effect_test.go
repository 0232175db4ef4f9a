package reactor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newbpydev/reactor/pkg/reactor/monitoring"
)

func TestEffect_Run_FeedsActiveProfile(t *testing.T) {
	resetRegistryForTest()
	r := NewRef(1)

	done := make(chan *monitoring.EffectProfile, 1)
	go func() {
		done <- monitoring.ProfileEffects(150 * time.Millisecond)
	}()

	time.Sleep(20 * time.Millisecond)

	e := NewEffect(func() {
		r.Value()
	}, EffectOptions{})
	defer e.Stop()

	r.Set(2)
	r.Set(3)

	profile := <-done
	stats, ok := profile.Calls[e.ID]
	require.True(t, ok, "effect runs during the profiling window must be recorded under its ID")
	assert.GreaterOrEqual(t, stats.Count, int64(2))
}

func TestEffect_Run_NoActiveProfile_DoesNotPanic(t *testing.T) {
	resetRegistryForTest()
	r := NewRef(1)

	e := NewEffect(func() {
		r.Value()
	}, EffectOptions{})
	defer e.Stop()

	assert.NotPanics(t, func() { r.Set(2) })
}
