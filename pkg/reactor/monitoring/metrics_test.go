package monitoring

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNoopCollector_ImplementsInterface tests that NoopCollector implements Collector
func TestNoopCollector_ImplementsInterface(t *testing.T) {
	var _ Collector = (*NoopCollector)(nil)
}

// TestNoopCollector_AllMethodsSafe tests that all NoopCollector methods are safe to call
func TestNoopCollector_AllMethodsSafe(t *testing.T) {
	noop := &NoopCollector{}

	assert.NotPanics(t, func() {
		noop.RecordTrack("ref", "GET")
	}, "RecordTrack should not panic")

	assert.NotPanics(t, func() {
		noop.RecordTrigger("ref", "SET")
	}, "RecordTrigger should not panic")

	assert.NotPanics(t, func() {
		noop.RecordEffectRun(100 * time.Nanosecond)
	}, "RecordEffectRun should not panic")

	assert.NotPanics(t, func() {
		noop.RecordComputedRecompute()
	}, "RecordComputedRecompute should not panic")

	assert.NotPanics(t, func() {
		noop.RecordDepSetSize(5)
	}, "RecordDepSetSize should not panic")
}

// TestNoopCollector_ZeroAllocation tests that NoopCollector has zero allocation overhead
func TestNoopCollector_ZeroAllocation(t *testing.T) {
	noop := &NoopCollector{}

	allocs := testing.AllocsPerRun(100, func() {
		noop.RecordTrack("ref", "GET")
		noop.RecordTrigger("ref", "SET")
		noop.RecordEffectRun(100 * time.Nanosecond)
		noop.RecordComputedRecompute()
		noop.RecordDepSetSize(5)
	})

	assert.Equal(t, float64(0), allocs, "NoopCollector should have zero allocations")
}

// TestGlobalMetrics_DefaultIsNoop tests that global metrics defaults to NoOp
func TestGlobalMetrics_DefaultIsNoop(t *testing.T) {
	SetGlobalMetrics(&NoopCollector{})

	metrics := GetGlobalMetrics()
	require.NotNil(t, metrics, "GetGlobalMetrics should never return nil")

	_, ok := metrics.(*NoopCollector)
	assert.True(t, ok, "Default metrics should be NoopCollector")
}

// TestGlobalMetrics_SetAndGet tests setting and getting global metrics
func TestGlobalMetrics_SetAndGet(t *testing.T) {
	mock := &MockCollector{}

	SetGlobalMetrics(mock)

	metrics := GetGlobalMetrics()
	require.NotNil(t, metrics, "GetGlobalMetrics should not return nil")

	retrieved, ok := metrics.(*MockCollector)
	assert.True(t, ok, "Should retrieve MockCollector")
	assert.Equal(t, mock, retrieved, "Should be the same instance")

	SetGlobalMetrics(&NoopCollector{})
}

// TestGlobalMetrics_ThreadSafe tests that global metrics is thread-safe
func TestGlobalMetrics_ThreadSafe(t *testing.T) {
	var wg sync.WaitGroup
	numGoroutines := 100

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			if id%2 == 0 {
				SetGlobalMetrics(&NoopCollector{})
			} else {
				metrics := GetGlobalMetrics()
				require.NotNil(t, metrics, "Should never get nil metrics")
			}
		}(i)
	}

	wg.Wait()

	metrics := GetGlobalMetrics()
	assert.NotNil(t, metrics, "Should have valid metrics after concurrent access")
}

// TestGlobalMetrics_NilSafety tests that setting nil doesn't break system
func TestGlobalMetrics_NilSafety(t *testing.T) {
	SetGlobalMetrics(nil)

	metrics := GetGlobalMetrics()
	assert.NotNil(t, metrics, "GetGlobalMetrics should never return nil even after setting nil")
}

// TestMultipleImplementations tests that multiple implementations can be used
func TestMultipleImplementations(t *testing.T) {
	implementations := []Collector{
		&NoopCollector{},
		&MockCollector{},
	}

	for i, impl := range implementations {
		t.Run(fmt.Sprintf("Implementation_%d", i), func(t *testing.T) {
			SetGlobalMetrics(impl)

			metrics := GetGlobalMetrics()
			require.NotNil(t, metrics, "Metrics should not be nil for implementation %d", i)

			assert.NotPanics(t, func() {
				metrics.RecordTrack("ref", "GET")
				metrics.RecordTrigger("ref", "SET")
				metrics.RecordEffectRun(100 * time.Nanosecond)
				metrics.RecordComputedRecompute()
				metrics.RecordDepSetSize(3)
			}, "Implementation %d should not panic", i)
		})
	}

	SetGlobalMetrics(&NoopCollector{})
}

// MockCollector is a mock implementation for testing
type MockCollector struct {
	TrackCalls        int
	TriggerCalls      int
	EffectRunCalls    int
	RecomputeCalls    int
	DepSetSizeCalls   int
	LastTrackKind     string
	LastTrackOp       string
	LastTriggerKind   string
	LastTriggerOp     string
	LastEffectRunTime time.Duration
	LastDepSetSize    int
	mu                sync.Mutex
}

func (m *MockCollector) RecordTrack(targetKind, op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TrackCalls++
	m.LastTrackKind = targetKind
	m.LastTrackOp = op
}

func (m *MockCollector) RecordTrigger(targetKind, op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TriggerCalls++
	m.LastTriggerKind = targetKind
	m.LastTriggerOp = op
}

func (m *MockCollector) RecordEffectRun(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EffectRunCalls++
	m.LastEffectRunTime = duration
}

func (m *MockCollector) RecordComputedRecompute() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecomputeCalls++
}

func (m *MockCollector) RecordDepSetSize(size int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DepSetSizeCalls++
	m.LastDepSetSize = size
}

// TestMockCollector_Records tests that MockCollector records calls
func TestMockCollector_Records(t *testing.T) {
	mock := &MockCollector{}

	mock.RecordTrack("ref", "GET")
	assert.Equal(t, 1, mock.TrackCalls)
	assert.Equal(t, "ref", mock.LastTrackKind)
	assert.Equal(t, "GET", mock.LastTrackOp)

	mock.RecordTrigger("record", "SET")
	assert.Equal(t, 1, mock.TriggerCalls)
	assert.Equal(t, "record", mock.LastTriggerKind)
	assert.Equal(t, "SET", mock.LastTriggerOp)

	mock.RecordEffectRun(150 * time.Nanosecond)
	assert.Equal(t, 1, mock.EffectRunCalls)
	assert.Equal(t, 150*time.Nanosecond, mock.LastEffectRunTime)

	mock.RecordComputedRecompute()
	assert.Equal(t, 1, mock.RecomputeCalls)

	mock.RecordDepSetSize(7)
	assert.Equal(t, 1, mock.DepSetSizeCalls)
	assert.Equal(t, 7, mock.LastDepSetSize)
}

// TestMockCollector_Concurrent tests MockCollector is thread-safe
func TestMockCollector_Concurrent(t *testing.T) {
	mock := &MockCollector{}

	var wg sync.WaitGroup
	numGoroutines := 50

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mock.RecordTrack("ref", "GET")
			mock.RecordTrigger("ref", "SET")
		}()
	}

	wg.Wait()

	assert.Equal(t, numGoroutines, mock.TrackCalls, "Should record all track calls")
	assert.Equal(t, numGoroutines, mock.TriggerCalls, "Should record all trigger calls")
}
