package observability

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockReporter is a test implementation of ErrorReporter
type mockReporter struct {
	panicCalls []mockPanicCall
	errorCalls []mockErrorCall
	flushCalls int
	flushError error
	mu         sync.Mutex
}

type mockPanicCall struct {
	err *EffectPanicError
	ctx *ErrorContext
}

type mockErrorCall struct {
	err error
	ctx *ErrorContext
}

func (m *mockReporter) ReportPanic(err *EffectPanicError, ctx *ErrorContext) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panicCalls = append(m.panicCalls, mockPanicCall{err: err, ctx: ctx})
}

func (m *mockReporter) ReportError(err error, ctx *ErrorContext) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCalls = append(m.errorCalls, mockErrorCall{err: err, ctx: ctx})
}

func (m *mockReporter) Flush(timeout time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushCalls++
	return m.flushError
}

func (m *mockReporter) getPanicCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.panicCalls)
}

func (m *mockReporter) getErrorCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.errorCalls)
}

func (m *mockReporter) getFlushCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushCalls
}

// TestErrorReporter_Interface verifies the ErrorReporter interface is defined correctly
func TestErrorReporter_Interface(t *testing.T) {
	tests := []struct {
		name     string
		reporter ErrorReporter
	}{
		{
			name:     "mock reporter implements interface",
			reporter: &mockReporter{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.reporter)

			panicErr := &EffectPanicError{
				EffectID:   "effect-1",
				Op:         "run",
				PanicValue: "test panic",
			}
			ctx := &ErrorContext{
				EffectID:  "effect-1",
				Op:        "run",
				Timestamp: time.Now(),
			}
			tt.reporter.ReportPanic(panicErr, ctx)

			tt.reporter.ReportError(assert.AnError, ctx)

			err := tt.reporter.Flush(5 * time.Second)
			assert.NoError(t, err)
		})
	}
}

// TestSetErrorReporter tests setting the global error reporter
func TestSetErrorReporter(t *testing.T) {
	tests := []struct {
		name     string
		reporter ErrorReporter
		wantNil  bool
	}{
		{
			name:     "set non-nil reporter",
			reporter: &mockReporter{},
			wantNil:  false,
		},
		{
			name:     "set nil reporter",
			reporter: nil,
			wantNil:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetErrorReporter(tt.reporter)

			got := GetErrorReporter()
			if tt.wantNil {
				assert.Nil(t, got)
			} else {
				assert.NotNil(t, got)
				assert.Equal(t, tt.reporter, got)
			}

			SetErrorReporter(nil)
		})
	}
}

// TestGetErrorReporter tests retrieving the global error reporter
func TestGetErrorReporter(t *testing.T) {
	tests := []struct {
		name    string
		setup   func()
		wantNil bool
	}{
		{
			name: "get when reporter is set",
			setup: func() {
				SetErrorReporter(&mockReporter{})
			},
			wantNil: false,
		},
		{
			name: "get when reporter is nil",
			setup: func() {
				SetErrorReporter(nil)
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			got := GetErrorReporter()

			if tt.wantNil {
				assert.Nil(t, got)
			} else {
				assert.NotNil(t, got)
			}

			SetErrorReporter(nil)
		})
	}
}

// TestErrorReporter_NilHandling tests that nil reporter is handled gracefully
func TestErrorReporter_NilHandling(t *testing.T) {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{
			name: "nil reporter does not panic on get",
			test: func(t *testing.T) {
				SetErrorReporter(nil)
				assert.NotPanics(t, func() {
					reporter := GetErrorReporter()
					assert.Nil(t, reporter)
				})
			},
		},
		{
			name: "setting nil reporter multiple times is safe",
			test: func(t *testing.T) {
				assert.NotPanics(t, func() {
					SetErrorReporter(nil)
					SetErrorReporter(nil)
					SetErrorReporter(nil)
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.test(t)
			SetErrorReporter(nil)
		})
	}
}

// TestErrorReporter_Concurrent tests thread-safety of global reporter management
func TestErrorReporter_Concurrent(t *testing.T) {
	tests := []struct {
		name       string
		goroutines int
		operations int
	}{
		{
			name:       "10 goroutines, 100 operations each",
			goroutines: 10,
			operations: 100,
		},
		{
			name:       "50 goroutines, 50 operations each",
			goroutines: 50,
			operations: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var wg sync.WaitGroup
			reporter := &mockReporter{}

			for i := 0; i < tt.goroutines; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < tt.operations; j++ {
						SetErrorReporter(reporter)
						got := GetErrorReporter()
						assert.NotNil(t, got)
					}
				}()
			}

			wg.Wait()

			got := GetErrorReporter()
			assert.NotNil(t, got)

			SetErrorReporter(nil)
		})
	}
}

// TestErrorContext_Fields verifies ErrorContext has all required fields
func TestErrorContext_Fields(t *testing.T) {
	tests := []struct {
		name string
		ctx  ErrorContext
	}{
		{
			name: "all fields present",
			ctx: ErrorContext{
				EffectID:    "effect-1",
				Target:      "ref<counter>",
				Op:          "SET",
				Timestamp:   time.Now(),
				Tags:        map[string]string{"env": "test"},
				Extra:       map[string]interface{}{"key": "value"},
				Breadcrumbs: []Breadcrumb{{Type: "track"}},
				StackTrace:  []byte("stack trace"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "effect-1", tt.ctx.EffectID)
			assert.Equal(t, "ref<counter>", tt.ctx.Target)
			assert.Equal(t, "SET", tt.ctx.Op)
			assert.NotZero(t, tt.ctx.Timestamp)
			assert.NotNil(t, tt.ctx.Tags)
			assert.NotNil(t, tt.ctx.Extra)
			assert.NotNil(t, tt.ctx.Breadcrumbs)
			assert.NotNil(t, tt.ctx.StackTrace)
		})
	}
}

// TestBreadcrumb_Fields verifies Breadcrumb has all required fields
func TestBreadcrumb_Fields(t *testing.T) {
	tests := []struct {
		name       string
		breadcrumb Breadcrumb
	}{
		{
			name: "all fields present",
			breadcrumb: Breadcrumb{
				Type:      "track",
				Category:  "registry",
				Message:   "tracked ref<counter> for effect-1",
				Level:     "info",
				Timestamp: time.Now(),
				Data:      map[string]interface{}{"effect": "effect-1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "track", tt.breadcrumb.Type)
			assert.Equal(t, "registry", tt.breadcrumb.Category)
			assert.Equal(t, "tracked ref<counter> for effect-1", tt.breadcrumb.Message)
			assert.Equal(t, "info", tt.breadcrumb.Level)
			assert.NotZero(t, tt.breadcrumb.Timestamp)
			assert.NotNil(t, tt.breadcrumb.Data)
		})
	}
}

// TestErrorReporter_ReportPanic tests ReportPanic functionality
func TestErrorReporter_ReportPanic(t *testing.T) {
	tests := []struct {
		name      string
		panicErr  *EffectPanicError
		ctx       *ErrorContext
		wantCalls int
	}{
		{
			name: "report single panic",
			panicErr: &EffectPanicError{
				EffectID:   "effect-1",
				Op:         "run",
				PanicValue: "unexpected error",
			},
			ctx: &ErrorContext{
				EffectID:  "effect-1",
				Op:        "run",
				Timestamp: time.Now(),
			},
			wantCalls: 1,
		},
		{
			name: "report panic with stack trace",
			panicErr: &EffectPanicError{
				EffectID:   "effect-2",
				Op:         "run",
				PanicValue: "validation failed",
			},
			ctx: &ErrorContext{
				EffectID:   "effect-2",
				Op:         "run",
				Timestamp:  time.Now(),
				StackTrace: []byte("goroutine 1 [running]:\n..."),
			},
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter := &mockReporter{}
			SetErrorReporter(reporter)
			defer SetErrorReporter(nil)

			reporter.ReportPanic(tt.panicErr, tt.ctx)

			assert.Equal(t, tt.wantCalls, reporter.getPanicCallCount())
		})
	}
}

// TestErrorReporter_ReportError tests ReportError functionality
func TestErrorReporter_ReportError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		ctx       *ErrorContext
		wantCalls int
	}{
		{
			name: "report single error",
			err:  assert.AnError,
			ctx: &ErrorContext{
				Target:    "ref<email>",
				Op:        "SET",
				Timestamp: time.Now(),
			},
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter := &mockReporter{}
			SetErrorReporter(reporter)
			defer SetErrorReporter(nil)

			reporter.ReportError(tt.err, tt.ctx)

			assert.Equal(t, tt.wantCalls, reporter.getErrorCallCount())
		})
	}
}

// TestErrorReporter_Flush tests Flush functionality
func TestErrorReporter_Flush(t *testing.T) {
	tests := []struct {
		name      string
		timeout   time.Duration
		wantCalls int
		wantError bool
	}{
		{
			name:      "flush with 5 second timeout",
			timeout:   5 * time.Second,
			wantCalls: 1,
			wantError: false,
		},
		{
			name:      "flush with 1 second timeout",
			timeout:   1 * time.Second,
			wantCalls: 1,
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter := &mockReporter{}
			SetErrorReporter(reporter)
			defer SetErrorReporter(nil)

			err := reporter.Flush(tt.timeout)

			assert.Equal(t, tt.wantCalls, reporter.getFlushCallCount())
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestEffectPanicError_Error tests the Error method of EffectPanicError
func TestEffectPanicError_Error(t *testing.T) {
	tests := []struct {
		name      string
		err       *EffectPanicError
		wantParts []string
	}{
		{
			name: "error message contains all fields",
			err: &EffectPanicError{
				EffectID:   "effect-counter",
				Op:         "run",
				PanicValue: "unexpected nil pointer",
			},
			wantParts: []string{
				"panic in effect",
				"effect-counter",
				"run",
				"unexpected nil pointer",
			},
		},
		{
			name: "error message with different values",
			err: &EffectPanicError{
				EffectID:   "effect-total",
				Op:         "run",
				PanicValue: 123,
			},
			wantParts: []string{
				"panic in effect",
				"effect-total",
				"run",
				"123",
			},
		},
		{
			name: "error message with empty fields",
			err: &EffectPanicError{
				EffectID:   "",
				Op:         "",
				PanicValue: nil,
			},
			wantParts: []string{
				"panic in effect",
				"''",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errMsg := tt.err.Error()

			for _, part := range tt.wantParts {
				assert.Contains(t, errMsg, part, "error message should contain %q", part)
			}
		})
	}
}
