package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, RecoveryTimeout: time.Minute, SuccessThreshold: 1})

	assert.ErrorIs(t, cb.Call(func() error { return errBoom }), errBoom)
	assert.Equal(t, StateClosed, cb.State())
	assert.ErrorIs(t, cb.Call(func() error { return errBoom }), errBoom)
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Call(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)

	var cbErr *CircuitBreakerError
	require.ErrorAs(t, err, &cbErr)
	assert.Equal(t, StateOpen, cbErr.State)
}

func TestCircuitBreaker_Recovers(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, RecoveryTimeout: 10 * time.Second, SuccessThreshold: 2})
	cb.now = func() time.Time { return now }

	_ = cb.Call(func() error { return errBoom })
	require.Equal(t, StateOpen, cb.State())

	now = now.Add(11 * time.Second)
	require.NoError(t, cb.Call(func() error { return nil }))
	assert.Equal(t, StateHalfOpen, cb.State())
	require.NoError(t, cb.Call(func() error { return nil }))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, RecoveryTimeout: time.Second})
	cb.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		_ = cb.Call(func() error { return errBoom })
	}
	require.Equal(t, StateOpen, cb.State())

	now = now.Add(2 * time.Second)
	_ = cb.Call(func() error { return errBoom })
	assert.Equal(t, StateOpen, cb.State())

	cb.Reset()
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, 0, cb.Failures())
	assert.Equal(t, "closed", cb.GetStats()["state"])
}

func TestCircuitBreaker_Nil(t *testing.T) {
	var cb *CircuitBreaker
	assert.ErrorIs(t, cb.Call(func() error { return errBoom }), errBoom)
}

func TestHealthRegistry(t *testing.T) {
	h := NewHealthRegistry(DefaultHealthConfig())
	h.Register("redis", func(ctx context.Context) error { return nil })
	h.Register("history", func(ctx context.Context) error { return errBoom })

	assert.Equal(t, []string{"history", "redis"}, h.Services())

	snap := h.CheckAll(context.Background())
	require.Len(t, snap, 2)

	assert.Equal(t, LevelNormal, snap["redis"].Level)
	assert.Equal(t, int64(1), snap["redis"].TotalChecks)

	history := snap["history"]
	assert.Equal(t, LevelEmergency, history.Level)
	assert.Contains(t, history.LastError, "health check failed for service history")
	assert.Equal(t, "degraded", Overall(snap))

	_, ok := h.Get("missing")
	assert.False(t, ok)
}

func TestHealthRegistry_Levels(t *testing.T) {
	tests := []struct {
		name     string
		failures int
		total    int
		want     DegradationLevel
	}{
		{"healthy", 0, 20, LevelNormal},
		{"degraded", 2, 20, LevelDegraded},
		{"critical", 6, 20, LevelCritical},
		{"emergency", 10, 20, LevelEmergency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthRegistry(DefaultHealthConfig())
			h.Register("svc", nil)
			// failures first so the final outcome is a success
			for i := 0; i < tt.total; i++ {
				var err error
				if i < tt.failures {
					err = errBoom
				}
				h.Record("svc", err)
			}
			got, ok := h.Get("svc")
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Level)
		})
	}

	assert.Equal(t, "ok", Overall(map[string]ServiceHealth{"a": {Level: LevelNormal}}))
}
