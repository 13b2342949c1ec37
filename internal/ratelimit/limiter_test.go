package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/monitoring"
)

func newTestLimiter(t *testing.T, perMin int) *RateLimiter {
	t.Helper()
	cfg := DefaultConfig()
	cfg.IPLimitPerMin = perMin
	rl := NewRateLimiter(nil, cfg, monitoring.NewMetrics(), nil)
	t.Cleanup(rl.Close)
	return rl
}

func TestRateLimiter_FallbackAllowsUpToLimit(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	rl := NewRateLimiter(nil, Config{IPLimitPerMin: 5}, monitoring.NewMetrics(), nil)
	defer rl.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		result, err := rl.AllowIP(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 5, result.Limit)
		assert.Equal(t, 4-i, result.Remaining)
	}

	result, err := rl.AllowIP(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.Greater(t, result.RetryAfter, time.Duration(0))

	// other clients have their own bucket
	result, err = rl.AllowIP(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestRateLimiter_InvalidRate(t *testing.T) {
	rl := newTestLimiter(t, 5)

	_, err := rl.Allow(context.Background(), "k", Rate{Limit: 0, Period: time.Minute})
	assert.Error(t, err)
	_, err = rl.Allow(context.Background(), "k", Rate{Limit: 1})
	assert.Error(t, err)
}

func TestRateLimiter_InvalidateIP(t *testing.T) {
	rl := newTestLimiter(t, 1)
	ctx := context.Background()

	first, err := rl.AllowIP(ctx, "10.0.0.3")
	require.NoError(t, err)
	assert.True(t, first.Allowed)

	blocked, err := rl.AllowIP(ctx, "10.0.0.3")
	require.NoError(t, err)
	assert.False(t, blocked.Allowed)

	require.NoError(t, rl.InvalidateIP(ctx, "10.0.0.3"))

	again, err := rl.AllowIP(ctx, "10.0.0.3")
	require.NoError(t, err)
	assert.True(t, again.Allowed)

	require.NoError(t, rl.InvalidateAll(ctx))
	assert.Equal(t, 0, rl.GetStats()["fallback_limiters"])
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl := newTestLimiter(t, 10)
	ctx := context.Background()

	_, err := rl.AllowIP(ctx, "10.0.0.4")
	require.NoError(t, err)
	_, err = rl.AllowIP(ctx, "10.0.0.5")
	require.NoError(t, err)

	assert.Equal(t, 0, rl.evictIdle(time.Now()))
	assert.Equal(t, 2, rl.evictIdle(time.Now().Add(rl.config.IdleTTL+time.Second)))
	assert.Equal(t, 0, rl.GetStats()["fallback_limiters"])
}

func TestRateLimiter_CloseIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	rl := NewRateLimiter(nil, Config{IPLimitPerMin: 1, CleanupInterval: time.Millisecond}, nil, nil)
	time.Sleep(5 * time.Millisecond)
	rl.Close()
	rl.Close()
}

func TestRateLimiter_Stats(t *testing.T) {
	rl := newTestLimiter(t, 2)
	_, err := rl.AllowIP(context.Background(), "10.0.0.6")
	require.NoError(t, err)

	stats := rl.GetStats()
	assert.Equal(t, false, stats["redis_enabled"])
	assert.Equal(t, 1, stats["fallback_limiters"])
	assert.Equal(t, 2, stats["ip_limit_per_min"])
	assert.Equal(t, int64(1), stats["fallback_count"])
}

func TestNewRedisClient_Disabled(t *testing.T) {
	client, err := NewRedisClient(context.Background(), RedisOptions{})
	require.NoError(t, err)
	assert.False(t, client.IsEnabled())
	assert.Error(t, client.HealthCheck(context.Background()))
	assert.NoError(t, client.Close())
	assert.Equal(t, map[string]interface{}{"enabled": false}, client.GetPoolStats())

	var none *RedisClient
	assert.False(t, none.IsEnabled())
}

func TestIPRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	metrics := monitoring.NewMetrics()
	cfg := DefaultConfig()
	cfg.IPLimitPerMin = 2
	rl := NewRateLimiter(nil, cfg, metrics, monitoring.NewCollectors())
	defer rl.Close()

	r := gin.New()
	r.Use(rl.IPRateLimitMiddleware())
	r.GET("/api/archetypes", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/ratelimit/stats", rl.HandleStats())

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/archetypes", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		last = w
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "2", last.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, last.Header().Get("Retry-After"))
	assert.Equal(t, int64(1), metrics.RateLimitIPBlocks)
}
