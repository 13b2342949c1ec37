package cache

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/monitoring"
)

func TestCache_SetGet(t *testing.T) {
	c := NewCache(10, time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", []byte(`{"a":1}`))
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(got))
	assert.Equal(t, 1, c.Size())

	c.Delete("k")
	assert.Equal(t, 0, c.Size())

	c.Set("a", nil)
	c.Set("b", nil)
	c.Clear()
	assert.Equal(t, 0, c.Size())
}

func TestCache_EvictsOldest(t *testing.T) {
	c := NewCache(2, time.Minute)
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	c.Set("c", []byte("3"))

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Size())
	assert.Equal(t, int64(1), c.Stats()["evictions"])
}

func TestCache_Expires(t *testing.T) {
	c := NewCache(10, 20*time.Millisecond)
	c.Set("k", []byte("v"))

	assert.Eventually(t, func() bool {
		_, ok := c.Get("k")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestKey(t *testing.T) {
	assert.Equal(t, Key([]byte("x")), Key([]byte("x")))
	assert.NotEqual(t, Key([]byte("x")), Key([]byte("y")))
	assert.Len(t, Key(nil), 32)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c := NewCache(10, time.Minute)
	metrics := monitoring.NewMetrics()
	var calls atomic.Int32

	r := gin.New()
	r.POST("/api/simulate", c.Middleware(metrics, nil), func(ctx *gin.Context) {
		calls.Add(1)
		if strings.Contains(ctx.GetHeader("X-Fail"), "yes") {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "bad"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"call": calls.Load()})
	})

	do := func(body string, fail bool) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/simulate", strings.NewReader(body))
		if fail {
			req.Header.Set("X-Fail", "yes")
		}
		r.ServeHTTP(w, req)
		return w
	}

	first := do(`{"preset":"startup_pivot"}`, false)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := do(`{"preset":"startup_pivot"}`, false)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, int32(1), calls.Load())

	do(`{"preset":"research_bet"}`, false)
	assert.Equal(t, int32(2), calls.Load())

	// failures are never cached
	do(`{"bad":true}`, true)
	w := do(`{"bad":true}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int32(4), calls.Load())

	assert.Equal(t, int64(1), metrics.CacheHits)
	assert.Equal(t, int64(4), metrics.CacheMisses)
}

func TestMiddleware_OnHit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var hits [][]byte
	c := NewCache(10, time.Minute).OnHit(func(_ *gin.Context, body []byte) {
		hits = append(hits, body)
	})

	r := gin.New()
	r.POST("/api/simulate", c.Middleware(monitoring.NewMetrics(), nil), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"majority": "Full Speed Ahead"})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/simulate", strings.NewReader(`{"preset":"startup_pivot"}`)))
		require.Equal(t, http.StatusOK, w.Code)
	}

	require.Len(t, hits, 2, "the first request is a miss")
	assert.JSONEq(t, `{"majority":"Full Speed Ahead"}`, string(hits[0]))
}
