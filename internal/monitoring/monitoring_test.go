package monitoring

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestLogger_TimestampKey(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelInfo)

	logger.SimulationLogger("api", "Request Clarification", "Proceed Strategically", 0.61, 3*time.Millisecond, false)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Contains(t, entry, "timestamp")
	assert.NotContains(t, entry, "time")
	assert.Equal(t, "Simulation Completed", entry["msg"])
	assert.Equal(t, "Request Clarification", entry["majority_decision"])
}

func TestLogger_DebugFiltered(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelInfo)

	logger.CacheLogger("get", "0123456789abcdef", true, 3)
	assert.Empty(t, buf.String())
}

func TestMetrics_Stats(t *testing.T) {
	m := NewMetrics()

	m.IncrementRequest()
	m.IncrementRequest()
	m.IncrementError()
	m.IncrementCacheHit()
	m.IncrementCacheMiss()
	m.RecordSimulation("Implement with Oversight")
	m.RecordSimulation("Implement with Oversight")
	m.RecordSimulation("Delay or Disengage")
	m.IncrementTeamSimulation()
	m.IncrementRunsSaved()
	m.RecordRequestByStatus(200)
	m.RecordRequestByStatus(400)

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats["total_requests"])
	assert.Equal(t, 50.0, stats["error_rate_percent"])
	assert.Equal(t, 50.0, stats["cache_hit_rate_percent"])
	assert.Equal(t, int64(3), stats["simulations"])
	assert.Equal(t, int64(1), stats["team_simulations"])
	assert.Equal(t, int64(1), stats["runs_saved"])
	assert.Equal(t, map[string]int64{
		"Implement with Oversight": 2,
		"Delay or Disengage":       1,
	}, stats["majority_decisions"])
	assert.Equal(t, map[int]int64{200: 1, 400: 1}, stats["status_code_distribution"])
}

func TestMetrics_Percentiles(t *testing.T) {
	m := NewMetrics()
	assert.Equal(t, time.Duration(0), m.GetPercentileResponseTime(50))

	for i := 1; i <= 100; i++ {
		m.RecordResponseTime(time.Duration(i) * time.Millisecond)
	}
	assert.Equal(t, 50*time.Millisecond, m.GetPercentileResponseTime(50))
	assert.Equal(t, 100*time.Millisecond, m.GetPercentileResponseTime(100))

	for i := 0; i < 2*maxResponseSamples; i++ {
		m.RecordResponseTime(time.Millisecond)
	}
	m.ResponseTimesMutex.RLock()
	assert.Len(t, m.ResponseTimes, maxResponseSamples)
	m.ResponseTimesMutex.RUnlock()
}

func TestCollectors(t *testing.T) {
	c := NewCollectors()

	c.ObserveRequest("/api/simulate", 200, 10*time.Millisecond)
	c.ObserveRequest("", 404, time.Millisecond)
	c.ObserveDecisions([]string{"Full Speed Ahead", "Full Speed Ahead", "Delay or Disengage"})
	c.ObserveCacheLookup(true)
	c.ObserveCacheLookup(false)
	c.ObserveCacheLookup(false)
	c.ObserveRateLimited()
	c.ObservePublicScore(0.9)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("/api/simulate", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("unmatched", "404")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.decisions.WithLabelValues("Full Speed Ahead")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.cacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rateLimited))

	// a nil set of collectors is a no-op
	var none *Collectors
	assert.NotPanics(t, func() {
		none.ObserveRequest("/x", 200, time.Millisecond)
		none.ObserveDecisions([]string{"x"})
		none.ObserveCacheLookup(true)
	})
}

func TestCollectors_Handler(t *testing.T) {
	c := NewCollectors()
	c.ObserveDecisions([]string{"Request Clarification"})

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics/prometheus", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mbti_sim_engine_archetype_decisions_total")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestMonitoringMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	metrics := NewMetrics()
	prom := NewCollectors()
	logger := NewLoggerWithWriter(&buf, slog.LevelInfo)

	r := gin.New()
	r.Use(MonitoringMiddleware(metrics, prom, logger), SecurityMonitoringMiddleware(logger))
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	for _, path := range []string{"/ok", "/ok", "/missing"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, int64(3), metrics.RequestCount)
	assert.Equal(t, int64(1), metrics.ErrorCount)
	assert.Equal(t, 2.0, testutil.ToFloat64(prom.requests.WithLabelValues("/ok", "200")))
	assert.Equal(t, 3, strings.Count(buf.String(), `"msg":"HTTP Request"`))
}

func TestSecurityMonitoringMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	r := gin.New()
	r.Use(SecurityMonitoringMiddleware(NewLoggerWithWriter(&buf, slog.LevelInfo)))
	r.GET("/api/archetypes", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/archetypes", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0")
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Empty(t, buf.String())

	req = httptest.NewRequest(http.MethodGet, "/api/archetypes", nil)
	req.Header.Set("User-Agent", "sqlmap/1.7")
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Contains(t, buf.String(), "Security Event")
}
