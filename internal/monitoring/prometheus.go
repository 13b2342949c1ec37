package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mbti_sim"

// Collectors exposes Prometheus series for the HTTP layer and the engine
type Collectors struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	decisions       *prometheus.CounterVec
	publicScore     prometheus.Histogram
	cacheLookups    *prometheus.CounterVec
	rateLimited     prometheus.Counter
}

// NewCollectors registers the service collectors on a fresh registry, together
// with the Go runtime and process collectors.
func NewCollectors() *Collectors {
	reg := prometheus.NewRegistry()

	c := &Collectors{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "archetype_decisions_total",
			Help:      "Archetype decisions produced by simulation runs.",
		}, []string{"decision"}),
		publicScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "public_score",
			Help:      "Distribution of public opinion composite scores.",
			Buckets:   []float64{0, 0.2, 0.35, 0.55, 0.65, 0.85, 1},
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Response cache lookups by result.",
		}, []string{"result"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ratelimit",
			Name:      "blocked_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
	}

	reg.MustRegister(
		c.requests, c.requestDuration, c.decisions,
		c.publicScore, c.cacheLookups, c.rateLimited,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// Registry returns the registry the collectors live on
func (c *Collectors) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one HTTP request
func (c *Collectors) ObserveRequest(route string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	c.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// ObserveDecisions counts each archetype decision label
func (c *Collectors) ObserveDecisions(labels []string) {
	if c == nil {
		return
	}
	for _, label := range labels {
		c.decisions.WithLabelValues(label).Inc()
	}
}

// ObservePublicScore records a public opinion composite score
func (c *Collectors) ObservePublicScore(score float64) {
	if c == nil {
		return
	}
	c.publicScore.Observe(score)
}

// ObserveCacheLookup records a response cache hit or miss
func (c *Collectors) ObserveCacheLookup(hit bool) {
	if c == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveRateLimited counts a rejected request
func (c *Collectors) ObserveRateLimited() {
	if c == nil {
		return
	}
	c.rateLimited.Inc()
}
