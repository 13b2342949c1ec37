package cache

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/monitoring"
)

// Cache holds rendered simulation responses keyed by request body hash. It is
// bounded in size and entries expire after the configured TTL.
type Cache struct {
	lru       *expirable.LRU[string, []byte]
	ttl       time.Duration
	size      int
	evictions atomic.Int64
	logger    *monitoring.Logger
	onHit     func(ctx *gin.Context, body []byte)
}

// NewCache creates a cache holding at most size entries for ttl each
func NewCache(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = 1
	}
	c := &Cache{ttl: ttl, size: size, logger: &monitoring.Logger{Logger: slog.Default()}}
	c.lru = expirable.NewLRU[string, []byte](size, func(string, []byte) {
		c.evictions.Add(1)
	}, ttl)
	return c
}

// WithLogger sets the logger used for hit and miss events
func (c *Cache) WithLogger(l *monitoring.Logger) *Cache {
	if l != nil {
		c.logger = l
	}
	return c
}

// OnHit registers fn to run with the cached body whenever a request is served
// from the cache
func (c *Cache) OnHit(fn func(ctx *gin.Context, body []byte)) *Cache {
	c.onHit = fn
	return c
}

// Key derives the cache key for a request body
func Key(body []byte) string {
	return fmt.Sprintf("%x", md5.Sum(body))
}

// Get retrieves an item from the cache
func (c *Cache) Get(key string) ([]byte, bool) {
	return c.lru.Get(key)
}

// Set stores an item in the cache
func (c *Cache) Set(key string, data []byte) {
	c.lru.Add(key, data)
}

// Delete removes an item from the cache
func (c *Cache) Delete(key string) {
	c.lru.Remove(key)
}

// Clear removes all items from the cache
func (c *Cache) Clear() {
	c.lru.Purge()
}

// Size returns the number of live items in the cache
func (c *Cache) Size() int {
	return c.lru.Len()
}

// Stats returns cache statistics
func (c *Cache) Stats() map[string]interface{} {
	return map[string]interface{}{
		"active_items": c.lru.Len(),
		"capacity":     c.size,
		"evictions":    c.evictions.Load(),
		"ttl_seconds":  c.ttl.Seconds(),
	}
}

// Middleware serves repeated request bodies from the cache. Only 200 responses
// are stored. The X-Cache header reports HIT or MISS.
func (c *Cache) Middleware(metrics *monitoring.Metrics, prom *monitoring.Collectors) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		body, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			ctx.Next()
			return
		}
		ctx.Request.Body = io.NopCloser(bytes.NewReader(body))

		key := Key(append([]byte(ctx.Request.URL.Path+"\n"), body...))

		if cached, found := c.Get(key); found {
			c.logger.CacheLogger("get", key, true, c.Size())
			metrics.IncrementCacheHit()
			prom.ObserveCacheLookup(true)
			if c.onHit != nil {
				c.onHit(ctx, cached)
			}
			ctx.Header("X-Cache", "HIT")
			ctx.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			ctx.Abort()
			return
		}

		c.logger.CacheLogger("get", key, false, c.Size())
		metrics.IncrementCacheMiss()
		prom.ObserveCacheLookup(false)
		ctx.Header("X-Cache", "MISS")

		wrapper := &responseWriter{ResponseWriter: ctx.Writer, body: &bytes.Buffer{}}
		ctx.Writer = wrapper
		ctx.Next()

		if wrapper.Status() == http.StatusOK && len(ctx.Errors) == 0 {
			c.Set(key, wrapper.body.Bytes())
		}
	}
}

// responseWriter captures the response body while passing it through
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
