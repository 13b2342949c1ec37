package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// CompressionConfig holds configuration for response compression
type CompressionConfig struct {
	MinSize          int      // smallest body worth compressing, in bytes
	CompressionLevel int      // gzip level 1-9
	ContentTypes     []string // content types eligible for compression
}

// DefaultCompressionConfig returns the default compression configuration
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		MinSize:          1024,
		CompressionLevel: gzip.DefaultCompression,
		ContentTypes: []string{
			"application/json",
			"text/plain",
			"text/html",
		},
	}
}

// Compression gzips eligible responses. Handlers write into a buffer and the
// decision is made once the body is complete.
type Compression struct {
	config CompressionConfig
	stats  *CompressionStats
	pool   sync.Pool
}

// NewCompression creates the compression middleware
func NewCompression(config CompressionConfig) *Compression {
	level := config.CompressionLevel
	if level < gzip.HuffmanOnly || level > gzip.BestCompression {
		level = gzip.DefaultCompression
	}
	config.CompressionLevel = level

	return &Compression{
		config: config,
		stats:  &CompressionStats{},
		pool: sync.Pool{
			New: func() interface{} {
				gz, _ := gzip.NewWriterLevel(io.Discard, level)
				return gz
			},
		},
	}
}

// Handler returns the Gin middleware
func (cm *Compression) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !clientAcceptsGzip(c.Request) || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		original := c.Writer
		bw := &bufferedWriter{ResponseWriter: original}
		c.Writer = bw
		defer func() { c.Writer = original }()

		c.Next()

		body := bw.body.Bytes()
		header := original.Header()
		if len(body) == 0 {
			original.WriteHeaderNow()
			return
		}

		if len(body) < cm.config.MinSize ||
			header.Get("Content-Encoding") != "" ||
			!cm.shouldCompress(header.Get("Content-Type")) {
			cm.stats.record(len(body), len(body), false)
			_, _ = original.Write(body)
			return
		}

		var compressed bytes.Buffer
		gz := cm.pool.Get().(*gzip.Writer)
		gz.Reset(&compressed)
		_, werr := gz.Write(body)
		cerr := gz.Close()
		cm.pool.Put(gz)
		if werr != nil || cerr != nil {
			slog.Warn("Response compression failed, sending identity body", "write_error", werr, "close_error", cerr)
			_, _ = original.Write(body)
			return
		}

		header.Set("Content-Encoding", "gzip")
		header.Add("Vary", "Accept-Encoding")
		header.Del("Content-Length")
		cm.stats.record(len(body), compressed.Len(), true)
		_, _ = original.Write(compressed.Bytes())
	}
}

func clientAcceptsGzip(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")
}

func (cm *Compression) shouldCompress(contentType string) bool {
	for _, ct := range cm.config.ContentTypes {
		if strings.Contains(contentType, ct) {
			return true
		}
	}
	return false
}

// GetStats returns compression statistics
func (cm *Compression) GetStats() map[string]interface{} {
	return cm.stats.snapshot()
}

// bufferedWriter holds the body back until the handler chain has finished
type bufferedWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bufferedWriter) Write(data []byte) (int, error) {
	return w.body.Write(data)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	return w.body.WriteString(s)
}

// CompressionStats tracks compression statistics
type CompressionStats struct {
	totalResponses      int64
	compressedResponses int64
	originalBytes       int64
	compressedBytes     int64
}

func (cs *CompressionStats) record(originalSize, finalSize int, compressed bool) {
	atomic.AddInt64(&cs.totalResponses, 1)
	if compressed {
		atomic.AddInt64(&cs.compressedResponses, 1)
		atomic.AddInt64(&cs.originalBytes, int64(originalSize))
		atomic.AddInt64(&cs.compressedBytes, int64(finalSize))
	}
}

func (cs *CompressionStats) snapshot() map[string]interface{} {
	total := atomic.LoadInt64(&cs.totalResponses)
	compressed := atomic.LoadInt64(&cs.compressedResponses)
	original := atomic.LoadInt64(&cs.originalBytes)
	final := atomic.LoadInt64(&cs.compressedBytes)

	ratio := 0.0
	if original > 0 {
		ratio = float64(final) / float64(original)
	}

	return map[string]interface{}{
		"total_responses":      total,
		"compressed_responses": compressed,
		"bytes_saved":          original - final,
		"compression_ratio":    ratio,
	}
}
