package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/cache"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/config"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/database"
	apperrors "github.com/ZanzyTHEbar/mbti-decision-sim/internal/errors"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/middleware"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/monitoring"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/ratelimit"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/resilience"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := monitoring.NewLogger(monitoring.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger.Logger)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := newServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer srv.close()

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           setupRouter(srv),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "addr", httpServer.Addr,
			"history_enabled", srv.history != nil,
			"redis_enabled", srv.redis.IsEnabled())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return apperrors.WrapError(err, "failed to start server")
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return apperrors.WrapError(err, "server forced to shutdown")
	}

	slog.Info("Server exited")
	return nil
}

// server holds the services the handlers share
type server struct {
	cfg         *config.Config
	logger      *monitoring.Logger
	metrics     *monitoring.Metrics
	prom        *monitoring.Collectors
	cache       *cache.Cache
	redis       *ratelimit.RedisClient
	limiter     *ratelimit.RateLimiter
	history     *database.HistoryService // nil when history is disabled
	db          *database.DB
	breaker     *resilience.CircuitBreaker
	health      *resilience.HealthRegistry
	compression *middleware.Compression
	startedAt   time.Time
}

// newServer builds every service from cfg. Redis and the history store are
// optional: an unreachable Redis falls back to in-memory limiting.
func newServer(ctx context.Context, cfg *config.Config, logger *monitoring.Logger) (*server, error) {
	s := &server{
		cfg:         cfg,
		logger:      logger,
		metrics:     monitoring.NewMetrics(),
		prom:        monitoring.NewCollectors(),
		cache:       cache.NewCache(cfg.CacheSize, cfg.CacheTTL).WithLogger(logger),
		health:      resilience.NewHealthRegistry(resilience.DefaultHealthConfig()),
		compression: middleware.NewCompression(middleware.DefaultCompressionConfig()),
		startedAt:   time.Now(),
	}
	s.cache.OnHit(s.recordCachedSimulation)

	redisClient, err := ratelimit.NewRedisClient(ctx, ratelimit.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		slog.Warn("Redis unavailable, using in-memory rate limiting", "addr", cfg.RedisAddr, "error", err)
	}
	s.redis = redisClient
	if redisClient.IsEnabled() {
		s.health.Register("redis", redisClient.HealthCheck)
	}

	limiterCfg := ratelimit.DefaultConfig()
	limiterCfg.IPLimitPerMin = cfg.RateLimitPerMin
	s.limiter = ratelimit.NewRateLimiter(redisClient, limiterCfg, s.metrics, s.prom)

	if cfg.HistoryEnabled {
		db, err := database.NewDB(ctx, cfg.DataDir)
		if err != nil {
			s.close()
			return nil, apperrors.NewStorageError("failed to open run history", err)
		}
		s.db = db
		s.breaker = resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{})
		s.history = database.NewHistoryService(database.NewRepository(db)).WithBreaker(s.breaker)
		s.health.Register("history", s.history.Ping)
	}

	return s, nil
}

func (s *server) close() {
	if s.limiter != nil {
		s.limiter.Close()
	}
	apperrors.SafeClose(s.redis, "redis")
	if s.db != nil {
		apperrors.SafeClose(s.db, "database")
	}
}
