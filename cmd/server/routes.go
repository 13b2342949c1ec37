package main

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/ZanzyTHEbar/mbti-decision-sim/internal/errors"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/monitoring"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/security"
)

// setupRouter wires middleware and routes. Operational endpoints sit outside
// the rate limited /api group.
func setupRouter(s *server) *gin.Engine {
	r := gin.New()

	r.Use(security.RequestIDMiddleware())
	r.Use(apperrors.RecoveryHandler())
	r.Use(monitoring.MonitoringMiddleware(s.metrics, s.prom, s.logger))
	r.Use(monitoring.SecurityMonitoringMiddleware(s.logger))
	r.Use(security.SecurityHeadersMiddleware(s.cfg.EnableHSTS))
	r.Use(security.CORSMiddleware(s.cfg.AllowedOrigins))
	r.Use(s.compression.Handler())
	r.Use(apperrors.ErrorHandler())

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", s.handleMetrics)
	r.GET("/metrics/prometheus", gin.WrapH(s.prom.Handler()))
	r.GET("/cache/stats", s.handleCacheStats)
	r.GET("/ratelimit/stats", s.limiter.HandleStats())

	api := r.Group("/api")
	api.Use(s.limiter.IPRateLimitMiddleware())
	api.Use(security.BodyLimit(security.DefaultConfig().MaxBodyBytes))
	api.Use(security.ValidateContentType())
	{
		api.GET("/factors", s.handleFactors)
		api.GET("/defaults", s.handleDefaults)
		api.GET("/presets", s.handlePresets)
		api.GET("/presets/:name", s.handlePreset)

		api.GET("/archetypes", s.handleArchetypes)
		api.GET("/archetypes/:type", s.handleArchetype)
		api.GET("/descriptions", s.handleDescriptions)

		api.GET("/decision", s.handleDecision)
		api.GET("/decision/legacy", s.handleLegacyDecision)
		api.GET("/public/probabilities", s.handleProbabilities)

		api.POST("/simulate", s.cache.Middleware(s.metrics, s.prom), s.handleSimulate)
		api.POST("/public-opinion", s.handlePublicOpinion)
		api.POST("/majority", s.handleMajority)
		api.POST("/team/simulate", s.handleTeamSimulate)

		api.POST("/runs", s.handleCreateRun)
		api.GET("/runs", s.handleListRuns)
		api.GET("/runs/:id", s.handleGetRun)
	}

	return r
}
