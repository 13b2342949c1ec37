package main

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/database"
	apperrors "github.com/ZanzyTHEbar/mbti-decision-sim/internal/errors"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/factors"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/mbti"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/resilience"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/simulation"
)

// scenarioRequest selects inputs either explicitly or by preset name
type scenarioRequest struct {
	Inputs map[string]float64 `json:"inputs"`
	Preset string             `json:"preset"`
}

type majorityRequest struct {
	Results []simulation.Result `json:"results"`
}

// respondError hands err to the error middleware, translating domain errors
// to their HTTP category first.
func respondError(c *gin.Context, err error) {
	_ = c.Error(classifyError(err))
	c.Abort()
}

func classifyError(err error) *apperrors.AppError {
	var (
		appErr   *apperrors.AppError
		shape    *factors.ShapeMismatchError
		rangeErr *factors.RangeError
		unknown  *mbti.UnknownArchetypeError
		tooLarge *http.MaxBytesError
		syntax   *json.SyntaxError
		typeErr  *json.UnmarshalTypeError
	)

	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.As(err, &shape):
		fields := make(map[string]string)
		if len(shape.Missing) > 0 {
			fields["missing"] = strings.Join(shape.Missing, ", ")
		}
		if len(shape.Unknown) > 0 {
			fields["unknown"] = strings.Join(shape.Unknown, ", ")
		}
		return apperrors.NewValidationErrorWithMap(fields)
	case errors.As(err, &rangeErr):
		return apperrors.NewValidationError("Factor inputs must lie in [0, 1]", err)
	case errors.As(err, &unknown):
		return apperrors.NewNotFoundError("archetype", unknown.Type)
	case errors.Is(err, factors.ErrUnknownPreset):
		return apperrors.NewNotFoundError("preset", err.Error())
	case errors.Is(err, database.ErrRunNotFound):
		return apperrors.NewNotFoundError("run", err.Error())
	case errors.Is(err, resilience.ErrCircuitOpen):
		return apperrors.NewStorageError("Run history is temporarily unavailable", err)
	case errors.As(err, &tooLarge):
		appErr := apperrors.NewValidationError("Request body too large", err)
		appErr.HTTPStatus = http.StatusRequestEntityTooLarge
		return appErr
	case errors.As(err, &syntax), errors.As(err, &typeErr),
		errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return apperrors.NewValidationError("Invalid request body", err)
	}
	return apperrors.ToAppError(err)
}

// resolveInputs turns a scenario request into validated six-factor inputs
func resolveInputs(req scenarioRequest) (factors.Inputs, string, error) {
	switch {
	case req.Preset != "" && req.Inputs != nil:
		return factors.Inputs{}, "", apperrors.NewValidationError("Provide either inputs or preset, not both", nil)
	case req.Preset != "":
		scenario, err := factors.Preset(req.Preset)
		if err != nil {
			return factors.Inputs{}, "", err
		}
		return scenario.Inputs, scenario.Name, nil
	case req.Inputs == nil:
		return factors.Inputs{}, "", apperrors.NewValidationError("Request must contain inputs or preset", nil)
	}

	inputs, err := factors.FromMap(req.Inputs)
	if err != nil {
		return factors.Inputs{}, "", err
	}
	if err := inputs.ValidateInputs(); err != nil {
		return factors.Inputs{}, "", err
	}
	return inputs, "", nil
}

func bindScenario(c *gin.Context) (factors.Inputs, string, error) {
	var req scenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return factors.Inputs{}, "", err
	}
	return resolveInputs(req)
}

func scoreQuery(c *gin.Context) (float64, error) {
	raw := c.Query("score")
	if raw == "" {
		return 0, apperrors.NewValidationError("Query parameter score is required", nil)
	}
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, apperrors.NewValidationError("Query parameter score must be a finite number", err)
	}
	return score, nil
}

func (s *server) handleHealth(c *gin.Context) {
	services := s.health.CheckAll(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"status":         resilience.Overall(services),
		"timestamp":      time.Now().Format(time.RFC3339),
		"uptime_seconds": int64(time.Since(s.startedAt).Seconds()),
		"services":       services,
		"archetypes":     mbti.Size(),
	})
}

func (s *server) handleMetrics(c *gin.Context) {
	stats := s.metrics.GetStats()
	stats["compression"] = s.compression.GetStats()
	if s.breaker != nil {
		stats["history_breaker"] = s.breaker.GetStats()
	}
	if s.db != nil {
		stats["database_pool"] = s.db.GetPoolStats()
	}
	stats["redis_pool"] = s.redis.GetPoolStats()
	c.JSON(http.StatusOK, stats)
}

func (s *server) handleCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.cache.Stats())
}

func (s *server) handleFactors(c *gin.Context) {
	c.JSON(http.StatusOK, factors.Info())
}

func (s *server) handleDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, factors.Default())
}

func (s *server) handlePresets(c *gin.Context) {
	c.JSON(http.StatusOK, factors.Presets())
}

func (s *server) handlePreset(c *gin.Context) {
	scenario, err := factors.Preset(c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scenario)
}

func (s *server) handleArchetypes(c *gin.Context) {
	c.JSON(http.StatusOK, mbti.Profiles())
}

func (s *server) handleArchetype(c *gin.Context) {
	archetype, err := mbti.Create(strings.ToUpper(c.Param("type")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, archetype)
}

func (s *server) handleDescriptions(c *gin.Context) {
	c.JSON(http.StatusOK, mbti.Descriptions())
}

func (s *server) handleDecision(c *gin.Context) {
	score, err := scoreQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, simulation.GetDecision(score))
}

func (s *server) handleLegacyDecision(c *gin.Context) {
	score, err := scoreQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, simulation.GetLegacyDecision(score))
}

func (s *server) handleProbabilities(c *gin.Context) {
	score, err := scoreQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	dist := simulation.GetPublicProbabilities(score)
	c.JSON(http.StatusOK, gin.H{
		"score":         score,
		"probabilities": dist,
		"most_likely":   dist.MostLikely().String(),
	})
}

func (s *server) handleSimulate(c *gin.Context) {
	start := time.Now()
	inputs, preset, err := bindScenario(c)
	if err != nil {
		respondError(c, err)
		return
	}

	report := s.simulate(inputs, start, database.SourceAPI, preset)
	c.JSON(http.StatusOK, report)
}

// simulate runs the engine and records the outcome in metrics and logs
func (s *server) simulate(inputs factors.Inputs, start time.Time, source, preset string) simulation.Report {
	report := simulation.Run(inputs)
	s.recordSimulation(report, start, source, false)
	if preset != "" {
		s.logger.Debug("Simulated preset", "preset", preset)
	}

	return report
}

// recordCachedSimulation counts a simulate response served from the cache
func (s *server) recordCachedSimulation(_ *gin.Context, body []byte) {
	start := time.Now()
	var report simulation.Report
	if err := json.Unmarshal(body, &report); err != nil {
		s.logger.Warn("Cached simulation is not a report", "error", err)
		return
	}
	s.recordSimulation(report, start, database.SourceAPI, true)
}

func (s *server) recordSimulation(report simulation.Report, start time.Time, source string, cached bool) {
	decisions := make([]string, len(report.Results))
	for i, r := range report.Results {
		decisions[i] = r.Decision
	}
	s.metrics.RecordSimulation(report.Majority.Decision)
	s.prom.ObserveDecisions(decisions)
	s.prom.ObservePublicScore(report.PublicOpinion.Score)
	s.logger.SimulationLogger(source, report.Majority.Decision, report.PublicOpinion.MostLikely,
		report.PublicOpinion.Score, time.Since(start), cached)
}

func (s *server) handlePublicOpinion(c *gin.Context) {
	inputs, _, err := bindScenario(c)
	if err != nil {
		respondError(c, err)
		return
	}
	opinion := simulation.CalculatePublicOpinion(inputs)
	s.prom.ObservePublicScore(opinion.Score)
	c.JSON(http.StatusOK, opinion)
}

func (s *server) handleMajority(c *gin.Context) {
	var req majorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	if req.Results == nil {
		respondError(c, apperrors.NewValidationError("Request must contain results", nil))
		return
	}
	c.JSON(http.StatusOK, simulation.CalculateMajorityDecision(req.Results))
}

func (s *server) handleTeamSimulate(c *gin.Context) {
	var req scenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}

	var inputs factors.LegacyFactors
	switch {
	case req.Preset != "" && req.Inputs != nil:
		respondError(c, apperrors.NewValidationError("Provide either inputs or preset, not both", nil))
		return
	case req.Preset != "":
		scenario, err := factors.Preset(req.Preset)
		if err != nil {
			respondError(c, err)
			return
		}
		inputs = scenario.Inputs.Legacy()
	case req.Inputs == nil:
		respondError(c, apperrors.NewValidationError("Request must contain inputs or preset", nil))
		return
	default:
		legacy, err := factors.LegacyFromMap(req.Inputs)
		if err == nil {
			err = legacy.ValidateInputs()
		}
		if err != nil {
			respondError(c, err)
			return
		}
		inputs = legacy
	}

	report := simulation.RunTeam(inputs)
	s.metrics.IncrementTeamSimulation()
	c.JSON(http.StatusOK, report)
}

func (s *server) requireHistory(c *gin.Context) bool {
	if s.history == nil {
		respondError(c, apperrors.NewStorageError("Run history is disabled", nil))
		return false
	}
	return true
}

func (s *server) handleCreateRun(c *gin.Context) {
	if !s.requireHistory(c) {
		return
	}

	start := time.Now()
	inputs, preset, err := bindScenario(c)
	if err != nil {
		respondError(c, err)
		return
	}

	report := s.simulate(inputs, start, database.SourceAPI, preset)
	run, err := s.history.Record(c.Request.Context(), database.SourceAPI, preset, report)
	if err != nil {
		if !errors.Is(err, resilience.ErrCircuitOpen) {
			err = apperrors.NewStorageError("Failed to save run", err)
		}
		respondError(c, err)
		return
	}
	s.metrics.IncrementRunsSaved()

	c.JSON(http.StatusCreated, run)
}

func (s *server) handleListRuns(c *gin.Context) {
	if !s.requireHistory(c) {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, apperrors.NewValidationError("Query parameter limit must be an integer", err))
			return
		}
		limit = n
	}

	runs, err := s.history.List(c.Request.Context(), limit)
	if err != nil {
		respondError(c, apperrors.NewStorageError("Failed to list runs", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
}

func (s *server) handleGetRun(c *gin.Context) {
	if !s.requireHistory(c) {
		return
	}

	run, err := s.history.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if !errors.Is(err, database.ErrRunNotFound) {
			err = apperrors.NewStorageError("Failed to load run", err)
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}
