package resilience

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	apperrors "github.com/ZanzyTHEbar/mbti-decision-sim/internal/errors"
)

// DegradationLevel represents the current degradation state
type DegradationLevel int

const (
	LevelNormal DegradationLevel = iota
	LevelDegraded
	LevelCritical
	LevelEmergency
)

func (l DegradationLevel) String() string {
	switch l {
	case LevelNormal:
		return "normal"
	case LevelDegraded:
		return "degraded"
	case LevelCritical:
		return "critical"
	case LevelEmergency:
		return "emergency"
	}
	return "unknown"
}

// MarshalText renders the level by name in JSON
func (l DegradationLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// HealthConfig holds the error-rate thresholds for each level
type HealthConfig struct {
	DegradedThreshold  float64       `json:"degraded_threshold"`
	CriticalThreshold  float64       `json:"critical_threshold"`
	EmergencyThreshold float64       `json:"emergency_threshold"`
	CheckTimeout       time.Duration `json:"check_timeout"`
}

// DefaultHealthConfig returns sensible defaults
func DefaultHealthConfig() HealthConfig {
	return HealthConfig{
		DegradedThreshold:  0.1,
		CriticalThreshold:  0.25,
		EmergencyThreshold: 0.5,
		CheckTimeout:       2 * time.Second,
	}
}

// ServiceHealth is the health snapshot of one backing service
type ServiceHealth struct {
	ServiceName   string           `json:"service_name"`
	Level         DegradationLevel `json:"level"`
	ErrorRate     float64          `json:"error_rate"`
	TotalChecks   int64            `json:"total_checks"`
	ErrorCount    int64            `json:"error_count"`
	LastError     string           `json:"last_error,omitempty"`
	LastErrorTime time.Time        `json:"last_error_time,omitempty"`
	StatusMessage string           `json:"status_message"`
}

// HealthCheckFunc reports whether a service is reachable
type HealthCheckFunc func(ctx context.Context) error

// HealthRegistry tracks the services the API depends on (redis, run history)
type HealthRegistry struct {
	config   HealthConfig
	mutex    sync.RWMutex
	services map[string]*ServiceHealth
	checks   map[string]HealthCheckFunc
}

// NewHealthRegistry creates an empty registry
func NewHealthRegistry(config HealthConfig) *HealthRegistry {
	return &HealthRegistry{
		config:   config,
		services: make(map[string]*ServiceHealth),
		checks:   make(map[string]HealthCheckFunc),
	}
}

// Register adds a service with its health check
func (h *HealthRegistry) Register(name string, check HealthCheckFunc) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.services[name] = &ServiceHealth{
		ServiceName:   name,
		Level:         LevelNormal,
		StatusMessage: "Service is healthy",
	}
	h.checks[name] = check

	slog.Info("Registered service for health checks", "service", name)
}

// Record stores the outcome of one check or request against name
func (h *HealthRegistry) Record(name string, err error) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	service, ok := h.services[name]
	if !ok {
		return
	}

	service.TotalChecks++
	if err != nil {
		service.ErrorCount++
		service.LastError = err.Error()
		service.LastErrorTime = time.Now()
	}
	service.ErrorRate = float64(service.ErrorCount) / float64(service.TotalChecks)

	h.updateLevel(service, err)
}

func (h *HealthRegistry) updateLevel(service *ServiceHealth, lastErr error) {
	old := service.Level

	switch {
	case service.ErrorRate >= h.config.EmergencyThreshold:
		service.Level = LevelEmergency
		service.StatusMessage = "Service is in emergency state - high error rate"
	case service.ErrorRate >= h.config.CriticalThreshold:
		service.Level = LevelCritical
		service.StatusMessage = "Service is in critical state - elevated error rate"
	case service.ErrorRate >= h.config.DegradedThreshold:
		service.Level = LevelDegraded
		service.StatusMessage = "Service is degraded - moderate error rate"
	default:
		service.Level = LevelNormal
		service.StatusMessage = "Service is healthy"
	}

	// the latest check failing always counts as at least degraded
	if lastErr != nil && service.Level < LevelDegraded {
		service.Level = LevelDegraded
		service.StatusMessage = "Last health check failed"
	}

	if old != service.Level {
		slog.Warn("Service degradation level changed",
			"service", service.ServiceName,
			"old_level", old.String(),
			"new_level", service.Level.String(),
			"error_rate", service.ErrorRate)
	}
}

// CheckAll runs every registered check concurrently and returns the snapshots
func (h *HealthRegistry) CheckAll(ctx context.Context) map[string]ServiceHealth {
	h.mutex.RLock()
	checks := make(map[string]HealthCheckFunc, len(h.checks))
	for name, check := range h.checks {
		checks[name] = check
	}
	h.mutex.RUnlock()

	var wg sync.WaitGroup
	for name, check := range checks {
		if check == nil {
			continue
		}
		wg.Add(1)
		go func(name string, check HealthCheckFunc) {
			defer wg.Done()
			checkCtx, cancel := context.WithTimeout(ctx, h.config.CheckTimeout)
			defer cancel()

			err := check(checkCtx)
			if err != nil {
				err = apperrors.WrapError(err, "health check failed for service %s", name)
			}
			h.Record(name, err)
		}(name, check)
	}
	wg.Wait()

	return h.Snapshot()
}

// Snapshot returns a copy of every service's health
func (h *HealthRegistry) Snapshot() map[string]ServiceHealth {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	out := make(map[string]ServiceHealth, len(h.services))
	for name, s := range h.services {
		out[name] = *s
	}
	return out
}

// Get returns the health of a single service
func (h *HealthRegistry) Get(name string) (ServiceHealth, bool) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	s, ok := h.services[name]
	if !ok {
		return ServiceHealth{}, false
	}
	return *s, true
}

// Services lists the registered service names in sorted order
func (h *HealthRegistry) Services() []string {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	names := make([]string, 0, len(h.services))
	for name := range h.services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Overall folds the snapshots into "ok" or "degraded"
func Overall(services map[string]ServiceHealth) string {
	for _, s := range services {
		if s.Level != LevelNormal {
			return "degraded"
		}
	}
	return "ok"
}
