package database

import (
	"context"

	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/resilience"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/simulation"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// HistoryService records and reads simulation runs
type HistoryService struct {
	repo    *Repository
	breaker *resilience.CircuitBreaker
}

// NewHistoryService creates a new history service
func NewHistoryService(repo *Repository) *HistoryService {
	return &HistoryService{repo: repo}
}

// WithBreaker guards writes with cb so a failing store is not hammered
func (s *HistoryService) WithBreaker(cb *resilience.CircuitBreaker) *HistoryService {
	s.breaker = cb
	return s
}

// Record persists report as a new run
func (s *HistoryService) Record(ctx context.Context, source, preset string, report simulation.Report) (*Run, error) {
	run := NewRun(source, preset, report)
	err := s.breaker.Call(func() error {
		return s.repo.SaveRun(ctx, run)
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}

// Get loads a run by ID
func (s *HistoryService) Get(ctx context.Context, id string) (*Run, error) {
	return s.repo.GetRun(ctx, id)
}

// List returns recent runs. Non-positive limits use the default and large ones are capped.
func (s *HistoryService) List(ctx context.Context, limit int) ([]RunSummary, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	return s.repo.ListRuns(ctx, limit)
}

// Ping checks that the store is reachable
func (s *HistoryService) Ping(ctx context.Context) error {
	return s.repo.db.PingContext(ctx)
}

// Count returns the number of stored runs
func (s *HistoryService) Count(ctx context.Context) (int, error) {
	return s.repo.CountRuns(ctx)
}
