package database

import (
	"time"

	"github.com/google/uuid"

	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/factors"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/simulation"
)

// Run sources
const (
	SourceAPI = "api"
	SourceCLI = "cli"
)

// Run is one persisted simulation
type Run struct {
	ID               string            `json:"id"`
	Source           string            `json:"source"`
	Preset           string            `json:"preset,omitempty"`
	Inputs           factors.Inputs    `json:"inputs"`
	Report           simulation.Report `json:"report"`
	MajorityDecision string            `json:"majority_decision"`
	PublicMostLikely string            `json:"public_most_likely"`
	PublicScore      float64           `json:"public_score"`
	CreatedAt        time.Time         `json:"created_at"`
}

// RunSummary is the list view of a run, without the full report
type RunSummary struct {
	ID               string    `json:"id"`
	Source           string    `json:"source"`
	Preset           string    `json:"preset,omitempty"`
	MajorityDecision string    `json:"majority_decision"`
	PublicMostLikely string    `json:"public_most_likely"`
	PublicScore      float64   `json:"public_score"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewRun wraps a report in a new run with a generated ID
func NewRun(source, preset string, report simulation.Report) *Run {
	return &Run{
		ID:               uuid.New().String(),
		Source:           source,
		Preset:           preset,
		Inputs:           report.Inputs,
		Report:           report,
		MajorityDecision: report.Majority.Decision,
		PublicMostLikely: report.PublicOpinion.MostLikely,
		PublicScore:      report.PublicOpinion.Score,
		CreatedAt:        time.Now().UTC(),
	}
}

// Summary drops the report body
func (r *Run) Summary() RunSummary {
	return RunSummary{
		ID:               r.ID,
		Source:           r.Source,
		Preset:           r.Preset,
		MajorityDecision: r.MajorityDecision,
		PublicMostLikely: r.PublicMostLikely,
		PublicScore:      r.PublicScore,
		CreatedAt:        r.CreatedAt,
	}
}
