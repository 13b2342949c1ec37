package mbti

import (
	"errors"
	"fmt"

	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/factors"
)

// ErrUnknownArchetype matches every UnknownArchetypeError via errors.Is
var ErrUnknownArchetype = errors.New("unknown archetype")

// UnknownArchetypeError is returned when a type code is outside the catalog
type UnknownArchetypeError struct {
	Type string
}

func (e *UnknownArchetypeError) Error() string {
	return fmt.Sprintf("unknown archetype: %q", e.Type)
}

// Is lets errors.Is match the sentinel
func (e *UnknownArchetypeError) Is(target error) bool {
	return target == ErrUnknownArchetype
}

// Profile pairs an archetype code with its weight vector
type Profile struct {
	Name    string          `json:"name"`
	Weights factors.Weights `json:"weights"`
}

// LegacyProfile is a Profile on the five-factor shape
type LegacyProfile struct {
	Name    string                `json:"name"`
	Weights factors.LegacyFactors `json:"weights"`
}

// ScientificFactors summarizes the cognitive model behind an archetype's weights
type ScientificFactors struct {
	DominantFunction  string  `json:"dominant_function"`
	AuxiliaryFunction string  `json:"auxiliary_function"`
	RiskTolerance     float64 `json:"risk_tolerance"`
	AnalyticalDepth   float64 `json:"analytical_depth"`
	SocialSensitivity float64 `json:"social_sensitivity"`
}

// Description is the display text for an archetype
type Description struct {
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	Color             string            `json:"color"`
	ScientificFactors ScientificFactors `json:"scientific_factors"`
}

// Archetype is a fully constructed catalog entry
type Archetype struct {
	Type        string          `json:"type"`
	Weights     factors.Weights `json:"weights"`
	Description Description     `json:"description"`
}

// Profile returns the scoring view of the archetype
func (a Archetype) Profile() Profile {
	return Profile{Name: a.Type, Weights: a.Weights}
}
