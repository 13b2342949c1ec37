package factors

import (
	"errors"
	"fmt"
)

// ErrUnknownPreset is returned when a preset name is not in the catalog
var ErrUnknownPreset = errors.New("unknown preset")

// Scenario is a named, ready-to-run set of inputs
type Scenario struct {
	Name        string  `json:"name"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Inputs      Factors `json:"inputs"`
}

var defaultInputs = Factors{
	DataQuality:         0.7,
	ROIVisibility:       0.6,
	AutonomyScope:       0.5,
	TimePressure:        0.4,
	SocialComplexity:    0.3,
	PsychologicalSafety: 0.6,
}

var presets = []Scenario{
	{
		Name:        "startup_pivot",
		Title:       "Startup Pivot",
		Description: "A small team must decide quickly whether to pivot the product on thin market data.",
		Inputs: Factors{
			DataQuality:         0.3,
			ROIVisibility:       0.4,
			AutonomyScope:       0.9,
			TimePressure:        0.8,
			SocialComplexity:    0.2,
			PsychologicalSafety: 0.7,
		},
	},
	{
		Name:        "enterprise_rollout",
		Title:       "Enterprise Rollout",
		Description: "A well-analyzed platform migration that touches many departments and approval layers.",
		Inputs: Factors{
			DataQuality:         0.9,
			ROIVisibility:       0.8,
			AutonomyScope:       0.3,
			TimePressure:        0.4,
			SocialComplexity:    0.8,
			PsychologicalSafety: 0.5,
		},
	},
	{
		Name:        "crisis_response",
		Title:       "Crisis Response",
		Description: "An outage is in progress; information is partial and every minute counts.",
		Inputs: Factors{
			DataQuality:         0.4,
			ROIVisibility:       0.7,
			AutonomyScope:       0.7,
			TimePressure:        1.0,
			SocialComplexity:    0.6,
			PsychologicalSafety: 0.4,
		},
	},
	{
		Name:        "research_bet",
		Title:       "Research Bet",
		Description: "An exploratory R&D investment with an unclear payoff and a patient, trusting team.",
		Inputs: Factors{
			DataQuality:         0.5,
			ROIVisibility:       0.2,
			AutonomyScope:       0.8,
			TimePressure:        0.1,
			SocialComplexity:    0.3,
			PsychologicalSafety: 0.9,
		},
	},
}

// Default returns the inputs a fresh session starts with
func Default() Factors {
	return defaultInputs
}

// Presets returns the preset scenarios in display order
func Presets() []Scenario {
	return append([]Scenario(nil), presets...)
}

// Preset looks up a preset scenario by name
func Preset(name string) (Scenario, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}
