package simulation

import (
	"math"

	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/factors"
)

// PublicOpinionWeights is the composite weight vector for the general public
var PublicOpinionWeights = factors.Weights{
	DataQuality:         0.15,
	ROIVisibility:       0.35,
	AutonomyScope:       0.10,
	TimePressure:        0.30,
	SocialComplexity:    -0.25,
	PsychologicalSafety: 0.10,
}

// CalculateScore returns the weighted sum of inputs. The result is not clamped.
func CalculateScore(weights factors.Weights, inputs factors.Inputs) float64 {
	return weights.Dot(inputs)
}

// Round3 rounds x to three decimal places
func Round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
