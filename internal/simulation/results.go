package simulation

import (
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/factors"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/mbti"
)

// Result is the outcome for one archetype under one set of inputs
type Result struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Decision string  `json:"decision"`
	Color    string  `json:"color"`
}

// PublicOpinion is the population-level view of a scenario
type PublicOpinion struct {
	Score         float64      `json:"score"`
	Probabilities Distribution `json:"probabilities"`
	MostLikely    string       `json:"most_likely"`
	Color         string       `json:"color"`
}

// Majority is the tally of a batch of results
type Majority struct {
	Decision string         `json:"decision"`
	Color    string         `json:"color"`
	Counts   map[string]int `json:"counts"`
}

// EvaluateProfiles scores every profile against inputs and classifies the
// rounded score, preserving profile order.
func EvaluateProfiles(profiles []mbti.Profile, inputs factors.Inputs, classify Classifier) []Result {
	results := make([]Result, 0, len(profiles))
	for _, p := range profiles {
		score := Round3(CalculateScore(p.Weights, inputs))
		d := classify(score)
		results = append(results, Result{
			Name:     p.Name,
			Score:    score,
			Decision: d.Text,
			Color:    d.Color,
		})
	}
	return results
}

// CalculateResults evaluates the full archetype catalog
func CalculateResults(inputs factors.Inputs) []Result {
	return EvaluateProfiles(mbti.Profiles(), inputs, GetDecision)
}

// CalculatePublicOpinion scores the public composite and derives its distribution.
// The color comes from the representative score of the most likely bucket, not
// from the raw public score.
func CalculatePublicOpinion(inputs factors.Inputs) PublicOpinion {
	score := Round3(CalculateScore(PublicOpinionWeights, inputs))
	probabilities := GetPublicProbabilities(score)
	mostLikely := probabilities.MostLikely()

	return PublicOpinion{
		Score:         score,
		Probabilities: probabilities,
		MostLikely:    mostLikely.String(),
		Color:         GetDecision(mostLikely.Representative()).Color,
	}
}

// CalculateMajorityDecision tallies decisions and picks the plurality winner.
// Ties go to the decision seen first. The color is taken from the first result
// carrying the winning decision.
func CalculateMajorityDecision(results []Result) Majority {
	counts := make(map[string]int)
	if len(results) == 0 {
		return Majority{Decision: "", Color: NeutralColor, Counts: counts}
	}

	order := make([]string, 0, numCategories)
	for _, r := range results {
		if _, seen := counts[r.Decision]; !seen {
			order = append(order, r.Decision)
		}
		counts[r.Decision]++
	}

	winner := order[0]
	for _, label := range order[1:] {
		if counts[label] > counts[winner] {
			winner = label
		}
	}

	color := NeutralColor
	for _, r := range results {
		if r.Decision == winner {
			color = r.Color
			break
		}
	}

	return Majority{Decision: winner, Color: color, Counts: counts}
}
