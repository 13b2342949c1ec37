package simulation

import (
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/factors"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/mbti"
)

// Report bundles everything one simulation run produces
type Report struct {
	Inputs        factors.Inputs `json:"inputs"`
	Results       []Result       `json:"results"`
	Majority      Majority       `json:"majority"`
	PublicOpinion PublicOpinion  `json:"public_opinion"`
}

// Run evaluates the archetype catalog and the public composite for inputs
func Run(inputs factors.Inputs) Report {
	results := CalculateResults(inputs)
	return Report{
		Inputs:        inputs,
		Results:       results,
		Majority:      CalculateMajorityDecision(results),
		PublicOpinion: CalculatePublicOpinion(inputs),
	}
}

// TeamReport is the outcome of the legacy team dashboard
type TeamReport struct {
	Inputs   factors.LegacyFactors `json:"inputs"`
	Results  []Result              `json:"results"`
	Majority Majority              `json:"majority"`
}

// CalculateTeamResults evaluates the four-type roster on the five-factor shape
// with the three-bucket classifier.
func CalculateTeamResults(inputs factors.LegacyFactors) []Result {
	profiles := mbti.LegacyProfiles()
	results := make([]Result, 0, len(profiles))
	for _, p := range profiles {
		score := Round3(p.Weights.Dot(inputs))
		d := GetLegacyDecision(score)
		results = append(results, Result{
			Name:     p.Name,
			Score:    score,
			Decision: d.Text,
			Color:    d.Color,
		})
	}
	return results
}

// RunTeam evaluates the team roster and its majority
func RunTeam(inputs factors.LegacyFactors) TeamReport {
	results := CalculateTeamResults(inputs)
	return TeamReport{
		Inputs:   inputs,
		Results:  results,
		Majority: CalculateMajorityDecision(results),
	}
}
