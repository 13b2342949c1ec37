package factors

// FactorInfo carries the display text for one factor. It has no effect on scoring.
type FactorInfo struct {
	Key         FactorKey `json:"key"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
	Low         string    `json:"low"`
	High        string    `json:"high"`
}

var factorInfo = map[FactorKey]FactorInfo{
	DataQuality: {
		Key:         DataQuality,
		Label:       "Data Quality",
		Description: "How complete, accurate and current the information behind the decision is.",
		Low:         "Sparse, stale or contradictory data",
		High:        "Verified, comprehensive and up-to-date data",
	},
	ROIVisibility: {
		Key:         ROIVisibility,
		Label:       "ROI Visibility",
		Description: "How clearly the expected return or benefit of acting can be seen and measured.",
		Low:         "Payoff is speculative or unmeasurable",
		High:        "Payoff is concrete and quantified",
	},
	AutonomyScope: {
		Key:         AutonomyScope,
		Label:       "Autonomy Scope",
		Description: "How much authority the decision maker has to act without further sign-off.",
		Low:         "Every step needs approval",
		High:        "Full ownership of the outcome",
	},
	TimePressure: {
		Key:         TimePressure,
		Label:       "Time Pressure",
		Description: "How urgently a decision is needed before the opportunity or risk window closes.",
		Low:         "No deadline in sight",
		High:        "Decision needed immediately",
	},
	SocialComplexity: {
		Key:         SocialComplexity,
		Label:       "Social Complexity",
		Description: "How many stakeholders, relationships and political constraints are involved.",
		Low:         "Single owner, aligned team",
		High:        "Many competing stakeholders",
	},
	PsychologicalSafety: {
		Key:         PsychologicalSafety,
		Label:       "Psychological Safety",
		Description: "How safe people feel to take risks, voice doubts and admit mistakes.",
		Low:         "Mistakes are punished",
		High:        "Candor and experimentation are rewarded",
	},
}

// Info returns the display metadata for every factor in canonical order
func Info() []FactorInfo {
	out := make([]FactorInfo, 0, len(canonicalKeys))
	for _, k := range canonicalKeys {
		out = append(out, factorInfo[k])
	}
	return out
}

// InfoFor returns the display metadata for a single factor
func InfoFor(key FactorKey) (FactorInfo, bool) {
	info, ok := factorInfo[key]
	return info, ok
}
