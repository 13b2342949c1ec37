package factors

// LegacyFactors is the five-factor shape used by the team dashboard. It predates
// the psychological safety dimension.
type LegacyFactors struct {
	DataQuality      float64 `json:"data_quality"`
	ROIVisibility    float64 `json:"roi_visibility"`
	AutonomyScope    float64 `json:"autonomy_scope"`
	TimePressure     float64 `json:"time_pressure"`
	SocialComplexity float64 `json:"social_complexity"`
}

// LegacyKeys returns the five legacy factor keys in canonical order
func LegacyKeys() []FactorKey {
	return append([]FactorKey(nil), canonicalKeys[:5]...)
}

// Legacy projects a six-factor record onto the legacy shape
func (f Factors) Legacy() LegacyFactors {
	return LegacyFactors{
		DataQuality:      f.DataQuality,
		ROIVisibility:    f.ROIVisibility,
		AutonomyScope:    f.AutonomyScope,
		TimePressure:     f.TimePressure,
		SocialComplexity: f.SocialComplexity,
	}
}

// Dot returns the sum of the element-wise products of f and other
func (f LegacyFactors) Dot(other LegacyFactors) float64 {
	return f.DataQuality*other.DataQuality +
		f.ROIVisibility*other.ROIVisibility +
		f.AutonomyScope*other.AutonomyScope +
		f.TimePressure*other.TimePressure +
		f.SocialComplexity*other.SocialComplexity
}

// ValidateInputs checks that every value lies in [0, 1]
func (f LegacyFactors) ValidateInputs() error {
	full := Factors{
		DataQuality:      f.DataQuality,
		ROIVisibility:    f.ROIVisibility,
		AutonomyScope:    f.AutonomyScope,
		TimePressure:     f.TimePressure,
		SocialComplexity: f.SocialComplexity,
	}
	return full.ValidateInputs()
}

// LegacyFromMap builds a legacy record, requiring exactly the five legacy keys
func LegacyFromMap(m map[string]float64) (LegacyFactors, error) {
	full, err := fromKeys(m, canonicalKeys[:5])
	if err != nil {
		return LegacyFactors{}, err
	}
	return full.Legacy(), nil
}
