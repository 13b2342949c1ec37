package factors

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// FactorKey identifies one decision-influencing dimension
type FactorKey string

const (
	DataQuality         FactorKey = "data_quality"
	ROIVisibility       FactorKey = "roi_visibility"
	AutonomyScope       FactorKey = "autonomy_scope"
	TimePressure        FactorKey = "time_pressure"
	SocialComplexity    FactorKey = "social_complexity"
	PsychologicalSafety FactorKey = "psychological_safety"
)

var canonicalKeys = []FactorKey{
	DataQuality,
	ROIVisibility,
	AutonomyScope,
	TimePressure,
	SocialComplexity,
	PsychologicalSafety,
}

// Keys returns every factor key in canonical order
func Keys() []FactorKey {
	return append([]FactorKey(nil), canonicalKeys...)
}

// IsValid reports whether k belongs to the canonical key set
func (k FactorKey) IsValid() bool {
	for _, key := range canonicalKeys {
		if key == k {
			return true
		}
	}
	return false
}

// Factors holds one value per factor key. The same shape serves as archetype
// weights (roughly [-0.5, 0.5]) and as scenario inputs ([0, 1]).
type Factors struct {
	DataQuality         float64 `json:"data_quality"`
	ROIVisibility       float64 `json:"roi_visibility"`
	AutonomyScope       float64 `json:"autonomy_scope"`
	TimePressure        float64 `json:"time_pressure"`
	SocialComplexity    float64 `json:"social_complexity"`
	PsychologicalSafety float64 `json:"psychological_safety"`
}

// Weights and Inputs are the two roles a Factors record plays
type (
	Weights = Factors
	Inputs  = Factors
)

// Uniform returns a record with every factor set to v
func Uniform(v float64) Factors {
	return Factors{v, v, v, v, v, v}
}

// Value returns the value stored for key, or 0 for an unknown key
func (f Factors) Value(key FactorKey) float64 {
	switch key {
	case DataQuality:
		return f.DataQuality
	case ROIVisibility:
		return f.ROIVisibility
	case AutonomyScope:
		return f.AutonomyScope
	case TimePressure:
		return f.TimePressure
	case SocialComplexity:
		return f.SocialComplexity
	case PsychologicalSafety:
		return f.PsychologicalSafety
	}
	return 0
}

// With returns a copy of f with key set to v
func (f Factors) With(key FactorKey, v float64) Factors {
	switch key {
	case DataQuality:
		f.DataQuality = v
	case ROIVisibility:
		f.ROIVisibility = v
	case AutonomyScope:
		f.AutonomyScope = v
	case TimePressure:
		f.TimePressure = v
	case SocialComplexity:
		f.SocialComplexity = v
	case PsychologicalSafety:
		f.PsychologicalSafety = v
	}
	return f
}

// Values returns the values in canonical key order
func (f Factors) Values() []float64 {
	return []float64{
		f.DataQuality, f.ROIVisibility, f.AutonomyScope,
		f.TimePressure, f.SocialComplexity, f.PsychologicalSafety,
	}
}

// Map converts the record to a key->value map
func (f Factors) Map() map[string]float64 {
	m := make(map[string]float64, len(canonicalKeys))
	for _, k := range canonicalKeys {
		m[string(k)] = f.Value(k)
	}
	return m
}

// Dot returns the sum of the element-wise products of f and other
func (f Factors) Dot(other Factors) float64 {
	return f.DataQuality*other.DataQuality +
		f.ROIVisibility*other.ROIVisibility +
		f.AutonomyScope*other.AutonomyScope +
		f.TimePressure*other.TimePressure +
		f.SocialComplexity*other.SocialComplexity +
		f.PsychologicalSafety*other.PsychologicalSafety
}

// Sum returns the total of all values
func (f Factors) Sum() float64 {
	return f.Dot(Uniform(1))
}

// ValidateInputs checks that every value lies in [0, 1]
func (f Factors) ValidateInputs() error {
	var bad []string
	for _, k := range canonicalKeys {
		v := f.Value(k)
		if math.IsNaN(v) || v < 0 || v > 1 {
			bad = append(bad, fmt.Sprintf("%s=%g", k, v))
		}
	}
	if len(bad) > 0 {
		return &RangeError{Fields: bad}
	}
	return nil
}

// FromMap builds a record from untyped key-value data. The key set must match
// the canonical set exactly.
func FromMap(m map[string]float64) (Factors, error) {
	return fromKeys(m, canonicalKeys)
}

// fromKeys builds a record from m, which must hold exactly the expected keys.
// Missing keys are reported in expected order, unknown keys sorted.
func fromKeys(m map[string]float64, expected []FactorKey) (Factors, error) {
	var (
		f       Factors
		missing []string
		unknown []string
	)
	want := make(map[string]struct{}, len(expected))
	for _, k := range expected {
		want[string(k)] = struct{}{}
		v, ok := m[string(k)]
		if !ok {
			missing = append(missing, string(k))
			continue
		}
		f = f.With(k, v)
	}
	for k := range m {
		if _, ok := want[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(missing) > 0 || len(unknown) > 0 {
		sort.Strings(unknown)
		return Factors{}, &ShapeMismatchError{Missing: missing, Unknown: unknown}
	}
	return f, nil
}

// ShapeMismatchError reports a key set that differs from the canonical one
type ShapeMismatchError struct {
	Missing []string
	Unknown []string
}

func (e *ShapeMismatchError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, "unknown "+strings.Join(e.Unknown, ", "))
	}
	return "factor shape mismatch: " + strings.Join(parts, "; ")
}

// RangeError reports input values outside [0, 1]
type RangeError struct {
	Fields []string
}

func (e *RangeError) Error() string {
	return "factor inputs out of range [0,1]: " + strings.Join(e.Fields, ", ")
}
