package simulation

import (
	"encoding/json"
	"fmt"
)

// Distribution holds one probability per decision bucket, indexed by Category
type Distribution [numCategories]float64

// Of returns the probability assigned to c
func (d Distribution) Of(c Category) float64 {
	if c < 0 || c >= numCategories {
		return 0
	}
	return d[c]
}

// Sum returns the total probability mass
func (d Distribution) Sum() float64 {
	s := 0.0
	for _, p := range d {
		s += p
	}
	return s
}

// MostLikely returns the bucket with the highest probability. Ties go to the
// bucket that comes first in spectrum order.
func (d Distribution) MostLikely() Category {
	best := FullSpeedAhead
	for c := FullSpeedAhead + 1; c < numCategories; c++ {
		if d[c] > d[best] {
			best = c
		}
	}
	return best
}

// Map returns the distribution keyed by decision label
func (d Distribution) Map() map[string]float64 {
	m := make(map[string]float64, numCategories)
	for c := FullSpeedAhead; c < numCategories; c++ {
		m[c.String()] = d[c]
	}
	return m
}

// MarshalJSON encodes the distribution as a label->probability object
func (d Distribution) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Map())
}

// UnmarshalJSON decodes a label->probability object
func (d *Distribution) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var out Distribution
	for label, p := range m {
		c, ok := CategoryFor(label)
		if !ok {
			return fmt.Errorf("unknown decision label %q", label)
		}
		out[c] = p
	}
	*d = out
	return nil
}

type share struct {
	to       Category
	fraction float64
}

// probabilityRule describes how one score range spreads its mass. The primary
// bucket takes value(score); each cascade step takes its fraction of the mass
// still unassigned, and the rest bucket receives whatever is left.
type probabilityRule struct {
	primary Category
	value   func(score float64) float64
	cascade [3]share
	rest    Category
}

var probabilityRules = [numCategories]probabilityRule{
	FullSpeedAhead: {
		primary: FullSpeedAhead,
		value:   func(s float64) float64 { return clamp(s*0.8, 0.6, 0.95) },
		cascade: [3]share{{ProceedStrategically, 0.6}, {ImplementWithOversight, 0.7}, {RequestClarification, 0.8}},
		rest:    DelayOrDisengage,
	},
	ProceedStrategically: {
		primary: ProceedStrategically,
		value:   func(s float64) float64 { return clamp(s*0.7, 0.5, 0.9) },
		cascade: [3]share{{FullSpeedAhead, 0.3}, {ImplementWithOversight, 0.5}, {RequestClarification, 0.7}},
		rest:    DelayOrDisengage,
	},
	ImplementWithOversight: {
		primary: ImplementWithOversight,
		value:   func(s float64) float64 { return clamp(s*0.6, 0.4, 0.85) },
		cascade: [3]share{{ProceedStrategically, 0.4}, {FullSpeedAhead, 0.1}, {RequestClarification, 0.7}},
		rest:    DelayOrDisengage,
	},
	RequestClarification: {
		primary: RequestClarification,
		value:   func(s float64) float64 { return clamp((1-s)*0.6, 0.3, 0.8) },
		cascade: [3]share{{ImplementWithOversight, 0.3}, {ProceedStrategically, 0.2}, {FullSpeedAhead, 0.05}},
		rest:    DelayOrDisengage,
	},
	DelayOrDisengage: {
		primary: DelayOrDisengage,
		value:   func(s float64) float64 { return clamp((1-s)*0.8, 0.5, 0.9) },
		cascade: [3]share{{RequestClarification, 0.6}, {ImplementWithOversight, 0.3}, {ProceedStrategically, 0.1}},
		rest:    FullSpeedAhead,
	},
}

// GetPublicProbabilities spreads one unit of probability over the five buckets,
// concentrating it on the bucket Classify(score) picks. Values are rounded to
// three decimals and always sum to 1.
func GetPublicProbabilities(score float64) Distribution {
	rule := probabilityRules[Classify(score)]

	var d Distribution
	primary := rule.value(score)
	d[rule.primary] = Round3(primary)

	remaining := 1 - primary
	assigned := d[rule.primary]
	for _, s := range rule.cascade {
		p := remaining * s.fraction
		remaining -= p
		d[s.to] = Round3(p)
		assigned += d[s.to]
	}

	// the rest bucket absorbs the rounding residue
	d[rule.rest] = clamp(Round3(1-assigned), 0, 1)
	return d
}
