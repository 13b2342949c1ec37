package simulation

// Category is one of the five ordered decision buckets, from most to least confident
type Category int

const (
	FullSpeedAhead Category = iota
	ProceedStrategically
	ImplementWithOversight
	RequestClarification
	DelayOrDisengage

	numCategories = 5
)

// Decision is the label and color attached to a score bucket
type Decision struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// NeutralColor is used when there is nothing to classify
const NeutralColor = "#6b7280"

type bucket struct {
	threshold      float64 // exclusive lower bound
	decision       Decision
	representative float64
}

var buckets = [numCategories]bucket{
	FullSpeedAhead:         {threshold: 0.85, decision: Decision{"Full Speed Ahead", "#22c55e"}, representative: 0.9},
	ProceedStrategically:   {threshold: 0.65, decision: Decision{"Proceed Strategically", "#4ade80"}, representative: 0.75},
	ImplementWithOversight: {threshold: 0.55, decision: Decision{"Implement with Oversight", "#a3e635"}, representative: 0.6},
	RequestClarification:   {threshold: 0.35, decision: Decision{"Request Clarification", "#facc15"}, representative: 0.45},
	DelayOrDisengage:       {decision: Decision{"Delay or Disengage", "#f87171"}, representative: 0.2},
}

// Categories returns the five buckets in spectrum order
func Categories() []Category {
	return []Category{FullSpeedAhead, ProceedStrategically, ImplementWithOversight, RequestClarification, DelayOrDisengage}
}

// Classify maps a score to its bucket. Comparisons are strict, so a score equal
// to a threshold lands in the lower bucket.
func Classify(score float64) Category {
	for c := FullSpeedAhead; c < DelayOrDisengage; c++ {
		if score > buckets[c].threshold {
			return c
		}
	}
	return DelayOrDisengage
}

// GetDecision returns the label and color for score
func GetDecision(score float64) Decision {
	return Classify(score).Decision()
}

// Decision returns the label and color of the bucket
func (c Category) Decision() Decision {
	if c < 0 || c >= numCategories {
		return Decision{Color: NeutralColor}
	}
	return buckets[c].decision
}

// String returns the bucket label
func (c Category) String() string {
	return c.Decision().Text
}

// Representative returns the typical score for the bucket
func (c Category) Representative() float64 {
	if c < 0 || c >= numCategories {
		return 0
	}
	return buckets[c].representative
}

// Threshold returns the exclusive lower bound of the bucket; the last bucket has none
func (c Category) Threshold() (float64, bool) {
	if c < 0 || c >= DelayOrDisengage {
		return 0, false
	}
	return buckets[c].threshold, true
}

// CategoryFor finds the bucket carrying label
func CategoryFor(label string) (Category, bool) {
	for c := FullSpeedAhead; c < numCategories; c++ {
		if buckets[c].decision.Text == label {
			return c, true
		}
	}
	return 0, false
}

// Legacy three-bucket scheme used by the team dashboard. It is independent of
// the five-bucket scheme above.
var legacyBuckets = []struct {
	threshold float64
	decision  Decision
}{
	{threshold: 0.65, decision: Decision{"Proceed", "#22c55e"}},
	{threshold: 0.45, decision: Decision{"Clarify", "#facc15"}},
}

var legacyFallback = Decision{"Disengage", "#f87171"}

// GetLegacyDecision classifies score with the three-bucket team dashboard thresholds
func GetLegacyDecision(score float64) Decision {
	for _, b := range legacyBuckets {
		if score > b.threshold {
			return b.decision
		}
	}
	return legacyFallback
}

// Classifier maps a score to a decision
type Classifier func(score float64) Decision
