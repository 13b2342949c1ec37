package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDecision_Boundaries(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
		color    string
	}{
		{0.95, "Full Speed Ahead", "#22c55e"},
		{0.850001, "Full Speed Ahead", "#22c55e"},
		{0.85, "Proceed Strategically", "#4ade80"},
		{0.7, "Proceed Strategically", "#4ade80"},
		{0.65, "Implement with Oversight", "#a3e635"},
		{0.6, "Implement with Oversight", "#a3e635"},
		{0.55, "Request Clarification", "#facc15"},
		{0.4, "Request Clarification", "#facc15"},
		{0.35, "Delay or Disengage", "#f87171"},
		{0, "Delay or Disengage", "#f87171"},
		{-0.3, "Delay or Disengage", "#f87171"},
		{1.4, "Full Speed Ahead", "#22c55e"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			d := GetDecision(tt.score)
			assert.Equal(t, tt.expected, d.Text, "score %v", tt.score)
			assert.Equal(t, tt.color, d.Color, "score %v", tt.score)
		})
	}
}

func TestCategory_Accessors(t *testing.T) {
	assert.Len(t, Categories(), 5)

	for _, c := range Categories() {
		// the representative score of a bucket classifies back into it
		assert.Equal(t, c, Classify(c.Representative()), c.String())

		got, ok := CategoryFor(c.String())
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}

	_, ok := DelayOrDisengage.Threshold()
	assert.False(t, ok)
	th, ok := ImplementWithOversight.Threshold()
	assert.True(t, ok)
	assert.Equal(t, 0.55, th)

	_, ok = CategoryFor("Proceed")
	assert.False(t, ok)

	out := Category(42)
	assert.Equal(t, "", out.String())
	assert.Equal(t, NeutralColor, out.Decision().Color)
}

func TestGetLegacyDecision(t *testing.T) {
	tests := []struct {
		score    float64
		expected Decision
	}{
		{0.9, Decision{"Proceed", "#22c55e"}},
		{0.650001, Decision{"Proceed", "#22c55e"}},
		{0.65, Decision{"Clarify", "#facc15"}},
		{0.5, Decision{"Clarify", "#facc15"}},
		{0.45, Decision{"Disengage", "#f87171"}},
		{-1, Decision{"Disengage", "#f87171"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, GetLegacyDecision(tt.score), "score %v", tt.score)
	}
}
