package simulation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPublicProbabilities_Normalized(t *testing.T) {
	for i := -50; i <= 150; i++ {
		score := float64(i) / 100
		d := GetPublicProbabilities(score)

		assert.InDelta(t, 1.0, d.Sum(), 1e-9, "score %v", score)
		for c, p := range d {
			assert.GreaterOrEqual(t, p, 0.0, "score %v bucket %d", score, c)
			assert.LessOrEqual(t, p, 1.0, "score %v bucket %d", score, c)
			assert.Equal(t, Round3(p), p, "score %v bucket %d not rounded", score, c)
		}
	}
}

func TestGetPublicProbabilities_Alignment(t *testing.T) {
	for _, score := range []float64{0.851, 0.9, 0.97, 1.2} {
		assert.Equal(t, FullSpeedAhead, GetPublicProbabilities(score).MostLikely(), "score %v", score)
	}
	for _, score := range []float64{0.1, 0.05, 0, -0.4} {
		assert.Equal(t, DelayOrDisengage, GetPublicProbabilities(score).MostLikely(), "score %v", score)
	}
}

func TestGetPublicProbabilities_HighScore(t *testing.T) {
	d := GetPublicProbabilities(0.9)

	assert.InDelta(t, 0.72, d.Of(FullSpeedAhead), 1e-9)
	assert.InDelta(t, 0.168, d.Of(ProceedStrategically), 1e-9)
	assert.InDelta(t, 0.078, d.Of(ImplementWithOversight), 1e-9)
	assert.InDelta(t, 0.027, d.Of(RequestClarification), 1e-9)
	assert.InDelta(t, 0.007, d.Of(DelayOrDisengage), 1e-9)
}

func TestGetPublicProbabilities_PrimaryClamped(t *testing.T) {
	assert.InDelta(t, 0.95, GetPublicProbabilities(1.5).Of(FullSpeedAhead), 1e-9)
	assert.InDelta(t, 0.681, GetPublicProbabilities(0.851).Of(FullSpeedAhead), 1e-9)
	// 0.7 * 0.7 falls under the 0.5 floor
	assert.InDelta(t, 0.5, GetPublicProbabilities(0.7).Of(ProceedStrategically), 1e-9)
	assert.InDelta(t, 0.9, GetPublicProbabilities(-2).Of(DelayOrDisengage), 1e-9)
	assert.InDelta(t, 0.56, GetPublicProbabilities(0.3).Of(DelayOrDisengage), 1e-9)
}

func TestDistribution_MostLikelyTie(t *testing.T) {
	var d Distribution
	d[ImplementWithOversight] = 0.4
	d[RequestClarification] = 0.4
	d[DelayOrDisengage] = 0.2
	assert.Equal(t, ImplementWithOversight, d.MostLikely())
}

func TestDistribution_JSON(t *testing.T) {
	d := GetPublicProbabilities(0.6)

	data, err := json.Marshal(d)
	require.NoError(t, err)

	var labels map[string]float64
	require.NoError(t, json.Unmarshal(data, &labels))
	assert.Len(t, labels, 5)
	assert.Equal(t, d.Of(ImplementWithOversight), labels["Implement with Oversight"])

	var back Distribution
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)

	err = json.Unmarshal([]byte(`{"Maybe":1}`), &back)
	assert.Error(t, err)
}
