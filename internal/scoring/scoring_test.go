package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"archery/internal/core"
	"archery/internal/round"
)

func TestGetScoringType(t *testing.T) {
	outdoorImperial := round.Round{Name: "york", IsOutdoor: true}
	outdoorMetric := round.Round{Name: "wa1440", IsOutdoor: true, IsMetric: true}
	indoorImperial := round.Round{Name: "portsmouth"}
	worcester := round.Round{Name: "worcester", DisplayName: "Worcester"}

	tests := []struct {
		name  string
		round round.Round
		face  core.Face
		want  Type
	}{
		{"outdoor imperial", outdoorImperial, core.FaceFull, Imperial},
		{"outdoor metric", outdoorMetric, core.FaceFull, Metric},
		{"indoor imperial scores ten zone", indoorImperial, core.FaceFull, Metric},
		{"triple face", indoorImperial, core.FaceTriple, Triple},
		{"half face", outdoorMetric, core.FaceHalf, Triple},
		{"six zone face", outdoorMetric, core.FaceFitaSix, FitaSixZone},
		{"worcester", worcester, core.FaceFull, Worcester},
		{"worcester ignores triple", worcester, core.FaceTriple, Worcester},
		{"worcester five", worcester, core.FaceWorcesterFive, WorcesterFive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetScoringType(tt.round, tt.face))
		})
	}
}

func TestArrowRadius(t *testing.T) {
	assert.Equal(t, 0.357, ArrowRadius(true, false))
	assert.Equal(t, 0.357, ArrowRadius(false, false))
	assert.Equal(t, 0.275, ArrowRadius(true, true))
	assert.Equal(t, 0.465, ArrowRadius(false, true))
}

func TestAverageScorePerArrow(t *testing.T) {
	// a perfect archer at close range scores the max every arrow
	assert.InDelta(t, 10.0, Metric.AverageScorePerArrow(1, 122, 0, false, true, false), 1e-6)
	assert.InDelta(t, 9.0, Imperial.AverageScorePerArrow(1, 122, 0, false, true, false), 1e-6)

	better := Metric.AverageScorePerArrow(18, 40, 20, false, false, false)
	worse := Metric.AverageScorePerArrow(18, 40, 40, false, false, false)
	assert.Greater(t, better, worse)

	innerTen := Metric.AverageScorePerArrow(18, 40, 20, true, false, false)
	assert.Less(t, innerTen, better)
	assert.Equal(t, better, Metric.AverageScorePerArrow(18, 40, 20, true, true, false), "inner ten is indoor only")

	assert.True(t, math.IsNaN(Metric.AverageScorePerArrow(18, 40, math.NaN(), false, false, false)))
}

func TestZoneScores(t *testing.T) {
	assert.True(t, Imperial.IsValidScore(9))
	assert.False(t, Imperial.IsValidScore(8))
	assert.True(t, Worcester.IsValidScore(5))
	assert.False(t, Worcester.IsValidScore(6))
	assert.False(t, WorcesterFive.IsValidScore(3))
	assert.True(t, Triple.IsValidScore(0))
	assert.False(t, Triple.IsValidScore(5))

	assert.Equal(t, 9, Imperial.MaxScorePerArrow())
	assert.Equal(t, 5, WorcesterFive.MaxScorePerArrow())
	assert.True(t, Metric.SupportsInnerTen())
	assert.False(t, Imperial.SupportsInnerTen())

	zones := Metric.ZoneScores()
	zones[0] = 99
	assert.Equal(t, 10, Metric.ZoneScores()[0])
}
