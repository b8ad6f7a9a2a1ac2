// Package scoring models how a target face converts arrow dispersion into an
// expected score. Each Type carries the zone constants of one face layout.
package scoring

import (
	"math"
	"strings"

	"archery/internal/core"
	"archery/internal/round"
)

type Type int

const (
	Metric Type = iota + 1
	Imperial
	Triple
	FitaSixZone
	Worcester
	WorcesterFive
)

func (t Type) String() string {
	switch t {
	case Metric:
		return "metric"
	case Imperial:
		return "imperial"
	case Triple:
		return "triple"
	case FitaSixZone:
		return "fita-six-zone"
	case Worcester:
		return "worcester"
	case WorcesterFive:
		return "worcester-five"
	default:
		return "unknown"
	}
}

// zones describes max - coeff*sum_{n=1..end} P(n*D/denom) - tailCoeff*P(tailN*D/denom)
// where P(x) is the probability of landing outside radius x.
type zones struct {
	max       float64
	end       int
	denom     float64
	coeff     float64
	tailN     int
	tailCoeff float64
	innerTen  bool
	scores    []int
}

var zoneTable = map[Type]zones{
	Metric:        {max: 10, end: 10, denom: 20, coeff: 1, innerTen: true, scores: []int{10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0}},
	Imperial:      {max: 9, end: 4, denom: 10, coeff: 2, tailN: 5, tailCoeff: 1, scores: []int{9, 7, 5, 3, 1, 0}},
	Triple:        {max: 10, end: 4, denom: 20, coeff: 1, tailN: 5, tailCoeff: 6, innerTen: true, scores: []int{10, 9, 8, 7, 6, 0}},
	FitaSixZone:   {max: 10, end: 5, denom: 20, coeff: 1, tailN: 6, tailCoeff: 5, innerTen: true, scores: []int{10, 9, 8, 7, 6, 5, 0}},
	Worcester:     {max: 5, end: 5, denom: 10, coeff: 1, scores: []int{5, 4, 3, 2, 1, 0}},
	WorcesterFive: {max: 5, end: 1, denom: 10, coeff: 1, tailN: 2, tailCoeff: 4, scores: []int{5, 4, 0}},
}

const (
	legacyArrowRadiusCm  = 0.357
	outdoorArrowRadiusCm = 0.275
	indoorArrowRadiusCm  = 0.465
)

// GetScoringType picks the zone layout for a round shot on a given face
func GetScoringType(r round.Round, face core.Face) Type {
	if strings.Contains(strings.ToLower(r.Name), "worcester") ||
		strings.Contains(strings.ToLower(r.DisplayName), "worcester") {
		if face == core.FaceWorcesterFive {
			return WorcesterFive
		}
		return Worcester
	}

	switch face {
	case core.FaceTriple, core.FaceHalf:
		return Triple
	case core.FaceFitaSix:
		return FitaSixZone
	}

	if r.IsMetric || !r.IsOutdoor {
		return Metric
	}
	return Imperial
}

// Sigma is the radial dispersion in cm of an archer of the given handicap at
// rangeInM metres
func Sigma(rangeInM, handicap float64, use2023Handicaps bool) float64 {
	if use2023Handicaps {
		return 100 * rangeInM * math.Pow(1.035, handicap+6) * 5e-4 * math.Exp(0.00365*rangeInM)
	}
	return 100 * rangeInM * math.Pow(1.036, handicap+12.9) * 5e-4 *
		(1 + 1.429e-6*math.Pow(1.07, handicap+4.3)*rangeInM*rangeInM)
}

// ArrowRadius in cm for the selected handicap system
func ArrowRadius(isOutdoor, use2023Handicaps bool) float64 {
	if !use2023Handicaps {
		return legacyArrowRadiusCm
	}
	if isOutdoor {
		return outdoorArrowRadiusCm
	}
	return indoorArrowRadiusCm
}

// AverageScorePerArrow returns the expected score of a single arrow. No range
// checks are made; NaN inputs produce NaN.
func (t Type) AverageScorePerArrow(rangeInM, faceSizeInCm, handicap float64,
	innerTenArcher, isOutdoor, use2023Handicaps bool) float64 {
	z := zoneTable[t]
	sigma := Sigma(rangeInM, handicap, use2023Handicaps)
	r := ArrowRadius(isOutdoor, use2023Handicaps)
	outside := func(radius float64) float64 {
		return math.Exp(-math.Pow(radius+r, 2) / math.Pow(sigma, 2))
	}

	score := z.max
	start := 1
	if innerTenArcher && !isOutdoor && z.innerTen {
		start = 2
		score -= outside(faceSizeInCm / 40)
	}
	for n := start; n <= z.end; n++ {
		score -= z.coeff * outside(float64(n)*faceSizeInCm/z.denom)
	}
	if z.tailN > 0 {
		score -= z.tailCoeff * outside(float64(z.tailN)*faceSizeInCm/z.denom)
	}
	return score
}

// MaxScorePerArrow is the highest value a single arrow can score
func (t Type) MaxScorePerArrow() int {
	return int(zoneTable[t].max)
}

// ZoneScores lists the possible arrow values from the centre outwards, ending in a miss
func (t Type) ZoneScores() []int {
	return append([]int(nil), zoneTable[t].scores...)
}

// IsValidScore reports whether the face can produce the value
func (t Type) IsValidScore(score int) bool {
	for _, s := range zoneTable[t].scores {
		if s == score {
			return true
		}
	}
	return false
}

// SupportsInnerTen reports whether the face has a ten ring to split
func (t Type) SupportsInnerTen() bool {
	return zoneTable[t].innerTen
}
