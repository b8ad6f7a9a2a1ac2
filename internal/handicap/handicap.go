// Package handicap converts between round scores and archery handicaps.
//
// A handicap maps to an expected score through the dispersion model in
// package scoring. The inverse has no closed form and is found by bisection.
package handicap

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"archery/internal/core"
	"archery/internal/round"
	"archery/internal/scoring"
)

const (
	MaxLegacyHandicap = 100.0
	Max2023Handicap   = 150.0

	// Search stops once the bracket is narrower than this
	accuracy = 1e-2
	maxLift  = 64

	allowanceBase = 1440
)

// ErrInvalidInput is wrapped when the round data cannot produce a result
var ErrInvalidInput = errors.New("insufficient round data")

// Input is everything the engine needs about one round
type Input struct {
	Round          round.Round
	ArrowCounts    []round.ArrowCount
	Distances      []round.Distance
	InnerTenArcher bool
	Arrows         int // 0 counts every arrow in the round
	Use2023        bool
	Faces          []core.Face // empty, one for every leg, or one per leg
}

type Engine struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{logger: logger}
}

// MaxHandicap is the worst handicap of the selected system
func MaxHandicap(use2023 bool) float64 {
	if use2023 {
		return Max2023Handicap
	}
	return MaxLegacyHandicap
}

// RoundHandicap rounds up to the whole handicap shown to archers
func RoundHandicap(h float64) int {
	return int(math.Ceil(h))
}

type leg struct {
	round.Leg
	scoringType scoring.Type
}

func (e *Engine) prepare(in Input) ([]leg, error) {
	legs, err := round.Legs(in.Round, in.ArrowCounts, in.Distances)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if in.Arrows < 0 {
		return nil, fmt.Errorf("%w: arrow count %d is negative", ErrInvalidInput, in.Arrows)
	}
	if total := round.TotalArrows(in.ArrowCounts); in.Arrows > total {
		return nil, fmt.Errorf("%w: %d arrows requested but round has %d", ErrInvalidInput, in.Arrows, total)
	}

	switch len(in.Faces) {
	case 0, 1, len(legs):
	default:
		return nil, fmt.Errorf("%w: %d faces for %d distances", ErrInvalidInput, len(in.Faces), len(legs))
	}

	out := make([]leg, len(legs))
	for i, l := range legs {
		face := core.FaceFull
		switch len(in.Faces) {
		case 1:
			face = in.Faces[0]
		case len(legs):
			face = in.Faces[i]
		}
		out[i] = leg{Leg: l, scoringType: scoring.GetScoringType(in.Round, face)}
	}
	return out, nil
}

func (e *Engine) fail(op string, in Input, err error) error {
	e.logger.Warn("Handicap calculation skipped",
		slog.String("operation", op),
		slog.String("round", in.Round.Name),
		slog.Int("arrows", in.Arrows),
		slog.Bool("use_2023", in.Use2023),
		slog.String("error", err.Error()),
	)
	return err
}

// ScoreForRound returns the expected score of an archer of the given handicap
func (e *Engine) ScoreForRound(in Input, handicap float64) (int, error) {
	if math.IsNaN(handicap) {
		return 0, e.fail("score", in, fmt.Errorf("%w: handicap is NaN", ErrInvalidInput))
	}
	legs, err := e.prepare(in)
	if err != nil {
		return 0, e.fail("score", in, err)
	}
	return scoreForLegs(legs, in, handicap), nil
}

func scoreForLegs(legs []leg, in Input, handicap float64) int {
	remaining := in.Arrows
	if remaining == 0 {
		for _, l := range legs {
			remaining += l.ArrowCount
		}
	}

	total := 0.0
	for _, l := range legs {
		count := l.ArrowCount
		if remaining < count {
			count = remaining
		}
		total += float64(count) * l.scoringType.AverageScorePerArrow(
			l.RangeMetres, l.FaceSizeCm, handicap, in.InnerTenArcher, in.Round.IsOutdoor, in.Use2023)
		remaining -= count
		if remaining <= 0 {
			break
		}
	}

	if in.Use2023 {
		total = math.Ceil(total)
	}
	return int(math.Floor(total + 0.5))
}

// maxScore is the highest score possible for the arrows counted
func maxScore(legs []leg, in Input) int {
	remaining := in.Arrows
	if remaining == 0 {
		for _, l := range legs {
			remaining += l.ArrowCount
		}
	}

	total := 0
	for _, l := range legs {
		count := min(l.ArrowCount, remaining)
		total += count * l.scoringType.MaxScorePerArrow()
		remaining -= count
		if remaining <= 0 {
			break
		}
	}
	return total
}

// MaxScore is the highest score possible for the round as configured
func (e *Engine) MaxScore(in Input) (int, error) {
	legs, err := e.prepare(in)
	if err != nil {
		return 0, e.fail("max_score", in, err)
	}
	return maxScore(legs, in), nil
}

// Allowance is what allowance tables add to a predicted score
func Allowance(score int) int {
	return allowanceBase - score
}

// AllowanceForRound is 1440 minus the expected score
func (e *Engine) AllowanceForRound(in Input, handicap float64) (int, error) {
	score, err := e.ScoreForRound(in, handicap)
	if err != nil {
		return 0, err
	}
	return Allowance(score), nil
}

type sample struct {
	handicap float64
	score    int
}

// HandicapForRound finds the handicap matching a score.
//
// Expected score never increases with handicap. The search keeps a bracket
// lo.score > score >= hi.score, so the step down to score lies in (lo, hi],
// and narrows it to accuracy. The good end lo is returned: it never exceeds a
// handicap that shoots score and rounds up to the same whole handicap as the
// step itself.
func (e *Engine) HandicapForRound(in Input, score int) (float64, error) {
	legs, err := e.prepare(in)
	if err != nil {
		return 0, e.fail("handicap", in, err)
	}
	if top := maxScore(legs, in); score < 0 || score > top {
		return 0, e.fail("handicap", in, fmt.Errorf("%w: score %d outside 0..%d", ErrInvalidInput, score, top))
	}

	at := func(h float64) sample {
		return sample{handicap: h, score: scoreForLegs(legs, in, h)}
	}
	narrow := func(lo, hi sample) (sample, sample) {
		mid := at((lo.handicap + hi.handicap) / 2)
		if mid.score > score {
			return mid, hi
		}
		return lo, mid
	}

	lo := at(0)
	hi := at(MaxHandicap(in.Use2023))

	// Off the chart at either end
	if lo.score <= score {
		return lo.handicap, nil
	}
	if hi.score > score {
		return hi.handicap, nil
	}

	for hi.handicap-lo.handicap >= accuracy {
		lo, hi = narrow(lo, hi)
	}

	// A whole handicap inside the bracket tells which side of it the step is
	k := math.Ceil(lo.handicap)
	if k > hi.handicap {
		return lo.handicap, nil
	}
	if k > lo.handicap {
		probe := at(k)
		if probe.score <= score {
			return lo.handicap, nil
		}
		lo = probe
	}
	// The step is above k, lo has to leave it to round up past k
	for i := 0; lo.handicap == k && i < maxLift; i++ {
		lo, hi = narrow(lo, hi)
	}
	return lo.handicap, nil
}

// TableRow is one line of a handicap table
type TableRow struct {
	Handicap int `json:"handicap"`
	Score    int `json:"score"`
}

// Table lists the expected score for every whole handicap from..to inclusive
func (e *Engine) Table(in Input, from, to int) ([]TableRow, error) {
	if from > to {
		return nil, e.fail("table", in, fmt.Errorf("%w: empty handicap range %d..%d", ErrInvalidInput, from, to))
	}
	legs, err := e.prepare(in)
	if err != nil {
		return nil, e.fail("table", in, err)
	}

	rows := make([]TableRow, 0, to-from+1)
	for h := from; h <= to; h++ {
		rows = append(rows, TableRow{Handicap: h, Score: scoreForLegs(legs, in, float64(h))})
	}
	return rows, nil
}
