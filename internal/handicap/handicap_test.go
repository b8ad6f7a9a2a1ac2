package handicap

import (
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archery/internal/core"
	"archery/internal/round"
)

func catalogInput(t *testing.T, name string, subType int) Input {
	t.Helper()
	def, ok := round.Lookup(name)
	require.True(t, ok, "round %s missing from catalog", name)
	_, distances, err := def.ForSubType(subType)
	require.NoError(t, err)
	return Input{Round: def.Round, ArrowCounts: def.ArrowCounts, Distances: distances}
}

func TestScoreForRound(t *testing.T) {
	e := New(slog.New(slog.DiscardHandler))

	tests := []struct {
		name     string
		round    string
		handicap float64
		mutate   func(*Input)
		want     int
	}{
		{name: "wa1440 legacy h0", round: "wa1440", handicap: 0, want: 1400},
		{name: "wa1440 legacy h20", round: "wa1440", handicap: 20, want: 1278},
		{name: "wa1440 legacy h50", round: "wa1440", handicap: 50, want: 716},
		{name: "wa1440 legacy h100", round: "wa1440", handicap: 100, want: 6},
		{name: "wa1440 2023 h20", round: "wa1440", handicap: 20, mutate: func(in *Input) { in.Use2023 = true }, want: 1291},
		{name: "wa1440 2023 h50", round: "wa1440", handicap: 50, mutate: func(in *Input) { in.Use2023 = true }, want: 887},
		{name: "wa1440 partial 72 arrows", round: "wa1440", handicap: 20, mutate: func(in *Input) { in.Arrows = 72 }, want: 619},
		{name: "york imperial h30", round: "york", handicap: 30, want: 1032},
		{name: "york imperial h60", round: "york", handicap: 60, want: 236},
		{name: "wa18 h10", round: "wa18", handicap: 10, want: 584},
		{name: "wa18 inner ten h10", round: "wa18", handicap: 10, mutate: func(in *Input) { in.InnerTenArcher = true }, want: 561},
		{name: "worcester h0", round: "worcester", handicap: 0, want: 300},
		{name: "worcester h30", round: "worcester", handicap: 30, want: 279},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := catalogInput(t, tt.round, 0)
			if tt.mutate != nil {
				tt.mutate(&in)
			}
			got, err := e.ScoreForRound(in, tt.handicap)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScoreForRound_InnerTenIgnoredOutdoors(t *testing.T) {
	e := New(nil)
	in := catalogInput(t, "wa1440", 0)

	plain, err := e.ScoreForRound(in, 35)
	require.NoError(t, err)

	in.InnerTenArcher = true
	inner, err := e.ScoreForRound(in, 35)
	require.NoError(t, err)
	assert.Equal(t, plain, inner)
}

func TestScoreForRound_Monotonic(t *testing.T) {
	e := New(nil)
	for _, name := range []string{"wa1440", "york", "wa18", "worcester", "portsmouth"} {
		for _, use2023 := range []bool{false, true} {
			in := catalogInput(t, name, 0)
			in.Use2023 = use2023

			prev := math.MaxInt
			for h := 0; h <= int(MaxHandicap(use2023)); h++ {
				got, err := e.ScoreForRound(in, float64(h))
				require.NoError(t, err)
				assert.LessOrEqual(t, got, prev, "%s 2023=%v h=%d", name, use2023, h)
				prev = got
			}
		}
	}
}

func TestHandicapForRound(t *testing.T) {
	e := New(nil)

	tests := []struct {
		name    string
		round   string
		score   int
		rounded int
	}{
		{name: "integer handicap score", round: "wa1440", score: 1278, rounded: 20},
		{name: "one point better", round: "wa1440", score: 1279, rounded: 20},
		{name: "mid table", round: "wa1440", score: 1000, rounded: 40},
		{name: "indoor", round: "wa18", score: 550, rounded: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := catalogInput(t, tt.round, 0)
			got, err := e.HandicapForRound(in, tt.score)
			require.NoError(t, err)
			assert.Equal(t, tt.rounded, RoundHandicap(got))

			// got sits just on the good side of the step down to score
			better, err := e.ScoreForRound(in, got)
			require.NoError(t, err)
			assert.Greater(t, better, tt.score)
			worse, err := e.ScoreForRound(in, got+accuracy)
			require.NoError(t, err)
			assert.LessOrEqual(t, worse, tt.score)
		})
	}

	t.Run("off the chart", func(t *testing.T) {
		in := catalogInput(t, "wa1440", 0)
		got, err := e.HandicapForRound(in, 1420)
		require.NoError(t, err)
		assert.Equal(t, 0.0, got)

		got, err = e.HandicapForRound(in, 0)
		require.NoError(t, err)
		assert.Equal(t, MaxLegacyHandicap, got)
	})
}

func TestHandicapForRound_RoundTrip(t *testing.T) {
	e := New(nil)
	faker := gofakeit.New(20230401)

	for _, name := range []string{"wa1440", "york", "wa18", "national"} {
		for _, use2023 := range []bool{false, true} {
			in := catalogInput(t, name, 0)
			in.Use2023 = use2023
			top := MaxHandicap(use2023)

			check := func(h float64) {
				score, err := e.ScoreForRound(in, h)
				require.NoError(t, err)
				got, err := e.HandicapForRound(in, score)
				require.NoError(t, err)
				assert.LessOrEqual(t, got, h, "%s 2023=%v h=%f", name, use2023, h)
				assert.LessOrEqual(t, RoundHandicap(got), RoundHandicap(h), "%s 2023=%v h=%f", name, use2023, h)
			}

			for h := 0; h <= int(top); h += 7 {
				check(float64(h))
			}
			// fractional handicaps just past a step are the tight case
			for h := 0.407; h < 3; h += 0.037 {
				check(h)
			}
			for i := 0; i < 25; i++ {
				check(faker.Float64Range(0, top))
			}
		}
	}
}

func TestInvalidInput(t *testing.T) {
	e := New(nil)
	base := catalogInput(t, "wa1440", 0)

	tests := []struct {
		name   string
		mutate func(*Input)
		score  int
	}{
		{name: "no distances", mutate: func(in *Input) { in.Distances = nil }},
		{name: "no arrow counts", mutate: func(in *Input) { in.ArrowCounts = nil }},
		{name: "mismatched lengths", mutate: func(in *Input) { in.Distances = in.Distances[:2] }},
		{name: "too many arrows", mutate: func(in *Input) { in.Arrows = 145 }},
		{name: "negative arrows", mutate: func(in *Input) { in.Arrows = -1 }},
		{name: "wrong face count", mutate: func(in *Input) { in.Faces = []core.Face{core.FaceFull, core.FaceFull} }},
		{name: "mixed sub types", mutate: func(in *Input) {
			def, _ := round.Lookup("wa1440")
			in.Distances = append([]round.Distance(nil), in.Distances...)
			in.Distances[1] = def.Distances[len(def.Distances)-1]
		}},
		{name: "score above max", score: 1441},
		{name: "negative score", score: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			if tt.mutate != nil {
				tt.mutate(&in)
			}
			_, err := e.HandicapForRound(in, tt.score)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestAllowanceAndTable(t *testing.T) {
	e := New(nil)
	in := catalogInput(t, "wa1440", 0)

	allowance, err := e.AllowanceForRound(in, 20)
	require.NoError(t, err)
	assert.Equal(t, 1440-1278, allowance)
	assert.Equal(t, allowance, Allowance(1278))

	rows, err := e.Table(in, 18, 22)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, 18, rows[0].Handicap)
	assert.Equal(t, TableRow{Handicap: 20, Score: 1278}, rows[2])

	_, err = e.Table(in, 5, 4)
	assert.ErrorIs(t, err, ErrInvalidInput)

	top, err := e.MaxScore(in)
	require.NoError(t, err)
	assert.Equal(t, 1440, top)
}

func TestRoundHandicap(t *testing.T) {
	assert.Equal(t, 20, RoundHandicap(20))
	assert.Equal(t, 20, RoundHandicap(19.01))
	assert.Equal(t, 0, RoundHandicap(0))
}
