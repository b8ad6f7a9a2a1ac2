package headtohead

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var individual = Config{TeamSize: 1, IsSetPoints: true, IsStandardFormat: true}

func total(set int, t RowType, score int) Detail {
	return Detail{SetNumber: set, Type: t, ArrowNumber: 1, IsTotal: true, Score: score}
}

func arrows(set int, t RowType, scores ...int) []Detail {
	out := make([]Detail, len(scores))
	for i, s := range scores {
		out[i] = Detail{SetNumber: set, Type: t, ArrowNumber: i + 1, Score: s}
	}
	return out
}

// setScores builds one set per pair of (self, opponent) totals
func setScores(pairs ...[2]int) []Detail {
	return sideScores(Self, pairs...)
}

func teamScores(pairs ...[2]int) []Detail {
	return sideScores(Team, pairs...)
}

func sideScores(side RowType, pairs ...[2]int) []Detail {
	var out []Detail
	for i, p := range pairs {
		out = append(out, total(i+1, side, p[0]), total(i+1, Opponent, p[1]))
	}
	return out
}

func TestSetResult(t *testing.T) {
	tests := []struct {
		name          string
		details       []Detail
		isShootOff    bool
		isShootOffWin bool
		want          Result
	}{
		{name: "higher wins", details: []Detail{total(1, Self, 30), total(1, Opponent, 25)}, want: Win},
		{name: "lower loses", details: []Detail{total(1, Self, 25), total(1, Opponent, 30)}, want: Loss},
		{name: "equal ties", details: []Detail{total(1, Self, 28), total(1, Opponent, 28)}, want: Tie},
		{name: "shoot-off tie won", details: []Detail{total(1, Self, 9), total(1, Opponent, 9)}, isShootOff: true, isShootOffWin: true, want: Win},
		{name: "shoot-off tie lost", details: []Detail{total(1, Self, 9), total(1, Opponent, 9)}, isShootOff: true, want: Loss},
		{name: "opponent missing", details: []Detail{total(1, Self, 30)}, want: Incomplete},
		{name: "arrows unfinished", details: append(arrows(1, Self, 10, 9), total(1, Opponent, 20)), want: Incomplete},
		{name: "arrows finished", details: append(arrows(1, Self, 10, 9, 8), total(1, Opponent, 20)), want: Win},
		{name: "result row win", details: []Detail{total(1, ResultRow, 2)}, want: Win},
		{name: "result row tie", details: []Detail{total(1, ResultRow, 1)}, want: Tie},
		{name: "result row loss overrides scores", details: []Detail{total(1, Self, 30), total(1, Opponent, 10), total(1, ResultRow, 0)}, want: Loss},
		{name: "result row out of range", details: []Detail{total(1, ResultRow, 7)}, want: Unknown},
		{name: "result row tie in shoot-off", details: []Detail{total(1, ResultRow, 1)}, isShootOff: true, want: Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := NewSet(individual, 1, tt.details, tt.isShootOff, tt.isShootOffWin)
			require.NoError(t, err)
			assert.Equal(t, tt.want, set.Result())
		})
	}
}

func TestTeamSetScore(t *testing.T) {
	team := Config{TeamSize: 3, IsSetPoints: true, IsStandardFormat: true}

	t.Run("self and team mates", func(t *testing.T) {
		details := append(arrows(1, Self, 10, 9), arrows(1, TeamMate, 8, 8, 7, 7)...)
		details = append(details, total(1, Opponent, 50))
		set, err := NewSet(team, 1, details, false, false)
		require.NoError(t, err)

		score, ok := set.TeamSetScore()
		require.True(t, ok)
		assert.Equal(t, 49, score)
		assert.Equal(t, Loss, set.Result())
		assert.Equal(t, 2, set.ArrowsShot())
	})

	t.Run("team total preferred", func(t *testing.T) {
		details := append(arrows(1, Self, 10), total(1, Team, 55), total(1, Opponent, 50))
		set, err := NewSet(team, 1, details, false, false)
		require.NoError(t, err)

		score, ok := set.TeamSetScore()
		require.True(t, ok)
		assert.Equal(t, 55, score)
		assert.Equal(t, Win, set.Result())
	})

	t.Run("team mates incomplete", func(t *testing.T) {
		details := append(arrows(1, Self, 10, 9), arrows(1, TeamMate, 8, 8)...)
		set, err := NewSet(team, 1, details, false, false)
		require.NoError(t, err)

		_, ok := set.TeamSetScore()
		assert.False(t, ok)
	})

	t.Run("team total stands in for arrows shot", func(t *testing.T) {
		set, err := NewSet(team, 1, []Detail{total(1, Team, 54)}, false, false)
		require.NoError(t, err)
		assert.Equal(t, 54, set.ArrowsShot())
	})
}

func TestNewSetStructureErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		details []Detail
	}{
		{name: "team row for individual", cfg: individual, details: []Detail{total(1, Team, 50)}},
		{name: "team mate row for individual", cfg: individual, details: arrows(1, TeamMate, 9)},
		{name: "total mixed with arrows", cfg: individual, details: append(arrows(1, Self, 9), total(1, Self, 9))},
		{name: "result row as arrows", cfg: individual, details: arrows(1, ResultRow, 2)},
		{name: "too many arrows", cfg: individual, details: arrows(1, Self, 9, 9, 9, 9)},
		{name: "gap in arrow numbers", cfg: individual, details: []Detail{{SetNumber: 1, Type: Self, ArrowNumber: 2, Score: 9}}},
		{name: "wrong set number", cfg: individual, details: []Detail{total(2, Self, 9)}},
		{name: "arrow out of range", cfg: individual, details: arrows(1, Self, 11)},
		{name: "zero team size", cfg: Config{}, details: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSet(tt.cfg, 1, tt.details, false, false)
			assert.ErrorIs(t, err, ErrStructure)
		})
	}
}

func pts(team, opp int) *Totals { return &Totals{Team: team, Opponent: opp} }

func TestRunningTotals(t *testing.T) {
	tests := []struct {
		name          string
		cfg           Config
		details       []Detail
		isShootOffWin bool
		want          []*Totals
	}{
		{
			name:    "set points",
			cfg:     individual,
			details: setScores([2]int{28, 27}, [2]int{27, 27}, [2]int{25, 29}),
			want:    []*Totals{pts(2, 0), pts(3, 1), pts(3, 3)},
		},
		{
			name:    "nil from first incomplete set",
			cfg:     individual,
			details: append(setScores([2]int{28, 27}, [2]int{27, 27}), total(3, Self, 29), total(4, Self, 30), total(4, Opponent, 20)),
			want:    []*Totals{pts(2, 0), pts(3, 1), nil, nil},
		},
		{
			name:    "unknown result stops totals",
			cfg:     individual,
			details: append(setScores([2]int{28, 27}), total(2, ResultRow, 5), total(3, Self, 30), total(3, Opponent, 20)),
			want:    []*Totals{pts(2, 0), nil, nil},
		},
		{
			name: "set points shoot-off",
			cfg:  individual,
			details: setScores([2]int{28, 27}, [2]int{27, 28}, [2]int{28, 27}, [2]int{27, 28},
				[2]int{27, 27}, [2]int{9, 9}),
			isShootOffWin: true,
			want:          []*Totals{pts(2, 0), pts(2, 2), pts(4, 2), pts(4, 4), pts(5, 5), pts(6, 5)},
		},
		{
			name:    "cumulative scores",
			cfg:     Config{TeamSize: 1, IsStandardFormat: true},
			details: setScores([2]int{29, 28}, [2]int{30, 27}),
			want:    []*Totals{pts(29, 28), pts(59, 55)},
		},
		{
			name: "cumulative scores shoot-off adds one",
			cfg:  Config{TeamSize: 1, IsStandardFormat: true},
			details: setScores([2]int{29, 28}, [2]int{28, 29}, [2]int{30, 30}, [2]int{29, 29},
				[2]int{30, 30}, [2]int{10, 9}),
			want: []*Totals{pts(29, 28), pts(57, 57), pts(87, 87), pts(116, 116), pts(146, 146), pts(147, 146)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMatch(tt.cfg, 1, tt.details, tt.isShootOffWin)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, m.RunningTotals()); diff != "" {
				t.Errorf("running totals mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatchCompletion(t *testing.T) {
	cumulative := Config{TeamSize: 1, IsStandardFormat: true}
	teamCumulative := Config{TeamSize: 2, IsStandardFormat: true}

	tests := []struct {
		name       string
		cfg        Config
		details    []Detail
		isSOWin    bool
		complete   bool
		result     Result
		arrowsShot int
	}{
		{
			name:     "set points not reached",
			cfg:      individual,
			details:  setScores([2]int{28, 27}, [2]int{28, 27}),
			complete: false, result: Incomplete,
		},
		{
			name:     "set points reached",
			cfg:      individual,
			details:  setScores([2]int{28, 27}, [2]int{28, 27}, [2]int{28, 27}),
			complete: true, result: Win, arrowsShot: 9,
		},
		{
			name:     "opponent reaches set points",
			cfg:      individual,
			details:  setScores([2]int{25, 27}, [2]int{25, 27}, [2]int{25, 27}),
			complete: true, result: Loss,
		},
		{
			name:     "team win score is five",
			cfg:      Config{TeamSize: 2, IsSetPoints: true, IsStandardFormat: true},
			details:  teamScores([2]int{28, 27}, [2]int{28, 27}, [2]int{27, 27}),
			complete: true, result: Win,
		},
		{
			name:     "cumulative before the last end",
			cfg:      cumulative,
			details:  setScores([2]int{29, 28}, [2]int{30, 27}, [2]int{30, 27}, [2]int{30, 27}),
			complete: false, result: Incomplete,
		},
		{
			name:     "cumulative decided after last end",
			cfg:      cumulative,
			details:  setScores([2]int{29, 28}, [2]int{30, 27}, [2]int{30, 27}, [2]int{30, 27}, [2]int{28, 29}),
			complete: true, result: Win,
		},
		{
			name:     "cumulative level after last end",
			cfg:      cumulative,
			details:  setScores([2]int{29, 28}, [2]int{28, 29}, [2]int{30, 30}, [2]int{29, 29}, [2]int{30, 30}),
			complete: false, result: Incomplete,
		},
		{
			name: "cumulative shoot-off shot",
			cfg:  cumulative,
			details: setScores([2]int{29, 28}, [2]int{28, 29}, [2]int{30, 30}, [2]int{29, 29},
				[2]int{30, 30}, [2]int{9, 10}),
			complete: true, result: Loss,
		},
		{
			name: "cumulative shoot-off decided by result row",
			cfg:  cumulative,
			details: append(setScores([2]int{29, 29}, [2]int{29, 29}, [2]int{29, 29}, [2]int{29, 29}, [2]int{29, 29}),
				total(6, ResultRow, ResultCode(Win))),
			complete: true, result: Win,
		},
		{
			name:     "team cumulative decided after four ends",
			cfg:      teamCumulative,
			details:  teamScores([2]int{38, 37}, [2]int{38, 37}, [2]int{38, 37}, [2]int{38, 37}),
			complete: true, result: Win,
		},
		{
			name:     "non-standard format never completes",
			cfg:      Config{TeamSize: 1},
			details:  setScores([2]int{29, 28}, [2]int{30, 27}, [2]int{30, 27}, [2]int{30, 27}, [2]int{28, 29}, [2]int{28, 29}),
			complete: false, result: Incomplete,
		},
		{
			name:     "empty match",
			cfg:      individual,
			complete: false, result: Incomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMatch(tt.cfg, 1, tt.details, tt.isSOWin)
			require.NoError(t, err)
			assert.Equal(t, tt.complete, m.IsComplete())
			assert.Equal(t, tt.result, m.Result())
			if tt.arrowsShot > 0 {
				assert.Equal(t, tt.arrowsShot, m.ArrowsShot())
			}
		})
	}
}

func TestNewMatchStructureErrors(t *testing.T) {
	t.Run("missing set", func(t *testing.T) {
		_, err := NewMatch(individual, 1, []Detail{total(1, Self, 9), total(3, Self, 9)}, false)
		assert.ErrorIs(t, err, ErrStructure)
	})
	t.Run("set after shoot-off", func(t *testing.T) {
		details := setScores([2]int{1, 1}, [2]int{1, 1}, [2]int{1, 1}, [2]int{1, 1}, [2]int{1, 1}, [2]int{1, 1}, [2]int{1, 1})
		_, err := NewMatch(individual, 1, details, false)
		assert.ErrorIs(t, err, ErrStructure)
	})
	t.Run("row from another match", func(t *testing.T) {
		d := total(1, Self, 9)
		d.Match = 2
		_, err := NewMatch(individual, 1, []Detail{d}, false)
		assert.ErrorIs(t, err, ErrStructure)
	})
}

func TestConfigDefaults(t *testing.T) {
	assert.Equal(t, 3, individual.ArrowsPerArcher(false))
	assert.Equal(t, 1, individual.ArrowsPerArcher(true))
	assert.Equal(t, 2, Config{TeamSize: 3}.ArrowsPerArcher(false))
	assert.Equal(t, 6, Config{TeamSize: 1, EndSize: 6}.ArrowsPerArcher(false))
	assert.Equal(t, 4, Config{TeamSize: 3}.expectedArrows(TeamMate, false))
	assert.Equal(t, 6, Config{TeamSize: 3}.expectedArrows(Opponent, false))
}

func TestResultCodes(t *testing.T) {
	for _, r := range []Result{Loss, Tie, Win} {
		assert.Equal(t, r, resultFromCode(ResultCode(r)))
	}
	assert.Equal(t, -1, ResultCode(Unknown))
	assert.Equal(t, Unknown, resultFromCode(-1))
}
