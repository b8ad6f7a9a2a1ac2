package scorepad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archery/internal/core"
	"archery/internal/round"
)

func mustEnd(t *testing.T, s string) []core.Arrow {
	t.Helper()
	arrows, err := core.ParseEnd(s)
	require.NoError(t, err)
	return arrows
}

func TestNewWithoutLegs(t *testing.T) {
	arrows := mustEnd(t, "X 10 9 8 7 M 9")
	d, err := New(arrows, 3, core.GoldsTens, nil, true)
	require.NoError(t, err)

	ends := d.EndRows()
	require.Len(t, ends, 3)
	assert.Equal(t, "X 10 9", ends[0].ArrowText())
	assert.Equal(t, 29, ends[0].Score)
	assert.Equal(t, 2, ends[0].Golds)
	assert.Equal(t, 44, ends[1].RunningTotal)
	assert.Equal(t, 2, ends[1].Hits)
	assert.Equal(t, 9, ends[2].Score)
	assert.Equal(t, 3, ends[2].Number)

	assert.Equal(t, 53, d.Score)
	assert.Equal(t, 6, d.Hits)
	assert.Equal(t, 1, d.Xs)
	assert.Equal(t, 2, d.GoldsCount())

	grand := d.Rows[len(d.Rows)-1]
	assert.Equal(t, GrandTotalRow, grand.Kind)
	assert.Equal(t, 53, grand.Score)
	assert.Len(t, d.Rows, 4)
}

func TestNewSplitsByDistance(t *testing.T) {
	legs := []round.Leg{
		{DistanceNumber: 1, Distance: 60, ArrowCount: 4},
		{DistanceNumber: 2, Distance: 50, ArrowCount: 2},
	}
	d, err := New(mustEnd(t, "9 9 7 7 5 5"), 3, core.GoldsNines, legs, false)
	require.NoError(t, err)

	kinds := make([]RowKind, len(d.Rows))
	for i, r := range d.Rows {
		kinds[i] = r.Kind
	}
	assert.Equal(t, []RowKind{EndRow, EndRow, DistanceTotalRow, EndRow, DistanceTotalRow, GrandTotalRow}, kinds)

	assert.Equal(t, "60yd", d.Rows[2].Label)
	assert.Equal(t, 32, d.Rows[2].Score)
	assert.Equal(t, 2, d.Rows[2].Golds)
	assert.Equal(t, "7", d.Rows[1].ArrowText())
	assert.Equal(t, 10, d.Rows[4].Score)
	assert.Equal(t, 42, d.Rows[4].RunningTotal)
}

func TestNewPartialRound(t *testing.T) {
	legs := []round.Leg{{Distance: 18, ArrowCount: 6}, {Distance: 18, ArrowCount: 6}}
	d, err := New(mustEnd(t, "10 10 10"), 3, core.GoldsTens, legs, true)
	require.NoError(t, err)
	assert.Len(t, d.Rows, 3)
	assert.Equal(t, "18m", d.Rows[1].Label)
}

func TestNewErrors(t *testing.T) {
	_, err := New(nil, 0, core.GoldsTens, nil, true)
	assert.ErrorIs(t, err, ErrEndSize)

	legs := []round.Leg{{Distance: 18, ArrowCount: 2}}
	_, err = New(mustEnd(t, "10 10 10"), 3, core.GoldsTens, legs, true)
	assert.Error(t, err)
}

func TestEndStats(t *testing.T) {
	d, err := New(mustEnd(t, "10 10 10 8 8 8"), 3, core.GoldsTens, nil, true)
	require.NoError(t, err)

	mean, sd := d.EndStats()
	assert.InDelta(t, 27.0, mean, 1e-9)
	assert.InDelta(t, 3.0, sd, 1e-9)
	assert.InDelta(t, 9.0, d.ArrowAverage(), 1e-9)

	empty, err := New(nil, 6, core.GoldsTens, nil, true)
	require.NoError(t, err)
	mean, sd = empty.EndStats()
	assert.Zero(t, mean)
	assert.Zero(t, sd)
	assert.Zero(t, empty.ArrowAverage())
}
