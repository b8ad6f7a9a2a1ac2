package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archery/internal/core"
	"archery/internal/headtohead"
	"archery/internal/round"
	"archery/internal/sightmark"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "archery.db"), false, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.InitDB())
	_, err = s.SeedRounds(round.Catalog())
	require.NoError(t, err)
	return s
}

func newShoot(t *testing.T, s *Store, roundName string) string {
	t.Helper()
	def, err := s.GetRound(roundName)
	require.NoError(t, err)

	id := uuid.NewString()
	require.NoError(t, s.CreateShoot(ShootRecord{
		ShootID:   id,
		RoundID:   def.Round.ID,
		SubTypeID: 1,
		Face:      core.FaceFull.String(),
		ShotAtUTC: time.Now().UTC(),
	}))
	return id
}

func TestRounds(t *testing.T) {
	s := newTestStore(t)

	added, err := s.SeedRounds(round.Catalog())
	require.NoError(t, err)
	assert.Zero(t, added, "seeding twice adds nothing")

	rounds, err := s.ListRounds()
	require.NoError(t, err)
	assert.Len(t, rounds, len(round.Catalog()))

	got, err := s.GetRound("wa1440")
	require.NoError(t, err)
	want, _ := round.Lookup("wa1440")
	assert.Equal(t, want.Round, got.Round)
	assert.ElementsMatch(t, want.SubTypes, got.SubTypes)
	assert.ElementsMatch(t, want.Distances, got.Distances)
	assert.ElementsMatch(t, want.ArrowCounts, got.ArrowCounts)

	byID, err := s.GetRoundByID(got.Round.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Round, byID.Round)

	_, err = s.GetRound("no-such-round")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestShootArrows(t *testing.T) {
	s := newTestStore(t)
	id := newShoot(t, s, "wa18")

	n, err := s.AppendArrows(id, []core.Arrow{{Score: 10, IsX: true}, {Score: 9}, {Score: 0}})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = s.AppendArrows(id, []core.Arrow{{Score: 8}})
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	arrows, err := s.GetArrows(id)
	require.NoError(t, err)
	assert.Equal(t, []core.Arrow{{Score: 10, IsX: true}, {Score: 9}, {Score: 0}, {Score: 8}}, arrows)

	require.NoError(t, s.ReplaceArrows(id, []core.Arrow{{Score: 9}, {Score: 7}}, true))
	shoot, err := s.GetShoot(id)
	require.NoError(t, err)
	assert.True(t, shoot.IsImperial)
	arrows, err = s.GetArrows(id)
	require.NoError(t, err)
	assert.Len(t, arrows, 2)

	shoots, err := s.ListShoots("wa18")
	require.NoError(t, err)
	assert.Len(t, shoots, 1)
	shoots, err = s.ListShoots("wa1440")
	require.NoError(t, err)
	assert.Empty(t, shoots)

	require.NoError(t, s.DeleteShoot(id))
	_, err = s.GetShoot(id)
	assert.ErrorIs(t, err, ErrNotFound)
	arrows, err = s.GetArrows(id)
	require.NoError(t, err)
	assert.Empty(t, arrows)

	_, err = s.AppendArrows(id, []core.Arrow{{Score: 1}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestArrowScoreConstraint(t *testing.T) {
	s := newTestStore(t)
	id := newShoot(t, s, "wa18")

	_, err := s.AppendArrows(id, []core.Arrow{{Score: 9}, {Score: 11}})
	require.Error(t, err)

	arrows, err := s.GetArrows(id)
	require.NoError(t, err)
	assert.Empty(t, arrows, "failed append rolls back")
}

func TestHeadToHead(t *testing.T) {
	s := newTestStore(t)
	id := newShoot(t, s, "wa720")

	require.NoError(t, s.CreateHeadToHead(HeadToHeadRecord{ShootID: id, TeamSize: 1, IsSetPoints: true, IsStandardFormat: true}))
	h2h, err := s.GetHeadToHead(id)
	require.NoError(t, err)
	assert.True(t, h2h.IsSetPoints)

	first, err := s.AddMatch(MatchRecord{ShootID: id, Opponent: "A"})
	require.NoError(t, err)
	second, err := s.AddMatch(MatchRecord{ShootID: id, Opponent: "B"})
	require.NoError(t, err)
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)

	set := func(n, self, opp int) []headtohead.Detail {
		return []headtohead.Detail{
			{SetNumber: n, Type: headtohead.Self, ArrowNumber: 1, IsTotal: true, Score: self},
			{SetNumber: n, Type: headtohead.Opponent, ArrowNumber: 1, IsTotal: true, Score: opp},
		}
	}
	require.NoError(t, s.ReplaceSetDetails(id, 1, 1, set(1, 28, 27)))
	require.NoError(t, s.ReplaceSetDetails(id, 1, 2, set(2, 26, 29)))
	require.NoError(t, s.ReplaceSetDetails(id, 1, 3, set(3, 30, 20)))
	require.NoError(t, s.ReplaceSetDetails(id, 1, 2, set(2, 29, 26)))

	details, err := s.GetDetails(id)
	require.NoError(t, err)
	require.Len(t, details, 6)
	assert.Equal(t, 29, details[2].Score)
	assert.Equal(t, headtohead.Self, details[2].Type)
	assert.Equal(t, 1, details[2].Match)

	require.NoError(t, s.DeleteSet(id, 1, 2))
	details, err = s.GetDetails(id)
	require.NoError(t, err)
	require.Len(t, details, 4)
	assert.Equal(t, 2, details[2].SetNumber)
	assert.Equal(t, 30, details[2].Score)

	require.NoError(t, s.SetShootOffWin(id, 2, true))
	matches, err := s.ListMatches(id)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.True(t, matches[1].IsShootOffWin)

	require.NoError(t, s.DeleteMatch(id, 1))
	details, err = s.GetDetails(id)
	require.NoError(t, err)
	assert.Empty(t, details)

	assert.ErrorIs(t, s.DeleteMatch(id, 1), ErrNotFound)
	assert.ErrorIs(t, s.DeleteSet(id, 2, 1), ErrNotFound)
}

func TestSightMarks(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	for _, m := range []sightmark.SightMark{
		{ID: "b", Distance: 70, IsMetric: true, Value: 6.5, DateSet: now},
		{ID: "a", Distance: 30, IsMetric: true, Value: 2.5, DateSet: now},
		{ID: "c", Distance: 60, IsMetric: false, Value: 5.0, DateSet: now},
	} {
		require.NoError(t, s.AddSightMark(m))
	}

	marks, err := s.ListSightMarks(false)
	require.NoError(t, err)
	require.Len(t, marks, 3)
	assert.Equal(t, []string{"a", "c", "b"}, []string{marks[0].ID, marks[1].ID, marks[2].ID})
	assert.True(t, now.Equal(marks[0].DateSet))

	require.NoError(t, s.ArchiveSightMark("c"))
	marks, err = s.ListSightMarks(false)
	require.NoError(t, err)
	assert.Len(t, marks, 2)

	marks, err = s.ListSightMarks(true)
	require.NoError(t, err)
	assert.Len(t, marks, 3)

	assert.ErrorIs(t, s.ArchiveSightMark("missing"), ErrNotFound)
}

func TestDeleteDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.db")
	s, err := NewStore(path, true, nil)
	require.NoError(t, err)
	require.NoError(t, s.InitDB())
	assert.True(t, s.IsHealthy())

	require.NoError(t, s.DeleteDB())
	assert.NoFileExists(t, path)
}
