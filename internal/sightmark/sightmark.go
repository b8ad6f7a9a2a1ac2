// Package sightmark keeps the bow sight settings an archer has recorded for
// each distance and estimates settings for distances not yet marked.
package sightmark

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"archery/internal/round"
)

var ErrNotEnoughMarks = errors.New("at least two sight marks at different distances are needed")

type SightMark struct {
	ID         string    `json:"id"`
	Distance   int       `json:"distance"`
	IsMetric   bool      `json:"isMetric"`
	Value      float64   `json:"value"`
	Note       string    `json:"note,omitempty"`
	DateSet    time.Time `json:"dateSet"`
	IsMarked   bool      `json:"isMarked"`
	IsArchived bool      `json:"isArchived"`
}

// Metres is the distance converted from yards where needed
func (m SightMark) Metres() float64 {
	return round.RangeInMetres(m.Distance, m.IsMetric)
}

func (m SightMark) Label() string {
	if m.IsMetric {
		return fmt.Sprintf("%dm", m.Distance)
	}
	return fmt.Sprintf("%dyd", m.Distance)
}

// Sort orders marks by range, newest first where the range is equal
func Sort(marks []SightMark) {
	sort.SliceStable(marks, func(i, j int) bool {
		mi, mj := marks[i].Metres(), marks[j].Metres()
		if mi != mj {
			return mi < mj
		}
		return marks[i].DateSet.After(marks[j].DateSet)
	})
}

// Current drops archived marks and keeps only the newest mark per distance
func Current(marks []SightMark) []SightMark {
	sorted := append([]SightMark(nil), marks...)
	Sort(sorted)

	var out []SightMark
	for _, m := range sorted {
		if m.IsArchived {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Metres() == m.Metres() {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Estimate interpolates linearly between the current marks either side of
// the distance, or extrapolates from the two nearest when it lies outside them.
func Estimate(marks []SightMark, distance int, isMetric bool) (float64, error) {
	current := Current(marks)
	if len(current) < 2 {
		return 0, ErrNotEnoughMarks
	}

	target := round.RangeInMetres(distance, isMetric)
	for _, m := range current {
		if m.Metres() == target {
			return m.Value, nil
		}
	}

	// Index of the first mark beyond the target, clamped so a pair exists
	i := sort.Search(len(current), func(i int) bool { return current[i].Metres() > target })
	i = max(1, min(i, len(current)-1))

	a, b := current[i-1], current[i]
	slope := (b.Value - a.Value) / (b.Metres() - a.Metres())
	return a.Value + slope*(target-a.Metres()), nil
}
