// Package scorepad lays arrows out the way a paper score sheet does: ends
// with running totals, a subtotal per distance and a grand total.
package scorepad

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"archery/internal/core"
	"archery/internal/round"
)

var ErrEndSize = errors.New("end size must be positive")

type RowKind int

const (
	EndRow RowKind = iota
	DistanceTotalRow
	GrandTotalRow
)

type Row struct {
	Kind         RowKind      `json:"kind"`
	Number       int          `json:"number,omitempty"` // end number, counted across the whole round
	Label        string       `json:"label,omitempty"`
	Arrows       []core.Arrow `json:"arrows,omitempty"`
	Hits         int          `json:"hits"`
	Score        int          `json:"score"`
	Golds        int          `json:"golds"`
	RunningTotal int          `json:"runningTotal"`
}

// ArrowText is the end as written on a sheet, e.g. "X 10 9"
func (r Row) ArrowText() string {
	parts := make([]string, len(r.Arrows))
	for i, a := range r.Arrows {
		parts[i] = a.Text()
	}
	return strings.Join(parts, " ")
}

type Data struct {
	Rows    []Row          `json:"rows"`
	EndSize int            `json:"endSize"`
	Golds   core.GoldsType `json:"golds"`
	Hits    int            `json:"hits"`
	Score   int            `json:"score"`
	Xs      int            `json:"xs"`
	Arrows  int            `json:"arrows"`

	golds int
}

// New builds a score pad. When legs are given, ends never straddle a change
// of distance and a subtotal row follows each distance.
func New(arrows []core.Arrow, endSize int, golds core.GoldsType, legs []round.Leg, isMetric bool) (*Data, error) {
	if endSize <= 0 {
		return nil, ErrEndSize
	}

	d := &Data{EndSize: endSize, Golds: golds, Arrows: len(arrows)}

	chunks := []chunk{{arrows: arrows}}
	if len(legs) > 0 {
		chunks = splitByLeg(arrows, legs, isMetric)
		if extra := chunks[len(chunks)-1].overflow; extra > 0 {
			return nil, fmt.Errorf("%d arrows beyond the end of the round", extra)
		}
	}

	end := 0
	for _, c := range chunks {
		var sub Row
		for start := 0; start < len(c.arrows); start += endSize {
			stop := min(start+endSize, len(c.arrows))
			end++
			row := d.endRow(end, c.arrows[start:stop])
			sub = accumulate(sub, row)
			d.Rows = append(d.Rows, row)
		}
		if len(legs) > 0 && len(c.arrows) > 0 {
			sub.Kind = DistanceTotalRow
			sub.Label = c.label
			sub.RunningTotal = d.Score
			d.Rows = append(d.Rows, sub)
		}
	}

	d.Rows = append(d.Rows, Row{
		Kind:         GrandTotalRow,
		Label:        "Total",
		Hits:         d.Hits,
		Score:        d.Score,
		Golds:        d.golds,
		RunningTotal: d.Score,
	})
	return d, nil
}

type chunk struct {
	label    string
	arrows   []core.Arrow
	overflow int
}

func splitByLeg(arrows []core.Arrow, legs []round.Leg, isMetric bool) []chunk {
	unit := "yd"
	if isMetric {
		unit = "m"
	}

	out := make([]chunk, 0, len(legs))
	rest := arrows
	for _, l := range legs {
		n := min(l.ArrowCount, len(rest))
		out = append(out, chunk{label: fmt.Sprintf("%d%s", l.Distance, unit), arrows: rest[:n]})
		rest = rest[n:]
	}
	out[len(out)-1].overflow = len(rest)
	return out
}

func (d *Data) endRow(number int, arrows []core.Arrow) Row {
	row := Row{Kind: EndRow, Number: number, Arrows: append([]core.Arrow(nil), arrows...)}
	for _, a := range arrows {
		row.Score += a.Score
		if a.IsHit() {
			row.Hits++
		}
		if a.IsGold(d.Golds) {
			row.Golds++
		}
		if a.IsX {
			d.Xs++
		}
	}

	d.Score += row.Score
	d.Hits += row.Hits
	d.golds += row.Golds
	row.RunningTotal = d.Score
	return row
}

func accumulate(sub, row Row) Row {
	sub.Hits += row.Hits
	sub.Score += row.Score
	sub.Golds += row.Golds
	return sub
}

// GoldsCount is the number of arrows in the golds column
func (d *Data) GoldsCount() int { return d.golds }

// EndStats returns the mean and population standard deviation of end scores
func (d *Data) EndStats() (mean, stdDev float64) {
	ends := d.EndRows()
	if len(ends) == 0 {
		return 0, 0
	}
	for _, r := range ends {
		mean += float64(r.Score)
	}
	mean /= float64(len(ends))

	for _, r := range ends {
		stdDev += math.Pow(float64(r.Score)-mean, 2)
	}
	return mean, math.Sqrt(stdDev / float64(len(ends)))
}

// ArrowAverage is the mean score per arrow shot
func (d *Data) ArrowAverage() float64 {
	if d.Arrows == 0 {
		return 0
	}
	return float64(d.Score) / float64(d.Arrows)
}

// EndRows skips the subtotal rows
func (d *Data) EndRows() []Row {
	var out []Row
	for _, r := range d.Rows {
		if r.Kind == EndRow {
			out = append(out, r)
		}
	}
	return out
}
