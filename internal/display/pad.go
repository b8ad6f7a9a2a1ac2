package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"archery/internal/core"
	"archery/internal/headtohead"
	"archery/internal/scorepad"
)

// ArrowColor is the ring color of an arrow's zone
func ArrowColor(a core.Arrow) string {
	switch {
	case a.Score >= 9:
		return Yellow
	case a.Score >= 7:
		return Red
	case a.Score >= 5:
		return Blue
	case a.Score >= 1:
		return White
	default:
		return Magenta
	}
}

func arrowText(arrows []core.Arrow) string {
	parts := make([]string, len(arrows))
	for i, a := range arrows {
		parts[i] = Paint(ArrowColor(a), fmt.Sprintf("%2s", a.Text()))
	}
	return strings.Join(parts, " ")
}

// RenderPad prints a score pad the way a paper sheet reads
func RenderPad(w io.Writer, pad *scorepad.Data) {
	rows := make([][]string, 0, len(pad.Rows))
	for _, r := range pad.Rows {
		label := r.Label
		arrows := ""
		if r.Kind == scorepad.EndRow {
			label = strconv.Itoa(r.Number)
			arrows = arrowText(r.Arrows)
		} else {
			label = Paint(Cyan, label)
		}
		rows = append(rows, []string{
			label,
			arrows,
			strconv.Itoa(r.Hits),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Golds),
			strconv.Itoa(r.RunningTotal),
		})
	}
	Table(w, []string{"End", "Arrows", "H", "S", pad.Golds.String(), "R/T"}, rows)

	mean, sd := pad.EndStats()
	fmt.Fprintf(w, "\nXs %d  %s %d  arrow avg %.2f  end avg %.2f  end sd %.2f\n",
		pad.Xs, pad.Golds, pad.GoldsCount(), pad.ArrowAverage(), mean, sd)
}

// RenderMatch prints every set of a match with its result and running total
func RenderMatch(w io.Writer, m *headtohead.Match, totals []*headtohead.Totals) {
	rows := make([][]string, 0, len(m.Sets))
	for i, s := range m.Sets {
		team, opp := "-", "-"
		if v, ok := s.TeamSetScore(); ok {
			team = strconv.Itoa(v)
		}
		if v, ok := s.OpponentSetScore(); ok {
			opp = strconv.Itoa(v)
		}

		running := "-"
		if i < len(totals) && totals[i] != nil {
			running = fmt.Sprintf("%d-%d", totals[i].Team, totals[i].Opponent)
		}

		name := strconv.Itoa(s.Number)
		if s.IsShootOff {
			name = "S/O"
		}
		rows = append(rows, []string{name, team, opp, ResultText(s.Result()), running})
	}
	Table(w, []string{"Set", "Us", "Them", "Result", "Total"}, rows)
}

// ResultText colors a result for display
func ResultText(r headtohead.Result) string {
	switch r {
	case headtohead.Win:
		return Paint(Green, r.String())
	case headtohead.Loss:
		return Paint(Red, r.String())
	case headtohead.Tie:
		return Paint(Yellow, r.String())
	default:
		return r.String()
	}
}
