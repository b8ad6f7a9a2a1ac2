// Package report exports handicap tables and score pads as spreadsheets and
// renders handicap curves as PNG charts.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"github.com/xuri/excelize/v2"

	"archery/internal/handicap"
	"archery/internal/scorepad"
)

const (
	HandicapSheet = "Handicaps"
	ScorePadSheet = "Score pad"
)

var ErrNoRows = errors.New("nothing to report")

// WriteHandicapTable writes one row per handicap under a title and header row
func WriteHandicapTable(w io.Writer, roundName string, rows []handicap.TableRow) error {
	if len(rows) == 0 {
		return ErrNoRows
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), HandicapSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	if err := f.SetCellValue(HandicapSheet, "A1", roundName); err != nil {
		return err
	}
	if err := f.SetSheetRow(HandicapSheet, "A2", &[]any{"Handicap", "Score"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(HandicapSheet, "A1", "B2", bold); err != nil {
		return err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(HandicapSheet, cell, &[]any{r.Handicap, r.Score}); err != nil {
			return fmt.Errorf("failed to write handicap %d: %w", r.Handicap, err)
		}
	}
	if err := f.SetColWidth(HandicapSheet, "A", "B", 12); err != nil {
		return err
	}

	return f.Write(w)
}

// WriteScorePad writes the pad as a score sheet: one line per end, subtotals
// per distance and a summary block under the grand total
func WriteScorePad(w io.Writer, title string, pad *scorepad.Data) error {
	if pad == nil {
		return ErrNoRows
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ScorePadSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	header := []any{"End"}
	for i := 1; i <= pad.EndSize; i++ {
		header = append(header, i)
	}
	header = append(header, "Hits", "Score", pad.Golds.String(), "R/T")
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}

	if err := f.SetCellValue(ScorePadSheet, "A1", title); err != nil {
		return err
	}
	if err := f.SetSheetRow(ScorePadSheet, "A2", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(ScorePadSheet, "A1", lastCol+"2", bold); err != nil {
		return err
	}

	line := 3
	for _, r := range pad.Rows {
		cells := make([]any, len(header))
		switch r.Kind {
		case scorepad.EndRow:
			cells[0] = r.Number
			for i, a := range r.Arrows {
				cells[i+1] = a.Text()
			}
		default:
			cells[0] = r.Label
		}
		n := pad.EndSize + 1
		cells[n], cells[n+1], cells[n+2], cells[n+3] = r.Hits, r.Score, r.Golds, r.RunningTotal

		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ScorePadSheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", line, err)
		}
		if r.Kind != scorepad.EndRow {
			if err := f.SetCellStyle(ScorePadSheet, cell, fmt.Sprintf("%s%d", lastCol, line), bold); err != nil {
				return err
			}
		}
		line++
	}

	mean, sd := pad.EndStats()
	summary := [][]any{
		{"Xs", pad.Xs},
		{pad.Golds.String(), pad.GoldsCount()},
		{"Arrow average", round2(pad.ArrowAverage())},
		{"End average", round2(mean)},
		{"End std dev", round2(sd)},
	}
	line++
	for _, s := range summary {
		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ScorePadSheet, cell, &s); err != nil {
			return err
		}
		line++
	}

	return f.Write(w)
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

// RenderHandicapCurve draws predicted score against handicap
func RenderHandicapCurve(w io.Writer, title string, rows []handicap.TableRow) error {
	// go-chart cannot draw a range of zero width
	if len(rows) < 2 {
		return fmt.Errorf("%w: a curve needs at least two handicaps", ErrNoRows)
	}

	xs := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	for i, r := range rows {
		xs[i] = float64(r.Handicap)
		ys[i] = float64(r.Score)
	}

	graph := chart.Chart{
		Title:  title,
		Width:  800,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name:           "Handicap",
			ValueFormatter: chart.IntValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Score",
			ValueFormatter: chart.IntValueFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    title,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("2e7d32"),
					StrokeWidth: 2,
				},
			},
		},
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
