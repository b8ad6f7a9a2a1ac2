package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"archery/internal/core"
	"archery/internal/display"
	"archery/internal/report"
)

func roundFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "round", Aliases: []string{"r"}, Required: true, Usage: "round name, see 'db rounds'"},
		&cli.IntFlag{Name: "sub", Usage: "sub type id, 0 picks the first"},
		&cli.BoolFlag{Name: "2023", Usage: "use the 2023 handicap tables"},
		&cli.BoolFlag{Name: "inner-ten", Usage: "score the inner ten as ten on indoor faces"},
	}
}

func engineFlags() []cli.Flag {
	return append(roundFlags(),
		&cli.IntFlag{Name: "arrows", Usage: "only the first N arrows of the round"},
		&cli.StringSliceFlag{Name: "face", Usage: "face per distance: full, half, triple, fita-six or worcester-five"},
	)
}

func (e *Env) selector(c *cli.Context) core.RoundSelector {
	return core.RoundSelector{Round: c.String("round"), SubTypeID: c.Int("sub")}
}

func (e *Env) use2023(c *cli.Context) bool {
	if c.IsSet("2023") {
		return c.Bool("2023")
	}
	return e.cfg.Scoring.Use2023Handicaps
}

func (e *Env) innerTen(c *cli.Context) bool {
	if c.IsSet("inner-ten") {
		return c.Bool("inner-ten")
	}
	return e.cfg.Scoring.InnerTenArcher
}

func (e *Env) scoreRequest(c *cli.Context) core.ScoreRequest {
	return core.ScoreRequest{
		RoundSelector:  e.selector(c),
		Handicap:       c.Float64("handicap"),
		Arrows:         c.Int("arrows"),
		InnerTenArcher: e.innerTen(c),
		Use2023:        e.use2023(c),
		Faces:          c.StringSlice("face"),
	}
}

func (e *Env) tableRequest(c *cli.Context) core.TableRequest {
	return core.TableRequest{
		RoundSelector:  e.selector(c),
		From:           c.Int("from"),
		To:             c.Int("to"),
		InnerTenArcher: e.innerTen(c),
		Use2023:        e.use2023(c),
	}
}

func scoreCommand(e *Env) *cli.Command {
	return &cli.Command{
		Name:  "score",
		Usage: "predicted score for a handicap",
		Flags: append(engineFlags(),
			&cli.Float64Flag{Name: "handicap", Aliases: []string{"H"}, Required: true},
		),
		Action: func(c *cli.Context) error {
			svc, err := e.service()
			if err != nil {
				return err
			}
			resp, err := svc.ScoreForRound(e.scoreRequest(c))
			if err != nil {
				return err
			}
			fmt.Fprintf(e.Out, "%s: handicap %g scores %s over %d arrows\n",
				resp.SubType, resp.Handicap, display.Paint(display.Green, strconv.Itoa(resp.Score)), resp.Arrows)
			return nil
		},
	}
}

func handicapCommand(e *Env) *cli.Command {
	return &cli.Command{
		Name:  "handicap",
		Usage: "handicap for a score",
		Flags: append(engineFlags(),
			&cli.IntFlag{Name: "score", Aliases: []string{"s"}, Required: true},
			&cli.BoolFlag{Name: "exact", Usage: "also print the unrounded handicap"},
		),
		Action: func(c *cli.Context) error {
			svc, err := e.service()
			if err != nil {
				return err
			}
			resp, err := svc.HandicapForRound(core.HandicapRequest{
				RoundSelector:  e.selector(c),
				Score:          c.Int("score"),
				Arrows:         c.Int("arrows"),
				InnerTenArcher: e.innerTen(c),
				Use2023:        e.use2023(c),
				Faces:          c.StringSlice("face"),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(e.Out, "%s: %d is handicap %s\n",
				resp.SubType, resp.Score, display.Paint(display.Green, strconv.Itoa(resp.Rounded)))
			if c.Bool("exact") {
				fmt.Fprintf(e.Out, "exact: %.4f\n", resp.Handicap)
			}
			return nil
		},
	}
}

func allowanceCommand(e *Env) *cli.Command {
	return &cli.Command{
		Name:  "allowance",
		Usage: "handicap allowance added to a score in handicap competitions",
		Flags: append(engineFlags(),
			&cli.Float64Flag{Name: "handicap", Aliases: []string{"H"}, Required: true},
		),
		Action: func(c *cli.Context) error {
			svc, err := e.service()
			if err != nil {
				return err
			}
			resp, err := svc.AllowanceForRound(e.scoreRequest(c))
			if err != nil {
				return err
			}
			fmt.Fprintf(e.Out, "%s: handicap %g has an allowance of %s\n",
				resp.SubType, resp.Handicap, display.Paint(display.Green, strconv.Itoa(*resp.Allowance)))
			return nil
		},
	}
}

func rangeFlags() []cli.Flag {
	return append(roundFlags(),
		&cli.IntFlag{Name: "from", Value: 0},
		&cli.IntFlag{Name: "to", Value: 100},
	)
}

func tableCommand(e *Env) *cli.Command {
	return &cli.Command{
		Name:  "table",
		Usage: "scores for a range of handicaps",
		Flags: append(rangeFlags(),
			&cli.StringFlag{Name: "xlsx", Usage: "write the table to a spreadsheet instead"},
		),
		Action: func(c *cli.Context) error {
			svc, err := e.service()
			if err != nil {
				return err
			}
			name, rows, err := svc.HandicapTable(e.tableRequest(c))
			if err != nil {
				return err
			}

			if path := c.String("xlsx"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := report.WriteHandicapTable(f, name, rows); err != nil {
					return err
				}
				fmt.Fprintf(e.Out, "Table written to: %s\n", path)
				return nil
			}

			out := make([][]string, len(rows))
			for i, r := range rows {
				out[i] = []string{strconv.Itoa(r.Handicap), strconv.Itoa(r.Score)}
			}
			fmt.Fprintln(e.Out, display.Paint(display.Cyan, name))
			display.Table(e.Out, []string{"Handicap", "Score"}, out)
			return nil
		},
	}
}

func chartCommand(e *Env) *cli.Command {
	return &cli.Command{
		Name:  "chart",
		Usage: "draw score against handicap as a PNG",
		Flags: append(rangeFlags(),
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "handicap.png"},
		),
		Action: func(c *cli.Context) error {
			svc, err := e.service()
			if err != nil {
				return err
			}
			name, rows, err := svc.HandicapTable(e.tableRequest(c))
			if err != nil {
				return err
			}

			f, err := os.Create(c.String("out"))
			if err != nil {
				return err
			}
			defer f.Close()
			if err := report.RenderHandicapCurve(f, name, rows); err != nil {
				return err
			}
			fmt.Fprintf(e.Out, "Chart written to: %s\n", c.String("out"))
			return nil
		},
	}
}
