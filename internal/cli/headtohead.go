package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"archery/internal/core"
	"archery/internal/display"
	"archery/internal/headtohead"
	"archery/internal/service"
)

var rowFlags = []string{"self", "team-mate", "team", "opponent", "result"}

// parseRow reads "X 10 9" as arrows and "=28" as a total. A result row also
// takes win, loss or tie.
func parseRow(rowType, value string) (core.SetRowRequest, error) {
	row := core.SetRowRequest{Type: rowType}
	value = strings.TrimSpace(value)

	if rowType == "result" {
		for _, r := range []headtohead.Result{headtohead.Win, headtohead.Loss, headtohead.Tie} {
			if strings.EqualFold(value, r.String()) {
				code := headtohead.ResultCode(r)
				row.Total = &code
				return row, nil
			}
		}
	}

	if strings.HasPrefix(value, "=") {
		n, err := strconv.Atoi(strings.TrimSpace(value[1:]))
		if err != nil {
			return row, fmt.Errorf("%s total %q: %w", rowType, value, err)
		}
		row.Total = &n
		return row, nil
	}

	arrows, err := core.ParseEnd(value)
	if err != nil {
		return row, fmt.Errorf("%s: %w", rowType, err)
	}
	for _, a := range arrows {
		row.Arrows = append(row.Arrows, a.Score)
		row.Xs = append(row.Xs, a.IsX)
	}
	return row, nil
}

func headToHeadCommand(e *Env) *cli.Command {
	setFlags := []cli.Flag{
		&cli.IntFlag{Name: "match", Aliases: []string{"m"}, Required: true},
		&cli.IntFlag{Name: "set", Required: true},
	}
	for _, name := range rowFlags {
		usage := "arrows like \"X 10 9\" or a total like \"=28\""
		if name == "result" {
			usage = "win, loss or tie when scores cannot decide the set"
		}
		setFlags = append(setFlags, &cli.StringFlag{Name: name, Usage: usage})
	}

	return &cli.Command{
		Name:  "h2h",
		Usage: "head-to-head matches on a shoot",
		Subcommands: []*cli.Command{
			{
				Name:      "new",
				Usage:     "use a shoot for head-to-head matches",
				ArgsUsage: "<shoot-id>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "team-size", Value: 1, Usage: "1 for individuals, 2 or 3 for teams"},
					&cli.BoolFlag{Name: "set-points", Value: true, Usage: "set system, false for cumulative scoring"},
					&cli.BoolFlag{Name: "standard", Value: true, Usage: "standard format with a shoot-off set"},
					&cli.IntFlag{Name: "end-size", Usage: "arrows per archer per set, 0 for the format default"},
				},
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "shoot id")
					if err != nil {
						return err
					}
					svc, err := e.service()
					if err != nil {
						return err
					}
					return svc.CreateHeadToHead(core.HeadToHeadRequest{
						ShootID:          id,
						TeamSize:         c.Int("team-size"),
						IsSetPoints:      c.Bool("set-points"),
						IsStandardFormat: c.Bool("standard"),
						EndSize:          c.Int("end-size"),
					})
				},
			},
			{
				Name:      "match",
				Usage:     "start the next match",
				ArgsUsage: "<shoot-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "opponent"},
					&cli.IntFlag{Name: "rank", Usage: "opponent's ranking or seed"},
				},
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "shoot id")
					if err != nil {
						return err
					}
					svc, err := e.service()
					if err != nil {
						return err
					}
					n, err := svc.AddMatch(core.MatchRequest{ShootID: id, Opponent: c.String("opponent"), OpponentRank: c.Int("rank")})
					if err != nil {
						return err
					}
					fmt.Fprintf(e.Out, "Match %d started\n", n)
					return nil
				},
			},
			{
				Name:      "set",
				Usage:     "record or replace a set",
				ArgsUsage: "<shoot-id>",
				Flags:     setFlags,
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "shoot id")
					if err != nil {
						return err
					}
					req := core.SetRequest{ShootID: id, Match: c.Int("match"), Set: c.Int("set")}
					for _, name := range rowFlags {
						if !c.IsSet(name) {
							continue
						}
						row, err := parseRow(name, c.String(name))
						if err != nil {
							return err
						}
						req.Rows = append(req.Rows, row)
					}

					svc, err := e.service()
					if err != nil {
						return err
					}
					mv, err := svc.RecordSet(req)
					if err != nil {
						return err
					}
					printMatch(e, *mv)
					return nil
				},
			},
			{
				Name:      "shootoff",
				Usage:     "record the winner of a tied shoot-off",
				ArgsUsage: "<shoot-id>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "match", Aliases: []string{"m"}, Required: true},
					&cli.BoolFlag{Name: "won", Usage: "false records a loss"},
				},
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "shoot id")
					if err != nil {
						return err
					}
					svc, err := e.service()
					if err != nil {
						return err
					}
					return svc.SetShootOffWin(id, c.Int("match"), c.Bool("won"))
				},
			},
			{
				Name:      "show",
				Usage:     "print every match with results and running totals",
				ArgsUsage: "<shoot-id>",
				Flags:     []cli.Flag{&cli.BoolFlag{Name: "json"}},
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "shoot id")
					if err != nil {
						return err
					}
					svc, err := e.service()
					if err != nil {
						return err
					}
					view, err := svc.HeadToHead(id)
					if err != nil {
						return err
					}
					if c.Bool("json") {
						display.PrettyPrintJSON(e.Out, view)
						return nil
					}
					if len(view.Matches) == 0 {
						fmt.Fprintln(e.Out, "No matches yet")
						return nil
					}
					for _, mv := range view.Matches {
						printMatch(e, mv)
						fmt.Fprintln(e.Out)
					}
					return nil
				},
			},
			{
				Name:      "delete-set",
				Usage:     "remove a set, later sets move down",
				ArgsUsage: "<shoot-id>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "match", Aliases: []string{"m"}, Required: true},
					&cli.IntFlag{Name: "set", Required: true},
				},
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "shoot id")
					if err != nil {
						return err
					}
					svc, err := e.service()
					if err != nil {
						return err
					}
					return svc.DeleteSet(id, c.Int("match"), c.Int("set"))
				},
			},
			{
				Name:      "delete-match",
				Usage:     "remove a match and its sets",
				ArgsUsage: "<shoot-id>",
				Flags:     []cli.Flag{&cli.IntFlag{Name: "match", Aliases: []string{"m"}, Required: true}},
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "shoot id")
					if err != nil {
						return err
					}
					svc, err := e.service()
					if err != nil {
						return err
					}
					return svc.DeleteMatch(id, c.Int("match"))
				},
			},
		},
	}
}

func printMatch(e *Env, mv service.MatchView) {
	title := fmt.Sprintf("Match %d", mv.Record.MatchNumber)
	if mv.Record.Opponent != "" {
		title += " v " + mv.Record.Opponent
	}
	if mv.Record.OpponentRank > 0 {
		title += fmt.Sprintf(" (%d)", mv.Record.OpponentRank)
	}
	fmt.Fprintln(e.Out, display.Paint(display.Cyan, title))

	display.RenderMatch(e.Out, mv.Match, mv.Totals)

	status := "in progress"
	if mv.Complete {
		status = "complete"
	}
	if mv.Result != headtohead.Incomplete {
		status += ", " + display.ResultText(mv.Result)
	}
	fmt.Fprintf(e.Out, "%s, %d arrows shot\n", status, mv.Arrows)
}
