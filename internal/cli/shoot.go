package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"archery/internal/core"
	"archery/internal/display"
	"archery/internal/report"
	"archery/internal/service"
)

func shootCommand(e *Env) *cli.Command {
	return &cli.Command{
		Name:  "shoot",
		Usage: "score a round arrow by arrow",
		Subcommands: []*cli.Command{
			{
				Name:  "new",
				Usage: "start a shoot and print its id",
				Flags: append(roundFlags(),
					&cli.StringFlag{Name: "face", Usage: "full, half, triple, fita-six or worcester-five"},
					&cli.StringFlag{Name: "note"},
				),
				Action: func(c *cli.Context) error {
					svc, err := e.service()
					if err != nil {
						return err
					}
					id, err := svc.CreateShoot(core.CreateShootRequest{
						RoundSelector:  e.selector(c),
						Face:           c.String("face"),
						InnerTenArcher: e.innerTen(c),
						Use2023:        e.use2023(c),
						Note:           c.String("note"),
					})
					if err != nil {
						return err
					}
					fmt.Fprintln(e.Out, id)
					return nil
				},
			},
			{
				Name:      "end",
				Usage:     "add an end, e.g. 'shoot end <id> X 10 9 7 M 5'",
				ArgsUsage: "<shoot-id> <arrows...>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "shoot id")
					if err != nil {
						return err
					}
					arrows, err := core.ParseEnd(strings.Join(c.Args().Tail(), " "))
					if err != nil {
						return err
					}
					if len(arrows) == 0 {
						return fmt.Errorf("arrows required")
					}

					req := core.EndRequest{ShootID: id}
					for _, a := range arrows {
						req.Arrows = append(req.Arrows, a.Score)
						req.Xs = append(req.Xs, a.IsX)
					}

					svc, err := e.service()
					if err != nil {
						return err
					}
					summary, err := svc.AddEnd(req)
					if err != nil {
						return err
					}
					printProgress(e, summary)
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "print the score sheet",
				ArgsUsage: "<shoot-id>",
				Flags:     []cli.Flag{&cli.BoolFlag{Name: "json"}},
				Action: func(c *cli.Context) error {
					summary, err := e.shootSummary(c)
					if err != nil {
						return err
					}
					if c.Bool("json") {
						display.PrettyPrintJSON(e.Out, summary)
						return nil
					}

					fmt.Fprintf(e.Out, "%s  %s  %s\n",
						display.Paint(display.Cyan, summary.SubType.Name),
						display.ShortID(summary.Shoot.ShootID),
						summary.Shoot.ShotAtUTC.Local().Format("2006-01-02 15:04"))
					if summary.Shoot.Note != "" {
						fmt.Fprintln(e.Out, summary.Shoot.Note)
					}
					display.RenderPad(e.Out, summary.Pad)
					printProgress(e, summary)
					return nil
				},
			},
			{
				Name:      "export",
				Usage:     "write the score sheet to a spreadsheet",
				ArgsUsage: "<shoot-id>",
				Flags:     []cli.Flag{&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "scoresheet.xlsx"}},
				Action: func(c *cli.Context) error {
					summary, err := e.shootSummary(c)
					if err != nil {
						return err
					}

					f, err := os.Create(c.String("out"))
					if err != nil {
						return err
					}
					defer f.Close()
					title := fmt.Sprintf("%s %s", summary.SubType.Name, summary.Shoot.ShotAtUTC.Format("2006-01-02"))
					if err := report.WriteScorePad(f, title, summary.Pad); err != nil {
						return err
					}
					fmt.Fprintf(e.Out, "Score sheet written to: %s\n", c.String("out"))
					return nil
				},
			},
			{
				Name:      "convert",
				Usage:     "rescore a ten-zone shoot with imperial five-zone values",
				ArgsUsage: "<shoot-id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "shoot id")
					if err != nil {
						return err
					}
					svc, err := e.service()
					if err != nil {
						return err
					}
					summary, err := svc.ConvertShootToImperial(id)
					if err != nil {
						return err
					}
					fmt.Fprintf(e.Out, "Converted, new score %d\n", summary.Score)
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "list shoots",
				Flags: []cli.Flag{&cli.StringFlag{Name: "round", Aliases: []string{"r"}, Value: "*", Usage: "round name, * for all"}},
				Action: func(c *cli.Context) error {
					svc, err := e.service()
					if err != nil {
						return err
					}
					shoots, err := svc.Shoots(c.String("round"))
					if err != nil {
						return err
					}
					if len(shoots) == 0 {
						fmt.Fprintln(e.Out, "No shoots found")
						return nil
					}

					rows := make([][]string, 0, len(shoots))
					for _, s := range shoots {
						rows = append(rows, []string{
							s.ShootID,
							fmt.Sprintf("%d/%d", s.RoundID, s.SubTypeID),
							s.ShotAtUTC.Local().Format("2006-01-02 15:04"),
							s.Note,
						})
					}
					display.Table(e.Out, []string{"Shoot ID", "Round", "Shot", "Note"}, rows)
					fmt.Fprintf(e.Out, "\nFound %d shoot(s)\n", len(shoots))
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a shoot with its arrows and matches",
				ArgsUsage: "<shoot-id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "shoot id")
					if err != nil {
						return err
					}
					svc, err := e.service()
					if err != nil {
						return err
					}
					if err := svc.DeleteShoot(id); err != nil {
						return err
					}
					fmt.Fprintf(e.Out, "Shoot deleted: %s\n", id)
					return nil
				},
			},
		},
	}
}

func (e *Env) shootSummary(c *cli.Context) (*service.ShootSummary, error) {
	id, err := requireArg(c, "shoot id")
	if err != nil {
		return nil, err
	}
	svc, err := e.service()
	if err != nil {
		return nil, err
	}
	return svc.ShootSummary(id)
}

func printProgress(e *Env, s *service.ShootSummary) {
	line := fmt.Sprintf("%d/%d arrows, score %d", s.Arrows, s.Total, s.Score)
	if s.Rounded != nil {
		line += fmt.Sprintf(", handicap %d", *s.Rounded)
	}
	if s.IsComplete() {
		line = display.Paint(display.Green, line+", complete")
	}
	fmt.Fprintln(e.Out, line)
}
