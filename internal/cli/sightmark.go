package cli

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"archery/internal/core"
	"archery/internal/display"
	"archery/internal/sightmark"
)

func sightCommand(e *Env) *cli.Command {
	distanceFlags := []cli.Flag{
		&cli.IntFlag{Name: "distance", Aliases: []string{"d"}, Required: true},
		&cli.BoolFlag{Name: "metric", Usage: "distance in metres rather than yards"},
	}

	return &cli.Command{
		Name:  "sight",
		Usage: "sight marks",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "record a sight setting",
				Flags: append(distanceFlags,
					&cli.Float64Flag{Name: "value", Aliases: []string{"v"}, Required: true},
					&cli.StringFlag{Name: "note"},
					&cli.BoolFlag{Name: "marked", Usage: "the setting is marked on the sight tape"},
				),
				Action: func(c *cli.Context) error {
					svc, err := e.service()
					if err != nil {
						return err
					}
					id, err := svc.AddSightMark(core.SightMarkRequest{
						Distance: c.Int("distance"),
						IsMetric: c.Bool("metric"),
						Value:    c.Float64("value"),
						Note:     c.String("note"),
						IsMarked: c.Bool("marked"),
					})
					if err != nil {
						return err
					}
					fmt.Fprintln(e.Out, id)
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "list sight marks by distance",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "all", Usage: "include archived marks"},
					&cli.BoolFlag{Name: "current", Usage: "only the newest mark per distance"},
				},
				Action: func(c *cli.Context) error {
					svc, err := e.service()
					if err != nil {
						return err
					}
					marks, err := svc.SightMarks(c.Bool("all"))
					if err != nil {
						return err
					}
					if c.Bool("current") {
						marks = sightmark.Current(marks)
					}
					if len(marks) == 0 {
						fmt.Fprintln(e.Out, "No sight marks found")
						return nil
					}

					rows := make([][]string, 0, len(marks))
					for _, m := range marks {
						flags := ""
						if m.IsMarked {
							flags += "marked "
						}
						if m.IsArchived {
							flags += "archived"
						}
						rows = append(rows, []string{
							m.ID,
							m.Label(),
							strconv.FormatFloat(m.Value, 'f', 2, 64),
							m.DateSet.Local().Format("2006-01-02"),
							flags,
							m.Note,
						})
					}
					display.Table(e.Out, []string{"ID", "Distance", "Mark", "Set", "", "Note"}, rows)
					return nil
				},
			},
			{
				Name:      "archive",
				Usage:     "archive a sight mark",
				ArgsUsage: "<sight-mark-id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "sight mark id")
					if err != nil {
						return err
					}
					svc, err := e.service()
					if err != nil {
						return err
					}
					return svc.ArchiveSightMark(id)
				},
			},
			{
				Name:  "estimate",
				Usage: "estimate the setting for an unmarked distance",
				Flags: distanceFlags,
				Action: func(c *cli.Context) error {
					svc, err := e.service()
					if err != nil {
						return err
					}
					v, err := svc.EstimateSightMark(c.Int("distance"), c.Bool("metric"))
					if err != nil {
						return err
					}
					unit := "yd"
					if c.Bool("metric") {
						unit = "m"
					}
					fmt.Fprintf(e.Out, "%d%s: about %s\n", c.Int("distance"), unit,
						display.Paint(display.Green, strconv.FormatFloat(v, 'f', 2, 64)))
					return nil
				},
			},
		},
	}
}
