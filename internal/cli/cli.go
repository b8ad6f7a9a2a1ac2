// Package cli is the command line front end: one urfave/cli command tree
// shared by the archery binary and the interactive shell.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"archery/internal/config"
	"archery/internal/display"
	"archery/internal/round"
	"archery/internal/service"
	"archery/internal/shell"
	"archery/internal/storage"
)

// Env is the state shared by every command of one process
type Env struct {
	Out io.Writer

	configPath string
	cfg        *config.Config
	logger     *slog.Logger
	store      *storage.Store
	svc        *service.Service
	inShell    bool
}

func NewEnv(out io.Writer) *Env {
	return &Env{Out: out}
}

// Close releases the store if a command opened it
func (e *Env) Close() error {
	if e.store == nil {
		return nil
	}
	err := e.store.Close()
	e.store, e.svc = nil, nil
	return err
}

// Run parses args, including the program name, and executes the command
func Run(e *Env, args []string) error {
	return NewApp(e).Run(args)
}

// NewApp builds the command tree. A fresh tree is built for every shell line.
func NewApp(e *Env) *cli.App {
	return &cli.App{
		Name:                 "archery",
		Usage:                "archery handicaps, score sheets and head-to-head matches",
		Writer:               e.Out,
		ErrWriter:            e.Out,
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "archery.yaml", Usage: "configuration file"},
			&cli.StringFlag{Name: "db", Usage: "database file, overrides the configuration"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.BoolFlag{Name: "no-color", Usage: "plain output"},
		},
		Before:   e.setup,
		Commands: commands(e),
		ExitErrHandler: func(*cli.Context, error) {
			// main and the shell print errors
		},
	}
}

func commands(e *Env) []*cli.Command {
	cmds := []*cli.Command{
		configCommand(e),
		dbCommand(e),
		scoreCommand(e),
		handicapCommand(e),
		allowanceCommand(e),
		tableCommand(e),
		chartCommand(e),
		shootCommand(e),
		headToHeadCommand(e),
		sightCommand(e),
	}
	if !e.inShell {
		cmds = append(cmds, shellCommand(e))
	}
	return cmds
}

// setup loads configuration once per process; shell lines reuse it
func (e *Env) setup(c *cli.Context) error {
	if e.cfg != nil {
		return nil
	}

	e.configPath = c.String("config")
	cfg, err := config.LoadConfig(e.configPath)
	if err != nil {
		return err
	}
	if v := c.String("db"); v != "" {
		cfg.Storage.Path = v
	}
	if v := c.String("log-level"); v != "" {
		cfg.Logging.Level = v
		if _, err := cfg.Logging.SlogLevel(); err != nil {
			return err
		}
	}
	e.cfg = cfg
	e.logger = cfg.Logging.NewLogger()

	if c.Bool("no-color") {
		display.SetColor(false)
	} else {
		display.DetectColor(os.Stdout)
	}
	return nil
}

// service opens the store on first use and makes sure the schema exists
func (e *Env) service() (*service.Service, error) {
	if e.svc != nil {
		return e.svc, nil
	}

	store, err := storage.NewStore(e.cfg.Storage.Path, e.cfg.Storage.Dev, e.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	if err := store.InitDB(); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	e.store = store
	e.svc = service.New(store, service.Options{
		EndSize: e.cfg.Scoring.DefaultEndSize,
		Golds:   e.cfg.Scoring.Golds,
	}, e.logger)
	return e.svc, nil
}

func configCommand(e *Env) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "configuration file",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "write the current configuration to the config file",
				Flags: []cli.Flag{&cli.BoolFlag{Name: "force", Usage: "overwrite an existing file"}},
				Action: func(c *cli.Context) error {
					if _, err := os.Stat(e.configPath); err == nil && !c.Bool("force") {
						return fmt.Errorf("%s exists, use --force to overwrite", e.configPath)
					}
					if err := e.cfg.Save(e.configPath); err != nil {
						return err
					}
					fmt.Fprintf(e.Out, "Configuration written to: %s\n", e.configPath)
					return nil
				},
			},
			{
				Name:  "show",
				Usage: "print the effective configuration",
				Action: func(c *cli.Context) error {
					display.PrettyPrintJSON(e.Out, e.cfg)
					return nil
				},
			},
		},
	}
}

func dbCommand(e *Env) *cli.Command {
	return &cli.Command{
		Name:  "db",
		Usage: "database maintenance",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create the schema and seed the standard rounds",
				Action: func(c *cli.Context) error {
					if _, err := e.service(); err != nil {
						return err
					}
					added, err := e.store.SeedRounds(round.Catalog())
					if err != nil {
						return fmt.Errorf("failed to seed rounds: %w", err)
					}
					fmt.Fprintf(e.Out, "Database initialized at: %s (%d rounds added)\n", e.cfg.Storage.Path, added)
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "add any missing standard rounds",
				Action: func(c *cli.Context) error {
					if _, err := e.service(); err != nil {
						return err
					}
					added, err := e.store.SeedRounds(round.Catalog())
					if err != nil {
						return fmt.Errorf("failed to seed rounds: %w", err)
					}
					fmt.Fprintf(e.Out, "%d rounds added\n", added)
					return nil
				},
			},
			{
				Name:  "delete",
				Usage: "delete the database file",
				Flags: []cli.Flag{&cli.BoolFlag{Name: "force", Usage: "required, deletion cannot be undone"}},
				Action: func(c *cli.Context) error {
					if !c.Bool("force") {
						return errors.New("refusing to delete without --force")
					}
					if _, err := e.service(); err != nil {
						return err
					}
					if err := e.store.DeleteDB(); err != nil {
						return fmt.Errorf("failed to delete database: %w", err)
					}
					e.store, e.svc = nil, nil
					fmt.Fprintf(e.Out, "Database deleted: %s\n", e.cfg.Storage.Path)
					return nil
				},
			},
			{
				Name:  "rounds",
				Usage: "list the stored rounds",
				Action: func(c *cli.Context) error {
					svc, err := e.service()
					if err != nil {
						return err
					}
					rounds, err := svc.Rounds()
					if err != nil {
						return err
					}
					if len(rounds) == 0 {
						fmt.Fprintln(e.Out, "No rounds found, run 'archery db init'")
						return nil
					}

					rows := make([][]string, 0, len(rounds))
					for _, r := range rounds {
						place, units := "indoor", "yards"
						if r.IsOutdoor {
							place = "outdoor"
						}
						if r.IsMetric {
							units = "metres"
						}
						rows = append(rows, []string{r.Name, r.DisplayName, place, units})
					}
					display.Table(e.Out, []string{"Name", "Round", "Venue", "Units"}, rows)
					return nil
				},
			},
			{
				Name:  "health",
				Usage: "check the database connection",
				Action: func(c *cli.Context) error {
					svc, err := e.service()
					if err != nil {
						return err
					}
					fmt.Fprintf(e.Out, "storage: %s\n", svc.GetStorageHealth())
					return nil
				},
			},
		},
	}
}

func shellCommand(e *Env) *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "interactive prompt",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "history", Value: historyPath(), Usage: "history file"},
		},
		Action: func(c *cli.Context) error {
			e.inShell = true
			defer func() { e.inShell = false }()

			var names []string
			for _, cmd := range commands(e) {
				names = append(names, cmd.Name)
			}

			sh := shell.New(func(args []string) error {
				return Run(e, append([]string{"archery"}, args...))
			}, e.Out)
			return sh.Run(c.String("history"), names)
		},
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".archery_history"
	}
	return filepath.Join(home, ".archery_history")
}

// requireArg returns the first positional argument, named for the error
func requireArg(c *cli.Context, name string) (string, error) {
	v := strings.TrimSpace(c.Args().First())
	if v == "" {
		return "", fmt.Errorf("%s required", name)
	}
	return v, nil
}
