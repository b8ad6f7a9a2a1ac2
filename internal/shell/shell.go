// Package shell is an interactive prompt that hands each line to the command
// line front end, remembering the shoot being scored between lines.
package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"archery/internal/display"
)

// Runner executes one parsed command line
type Runner func(args []string) error

// Command defines a shell built-in with its handler
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Handler     func(*Shell, []string) error
}

type Shell struct {
	run      Runner
	out      io.Writer
	commands map[string]*Command
	names    []string
	quit     bool

	// CurrentShoot replaces "." arguments
	CurrentShoot string
}

func New(run Runner, out io.Writer) *Shell {
	s := &Shell{
		run:      run,
		out:      out,
		commands: make(map[string]*Command),
	}

	s.Register(&Command{
		Name:        "use",
		ShortName:   "u",
		Description: "Select the shoot that '.' stands for",
		Usage:       "use <shoot-id>",
		Handler:     useHandler,
	})
	s.Register(&Command{
		Name:        "help",
		ShortName:   "?",
		Description: "Show shell commands, or help for a command",
		Usage:       "help [command]",
		Handler:     helpHandler,
	})
	s.Register(&Command{
		Name:        "exit",
		ShortName:   "x",
		Description: "Leave the shell",
		Usage:       "exit",
		Handler:     func(s *Shell, _ []string) error { s.quit = true; return nil },
	})
	return s
}

func (s *Shell) Register(cmd *Command) {
	s.commands[cmd.Name] = cmd
	s.names = append(s.names, cmd.Name)
	if cmd.ShortName != "" {
		s.commands[cmd.ShortName] = cmd
	}
}

// Execute runs one line and reports whether the shell should exit
func (s *Shell) Execute(line string) bool {
	args, err := SplitArgs(line)
	if err != nil {
		display.Error(s.out, err)
		return false
	}
	if len(args) == 0 {
		return false
	}

	if cmd, ok := s.commands[args[0]]; ok {
		if err := cmd.Handler(s, args[1:]); err != nil {
			display.Error(s.out, err)
		}
		return s.quit
	}
	if args[0] == "quit" {
		return true
	}
	if args[0] == "shell" {
		fmt.Fprintln(s.out, "Already in the shell")
		return false
	}

	for i, a := range args {
		if a == "." {
			if s.CurrentShoot == "" {
				display.Error(s.out, errors.New("no shoot selected, run 'use <shoot-id>' first"))
				return false
			}
			args[i] = s.CurrentShoot
		}
	}

	if err := s.run(args); err != nil {
		display.Error(s.out, err)
	}
	return false
}

// Run reads lines until exit or end of input
func (s *Shell) Run(historyFile string, commandNames []string) error {
	items := make([]readline.PrefixCompleterInterface, 0, len(commandNames)+len(s.names))
	for _, n := range append(commandNames, s.names...) {
		items = append(items, readline.PcItem(n))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt("archery"),
		HistoryFile:     historyFile,
		AutoComplete:    readline.NewPrefixCompleter(items...),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to start shell: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(s.out, display.Paint(display.Cyan, "Archery shell"))
	fmt.Fprintln(s.out, "Type 'help' for commands")

	for {
		rl.SetPrompt(s.prompt())

		line, err := rl.Readline()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			return err
		}

		if s.Execute(strings.TrimSpace(line)) {
			return nil
		}
	}
}

func (s *Shell) prompt() string {
	if s.CurrentShoot == "" {
		return display.Prompt("archery")
	}
	return display.Prompt("archery [" + display.ShortID(s.CurrentShoot) + "]")
}

func useHandler(s *Shell, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: use <shoot-id>")
	}
	s.CurrentShoot = args[0]
	return nil
}

func helpHandler(s *Shell, args []string) error {
	if len(args) > 0 {
		if cmd, ok := s.commands[args[0]]; ok {
			fmt.Fprintf(s.out, "\n%s - %s\n", display.Paint(display.Cyan, cmd.Name), cmd.Description)
			if cmd.ShortName != "" {
				fmt.Fprintf(s.out, "Short form: %s\n", display.Paint(display.Cyan, cmd.ShortName))
			}
			fmt.Fprintf(s.out, "Usage: %s\n", cmd.Usage)
			return nil
		}
		// Anything else is a front end command
		return s.run(append(args, "--help"))
	}

	fmt.Fprintf(s.out, "\n%s\n\n", display.Paint(display.Cyan, "Shell commands:"))
	rows := make([][]string, 0, len(s.names))
	for _, n := range s.names {
		c := s.commands[n]
		rows = append(rows, []string{c.Name, c.ShortName, c.Description})
	}
	display.Table(s.out, []string{"Command", "Short", "Description"}, rows)
	fmt.Fprintln(s.out, "\nEvery other line runs as an archery command, e.g. 'score --round wa1440 --handicap 40'.")
	fmt.Fprintln(s.out, "Use '.' in place of the selected shoot id.")
	return nil
}

// SplitArgs splits a line on spaces, keeping quoted sections together
func SplitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		quote   rune
		inToken bool
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inToken = true
		case r == ' ' || r == '\t':
			if inToken {
				args = append(args, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if inToken {
		args = append(args, cur.String())
	}
	return args, nil
}
