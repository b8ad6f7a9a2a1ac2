// Package main is the archery command line: handicaps, score sheets,
// head-to-head matches and sight marks backed by a local SQLite file.
package main

import (
	"os"

	"archery/internal/cli"
	"archery/internal/display"
)

func main() {
	env := cli.NewEnv(os.Stdout)

	err := cli.Run(env, os.Args)
	if cerr := env.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		display.Error(os.Stderr, err)
		os.Exit(1)
	}
}
