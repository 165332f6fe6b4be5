// Package main is the entry point for the nimstorm command line tools.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/dshills/nimstorm/internal/project"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	cli.VersionPrinter = func(cx *cli.Context) {
		fmt.Fprintf(cx.App.Writer, "nimstorm %s (commit %s, built %s)\n", version, commit, date)
	}

	app := cli.NewApp()
	app.Name = "nimstorm"
	app.Usage = "Nim editing support from the command line"
	app.Version = version
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "log-level",
			Usage: "log verbosity (debug, info, warn, error)",
		},
		cli.StringFlag{
			Name:  "config-dir",
			Usage: "override the user configuration directory",
		},
	}
	app.Commands = []cli.Command{
		indentCmd,
		shiftCmd,
		highlightCmd,
		queryCmd("sug", "list completion candidates at a position"),
		queryCmd("con", "list call context candidates at a position"),
		queryCmd("def", "find the definition of the symbol at a position"),
		queryCmd("use", "list usages of the symbol at a position"),
		rootCmd,
	}
	return app
}

var rootCmd = cli.Command{
	Name:      "root",
	Usage:     "print the project root for a path",
	ArgsUsage: "[path]",
	Action:    rootAction,
}

func rootAction(cx *cli.Context) error {
	start := "."
	if cx.NArg() > 0 {
		start = cx.Args().First()
	}

	root, err := project.FindRoot(start)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintln(cx.App.Writer, root.Dir)
	return nil
}
