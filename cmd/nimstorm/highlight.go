package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/dshills/nimstorm/internal/highlight"
	"github.com/dshills/nimstorm/internal/textbuf"
)

var highlightCmd = cli.Command{
	Name:      "highlight",
	Usage:     "print a source file with ANSI colors",
	ArgsUsage: "file",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "theme, t",
			Usage: "color theme (dark, light, mono)",
		},
	},
	Action: highlightAction,
}

func highlightAction(cx *cli.Context) error {
	if cx.NArg() != 1 {
		return cli.NewExitError("highlight: exactly one file required", 1)
	}
	path := cx.Args().First()

	env, err := newEnv(cx, path)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer env.Close()

	name := env.cfg.Highlight().Theme
	if s := cx.String("theme"); s != "" {
		name = s
	}
	theme, ok := highlight.ThemeByName(name)
	if !ok {
		return cli.NewExitError(fmt.Sprintf("highlight: unknown theme %q", name), 1)
	}

	buf, err := textbuf.FromFile(path)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	// Joining painted lines with newlines reproduces the source shape
	// exactly, including any trailing newline.
	h := highlight.New()
	for i, tokens := range h.HighlightAll(buf.Text()) {
		if i > 0 {
			fmt.Fprintln(cx.App.Writer)
		}
		fmt.Fprint(cx.App.Writer, theme.Paint(buf.Line(i), tokens))
	}
	return nil
}
