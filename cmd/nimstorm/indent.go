package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/dshills/nimstorm/internal/indent"
	"github.com/dshills/nimstorm/internal/textbuf"
)

var indentCmd = cli.Command{
	Name:      "indent",
	Usage:     "reindent Nim source files",
	ArgsUsage: "[files...]",
	Description: `Recomputes the indentation of every line. With no files the
source is read from standard input and the result printed. With -w the
files are rewritten in place, otherwise the result goes to standard
output.`,
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "write, w",
			Usage: "write the result back to the source file",
		},
	},
	Action: indentAction,
}

func indentAction(cx *cli.Context) error {
	if cx.NArg() == 0 {
		if cx.Bool("write") {
			return cli.NewExitError("indent: -w requires file arguments", 1)
		}
		return indentStdin(cx)
	}

	env, err := newEnv(cx, cx.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer env.Close()

	rules := env.indentRules()
	for _, path := range cx.Args() {
		if err := indentFile(cx, path, rules, cx.Bool("write")); err != nil {
			return cli.NewExitError(err, 1)
		}
	}
	return nil
}

func indentStdin(cx *cli.Context) error {
	env, err := newEnv(cx, ".")
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer env.Close()

	buf, err := textbuf.FromReader(os.Stdin)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	eng := indent.New(buf, indent.WithRules(env.indentRules()))
	if err := eng.IndentRegion(0, buf.Len()); err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprint(cx.App.Writer, buf.Text())
	return nil
}

func indentFile(cx *cli.Context, path string, rules indent.Rules, write bool) error {
	buf, err := textbuf.FromFile(path)
	if err != nil {
		return err
	}

	eng := indent.New(buf, indent.WithRules(rules))
	if err := eng.IndentRegion(0, buf.Len()); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if write {
		return writeBack(path, buf.Text())
	}
	fmt.Fprint(cx.App.Writer, buf.Text())
	return nil
}

// writeBack rewrites path preserving its file mode.
func writeBack(path, text string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, []byte(text), mode)
}

var shiftCmd = cli.Command{
	Name:      "shift",
	Usage:     "rigidly shift a line range by indent steps",
	ArgsUsage: "file",
	Description: `Moves every line in the range by count indent steps without
reinterpreting the code. Shifting left fails when any non-blank line in
the range has less indentation than the shift removes; the file is then
left untouched.`,
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "left, l",
			Usage: "shift left",
		},
		cli.BoolFlag{
			Name:  "right, r",
			Usage: "shift right",
		},
		cli.IntFlag{
			Name:  "count, n",
			Value: 1,
			Usage: "number of indent steps",
		},
		cli.IntFlag{
			Name:  "start, s",
			Value: 1,
			Usage: "first line of the range (1-based)",
		},
		cli.IntFlag{
			Name:  "end, e",
			Value: 0,
			Usage: "last line of the range (1-based, 0 means last line)",
		},
		cli.BoolFlag{
			Name:  "write, w",
			Usage: "write the result back to the source file",
		},
	},
	Action: shiftAction,
}

func shiftAction(cx *cli.Context) error {
	if cx.NArg() != 1 {
		return cli.NewExitError("shift: exactly one file required", 1)
	}
	left, right := cx.Bool("left"), cx.Bool("right")
	if left == right {
		return cli.NewExitError("shift: exactly one of -l or -r required", 1)
	}
	count := cx.Int("count")
	if count < 1 {
		return cli.NewExitError("shift: count must be at least 1", 1)
	}

	path := cx.Args().First()
	env, err := newEnv(cx, path)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer env.Close()

	buf, err := textbuf.FromFile(path)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	startLine := cx.Int("start")
	endLine := cx.Int("end")
	if endLine == 0 {
		endLine = buf.LineCount()
	}
	if startLine < 1 || endLine > buf.LineCount() || startLine > endLine {
		return cli.NewExitError(fmt.Sprintf("shift: bad line range %d-%d (file has %d lines)",
			startLine, endLine, buf.LineCount()), 1)
	}

	eng := indent.New(buf, indent.WithRules(env.indentRules()))
	start := buf.LineStart(startLine - 1)
	end := buf.LineEnd(endLine - 1)
	cols := count * eng.Offset()

	if left {
		err = eng.ShiftLeft(start, end, cols)
	} else {
		err = eng.ShiftRight(start, end, cols)
	}
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("%s: %v", path, err), 1)
	}

	if cx.Bool("write") {
		if err := writeBack(path, buf.Text()); err != nil {
			return cli.NewExitError(err, 1)
		}
		return nil
	}
	fmt.Fprint(cx.App.Writer, buf.Text())
	return nil
}
