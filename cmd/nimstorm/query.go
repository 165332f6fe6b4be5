package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/dshills/nimstorm/internal/project"
	"github.com/dshills/nimstorm/internal/suggest"
)

// queryCmd builds one of the sug/con/def/use commands. They share flags
// and differ only in the method sent to the tool.
func queryCmd(name, usage string) cli.Command {
	return cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "file",
		Flags: []cli.Flag{
			cli.IntFlag{
				Name:  "line, l",
				Usage: "cursor line (1-based)",
			},
			cli.IntFlag{
				Name:  "col, c",
				Usage: "cursor column (0-based)",
			},
			cli.BoolFlag{
				Name:  "dirty",
				Usage: "read unsaved buffer content from standard input",
			},
		},
		Action: func(cx *cli.Context) error {
			return queryAction(cx, suggest.Method(name))
		},
	}
}

func queryAction(cx *cli.Context, method suggest.Method) error {
	if cx.NArg() != 1 {
		return cli.NewExitError(fmt.Sprintf("%s: exactly one file required", method), 1)
	}
	path, err := filepath.Abs(cx.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	line := cx.Int("line")
	if line < 1 {
		return cli.NewExitError(fmt.Sprintf("%s: -line must be at least 1", method), 1)
	}
	col := cx.Int("col")
	if col < 0 {
		return cli.NewExitError(fmt.Sprintf("%s: -col must not be negative", method), 1)
	}

	env, err := newEnv(cx, path)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer env.Close()

	query := suggest.Query{FilePath: path, Line: line, Col: col}
	if cx.Bool("dirty") {
		staging, err := project.NewStaging()
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		defer staging.Close()

		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		staged, err := staging.DirtyFile(path, content)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		query.DirtyPath = staged
	}

	sc := env.cfg.Suggest()
	client := suggest.NewClient(path, suggest.Config{
		Command: sc.Command,
		Args:    sc.Args,
		Timeout: sc.Timeout,
		WorkDir: env.projectDir,
		Logger:  env.logger,
	})

	ctx := context.Background()
	if err := client.Start(ctx); err != nil {
		return cli.NewExitError(err, 1)
	}
	defer client.Stop()

	entries, err := runQuery(ctx, client, method, query)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	for _, e := range entries {
		printEntry(cx.App.Writer, e)
	}
	return nil
}

func runQuery(ctx context.Context, client *suggest.Client, method suggest.Method, q suggest.Query) ([]suggest.Entry, error) {
	switch method {
	case suggest.MethodCon:
		return client.ContextSuggestions(ctx, q)
	case suggest.MethodDef:
		entry, err := client.Definition(ctx, q)
		if err != nil {
			return nil, err
		}
		return []suggest.Entry{entry}, nil
	case suggest.MethodUse:
		return client.Usages(ctx, q)
	default:
		return client.Suggestions(ctx, q)
	}
}

func printEntry(w io.Writer, e suggest.Entry) {
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.SymKind, e.Name(), e.Forth, e.Location())
}
