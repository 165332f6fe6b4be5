package main

import (
	"context"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/dshills/nimstorm/internal/config"
	"github.com/dshills/nimstorm/internal/indent"
	"github.com/dshills/nimstorm/internal/logging"
	"github.com/dshills/nimstorm/internal/plugin"
	"github.com/dshills/nimstorm/internal/project"
)

// env bundles the loaded configuration for one command invocation.
type env struct {
	cfg        *config.Config
	logger     *logging.Logger
	projectDir string
}

// newEnv loads configuration layered for the project containing hint.
// Commands are one-shot, so the config watcher stays off.
func newEnv(cx *cli.Context, hint string) (*env, error) {
	if hint == "" {
		hint = "."
	}

	var projectDir string
	if root, err := project.FindRoot(hint); err == nil {
		projectDir = root.Dir
	}

	cfgOpts := []config.Option{config.WithWatcher(false)}
	if dir := cx.GlobalString("config-dir"); dir != "" {
		cfgOpts = append(cfgOpts, config.WithUserConfigDir(dir))
	}
	if projectDir != "" {
		cfgOpts = append(cfgOpts, config.WithProjectDir(projectDir))
	}

	cfg := config.New(cfgOpts...)
	if err := cfg.Load(context.Background()); err != nil {
		return nil, err
	}

	level := cfg.Logging().Level
	if s := cx.GlobalString("log-level"); s != "" {
		level = s
	}
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(level)

	return &env{
		cfg:        cfg,
		logger:     logging.New(logCfg),
		projectDir: projectDir,
	}, nil
}

func (e *env) Close() {
	e.cfg.Close()
}

// indentRules composes the engine rule set: built-in defaults, then
// configured overrides, then rule script edits.
func (e *env) indentRules() indent.Rules {
	rules := indent.DefaultRules()

	ic := e.cfg.Indent()
	rules.Offset = ic.Offset
	if len(ic.Indenters) > 0 {
		rules.Indenters = ic.Indenters
	}
	if len(ic.Dedenters) > 0 {
		rules.Dedenters = ic.Dedenters
	}
	if len(ic.BlockStart) > 0 {
		rules.BlockStart = ic.BlockStart
	}
	if len(ic.Operators) > 0 {
		rules.Operators = ic.Operators
	}

	for _, path := range e.rulesScripts() {
		changes, err := plugin.LoadRules(path)
		if err != nil {
			e.logger.Warn("rules script skipped: %v", err)
			continue
		}
		if changes.Empty() {
			continue
		}
		rules.Indenters = changes.Indenters.Apply(rules.Indenters)
		rules.Dedenters = changes.Dedenters.Apply(rules.Dedenters)
		rules.BlockStart = changes.BlockStart.Apply(rules.BlockStart)
		rules.Operators = changes.Operators.Apply(rules.Operators)
	}

	return rules
}

// rulesScripts lists the rule script locations in application order: the
// user config directory first, then the project root.
func (e *env) rulesScripts() []string {
	var paths []string
	if dir := e.cfg.UserConfigDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, plugin.DefaultRulesFile))
	}
	if e.projectDir != "" {
		paths = append(paths, filepath.Join(e.projectDir, plugin.DefaultRulesFile))
	}
	return paths
}
