// Package config provides layered configuration for nimstorm.
//
// Settings are merged from built-in defaults, the user settings file
// ($XDG_CONFIG_HOME/nimstorm/settings.toml), an optional per-project
// .nimstorm.toml, and NIMSTORM_* environment variables, in that order of
// precedence. Changed files are picked up live when watching is enabled.
package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dshills/nimstorm/internal/logging"
)

// Source layer names in precedence order, lowest first.
const (
	sourceDefaults = "defaults"
	sourceUser     = "user"
	sourceProject  = "project"
	sourceEnv      = "environment"
)

// envPrefix selects the environment variables read into the config.
const envPrefix = "NIMSTORM_"

// UserSettingsFile is the settings file name in the user config directory.
const UserSettingsFile = "settings.toml"

// ProjectSettingsFile is the per-project settings file name.
const ProjectSettingsFile = ".nimstorm.toml"

// source is one configuration layer.
type source struct {
	name string
	path string // file-backed sources only
	data map[string]any
}

// Config provides unified access to the nimstorm configuration.
type Config struct {
	mu      sync.RWMutex
	sources []*source
	values  map[string]any

	userConfigDir string
	projectDir    string

	enableWatcher bool
	watcher       *Watcher

	reloadHandlers []func(path string)

	logger *logging.Logger
}

// Option configures a Config instance.
type Option func(*Config)

// WithUserConfigDir sets the user configuration directory.
func WithUserConfigDir(dir string) Option {
	return func(c *Config) {
		c.userConfigDir = dir
	}
}

// WithProjectDir sets the project directory to read .nimstorm.toml from.
func WithProjectDir(dir string) Option {
	return func(c *Config) {
		c.projectDir = dir
	}
}

// WithWatcher enables or disables file watching for live reload.
func WithWatcher(enable bool) Option {
	return func(c *Config) {
		c.enableWatcher = enable
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Config) {
		c.logger = logger
	}
}

// New creates a new Config instance with the given options. Call Load to
// read the configuration sources.
func New(opts ...Option) *Config {
	c := &Config{
		values:        make(map[string]any),
		enableWatcher: true,
		logger:        logging.Null,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.userConfigDir == "" {
		c.userConfigDir = defaultUserConfigDir()
	}
	c.logger = c.logger.WithComponent("config")

	return c
}

// Load loads configuration from all sources and starts the file watcher
// when enabled.
func (c *Config) Load(_ context.Context) error {
	c.mu.Lock()

	c.sources = c.sources[:0]
	c.sources = append(c.sources, &source{name: sourceDefaults, data: defaultConfig()})

	userPath := filepath.Join(c.userConfigDir, UserSettingsFile)
	userData, err := loadTOMLFile(userPath)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.sources = append(c.sources, &source{name: sourceUser, path: userPath, data: userData})

	var projectPath string
	if c.projectDir != "" {
		projectPath = filepath.Join(c.projectDir, ProjectSettingsFile)
		projectData, err := loadTOMLFile(projectPath)
		if err != nil {
			c.mu.Unlock()
			return err
		}
		c.sources = append(c.sources, &source{name: sourceProject, path: projectPath, data: projectData})
	}

	c.sources = append(c.sources, &source{name: sourceEnv, data: loadEnv(envPrefix)})

	c.remerge()
	c.mu.Unlock()

	if c.enableWatcher {
		if err := c.startWatcher(userPath, projectPath); err != nil {
			c.logger.Warn("config watcher unavailable: %v", err)
		}
	}

	return nil
}

// startWatcher creates the file watcher and registers the config files.
func (c *Config) startWatcher(paths ...string) error {
	w, err := NewWatcher(WatcherLogger(c.logger))
	if err != nil {
		return err
	}

	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := w.Watch(path); err != nil {
			c.logger.Debug("not watching %s: %v", path, err)
		}
	}

	w.OnChange(c.handleFileChange)
	w.Start()

	c.mu.Lock()
	c.watcher = w
	c.mu.Unlock()
	return nil
}

// UserConfigDir returns the directory holding user-level configuration
// files.
func (c *Config) UserConfigDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userConfigDir
}

// Close shuts down the configuration system.
func (c *Config) Close() {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	if w != nil {
		w.Stop()
	}
}

// OnReload registers a handler called after a config file change has been
// applied. The handler receives the changed file path.
func (c *Config) OnReload(handler func(path string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reloadHandlers = append(c.reloadHandlers, handler)
}

// handleFileChange reloads the layer backed by the changed file.
func (c *Config) handleFileChange(event Event) {
	c.mu.Lock()

	var src *source
	for _, s := range c.sources {
		if s.path != "" && s.path == event.Path {
			src = s
			break
		}
	}
	if src == nil {
		c.mu.Unlock()
		return
	}

	if event.Op == OpRemove {
		src.data = nil
	} else {
		data, err := loadTOMLFile(event.Path)
		if err != nil {
			c.logger.Warn("reload of %s failed: %v", event.Path, err)
			c.mu.Unlock()
			return
		}
		src.data = data
	}

	c.remerge()
	handlers := make([]func(string), len(c.reloadHandlers))
	copy(handlers, c.reloadHandlers)
	c.mu.Unlock()

	c.logger.Info("reloaded %s", event.Path)
	for _, handler := range handlers {
		handler(event.Path)
	}
}

// Reload re-reads all file-backed sources from disk.
func (c *Config) Reload() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, src := range c.sources {
		if src.path == "" {
			continue
		}
		data, err := loadTOMLFile(src.path)
		if err != nil {
			return err
		}
		src.data = data
	}

	c.remerge()
	return nil
}

// remerge rebuilds the merged snapshot from the sources. Callers must hold
// the write lock.
func (c *Config) remerge() {
	merged := make(map[string]any)
	for _, src := range c.sources {
		merged = deepMerge(merged, clone(src.data))
	}
	c.values = merged
}

// Get returns the value at the given dot-separated path.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getPath(c.values, path)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// GetStringSlice returns a string slice at the given path.
func (c *Config) GetStringSlice(path string) ([]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, ErrSettingNotFound
	}

	switch val := v.(type) {
	case []string:
		return val, nil
	case []any:
		result := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
	}
}

// GetDuration returns a duration value at the given path. Strings use
// time.ParseDuration syntax; integers are seconds.
func (c *Config) GetDuration(path string) (time.Duration, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	d, ok := parseDuration(v)
	if !ok {
		return 0, &TypeError{Path: path, Expected: "duration", Actual: typeName(v)}
	}
	return d, nil
}

// Set sets a value at the given path in the user layer. The change is
// in-memory; it is not written back to the settings file.
func (c *Config) Set(path string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var user *source
	for _, s := range c.sources {
		if s.name == sourceUser {
			user = s
			break
		}
	}
	if user == nil {
		user = &source{name: sourceUser}
		c.sources = append(c.sources, user)
	}
	if user.data == nil {
		user.data = make(map[string]any)
	}

	if err := setPath(user.data, path, value); err != nil {
		return err
	}

	c.remerge()
	return nil
}

// Merged returns a copy of the fully merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.values)
}

// defaultUserConfigDir returns the default user configuration directory.
func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "nimstorm")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "nimstorm")
}

// defaultConfig returns the default configuration values. Empty keyword
// and operator lists mean the engine's built-in sets apply.
func defaultConfig() map[string]any {
	return map[string]any{
		"indent": map[string]any{
			"offset": 2,
		},
		"suggest": map[string]any{
			"command": "nimsuggest",
			"args":    []any{},
			"timeout": "30s",
		},
		"highlight": map[string]any{
			"theme": "dark",
		},
		"files": map[string]any{
			"extensions": []any{".nim", ".nims"},
			"exclude":    []any{".git", "nimcache", "nimbledeps"},
		},
		"logging": map[string]any{
			"level": "info",
			"file":  "",
		},
	}
}

// getPath retrieves a value from a nested map using a dot-separated path.
func getPath(m map[string]any, path string) (any, bool) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, false
	}

	current := any(m)
	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = cm[part]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// setPath sets a value in a nested map using a dot-separated path.
func setPath(m map[string]any, path string, value any) error {
	parts := splitPath(path)
	if len(parts) == 0 {
		return ErrInvalidPath
	}

	current := m
	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		next, ok := current[part]
		if !ok {
			child := make(map[string]any)
			current[part] = child
			current = child
			continue
		}
		nextMap, ok := next.(map[string]any)
		if !ok {
			return ErrInvalidPath
		}
		current = nextMap
	}

	current[parts[len(parts)-1]] = value
	return nil
}

// splitPath splits a dot-separated path into parts, dropping empties.
func splitPath(path string) []string {
	var parts []string
	for _, part := range strings.Split(path, ".") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return "unknown"
	}
}
