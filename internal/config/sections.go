package config

import "time"

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying configuration. Use Config.Set()
// to update configuration values.

// IndentConfig provides type-safe access to indentation settings. Empty
// keyword and operator lists mean the engine's built-in sets apply.
type IndentConfig struct {
	// Offset is the indentation step in columns.
	Offset int

	// Indenters are keywords that start an indented block from anywhere
	// in a statement.
	Indenters []string

	// Dedenters are keywords that outdent the line they open.
	Dedenters []string

	// BlockStart are keywords whose trailing colon opens a block.
	BlockStart []string

	// Operators are tokens that continue a statement when a line ends
	// with one.
	Operators []string
}

// SuggestConfig provides type-safe access to suggest tool settings.
type SuggestConfig struct {
	// Command is the tool binary.
	Command string

	// Args are extra arguments passed before the project file.
	Args []string

	// Timeout bounds a single query.
	Timeout time.Duration
}

// HighlightConfig provides type-safe access to highlighting settings.
type HighlightConfig struct {
	// Theme is the color theme name ("dark", "light", "mono").
	Theme string
}

// FilesConfig provides type-safe access to file handling settings.
type FilesConfig struct {
	// Extensions are the source file extensions the tools operate on.
	Extensions []string

	// Exclude is a list of directory names excluded from project walks.
	Exclude []string
}

// LoggingConfig provides type-safe access to logging settings.
type LoggingConfig struct {
	// Level is the logging verbosity ("debug", "info", "warn", "error").
	Level string

	// File is the log file path (empty logs to stderr).
	File string
}

// Indent returns type-safe access to indentation settings.
func (c *Config) Indent() IndentConfig {
	return IndentConfig{
		Offset:     c.getIntOr("indent.offset", 2),
		Indenters:  c.getStringSliceOr("indent.indenters", nil),
		Dedenters:  c.getStringSliceOr("indent.dedenters", nil),
		BlockStart: c.getStringSliceOr("indent.blockStart", nil),
		Operators:  c.getStringSliceOr("indent.operators", nil),
	}
}

// Suggest returns type-safe access to suggest tool settings.
func (c *Config) Suggest() SuggestConfig {
	return SuggestConfig{
		Command: c.getStringOr("suggest.command", "nimsuggest"),
		Args:    c.getStringSliceOr("suggest.args", nil),
		Timeout: c.getDurationOr("suggest.timeout", 30*time.Second),
	}
}

// Highlight returns type-safe access to highlighting settings.
func (c *Config) Highlight() HighlightConfig {
	return HighlightConfig{
		Theme: c.getStringOr("highlight.theme", "dark"),
	}
}

// Files returns type-safe access to file handling settings.
func (c *Config) Files() FilesConfig {
	return FilesConfig{
		Extensions: c.getStringSliceOr("files.extensions", []string{".nim", ".nims"}),
		Exclude:    c.getStringSliceOr("files.exclude", []string{".git", "nimcache", "nimbledeps"}),
	}
}

// Logging returns type-safe access to logging settings.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level: c.getStringOr("logging.level", "info"),
		File:  c.getStringOr("logging.file", ""),
	}
}

// getStringOr returns the string at path or the default on any error.
func (c *Config) getStringOr(path, def string) string {
	if v, err := c.GetString(path); err == nil {
		return v
	}
	return def
}

// getIntOr returns the int at path or the default on any error.
func (c *Config) getIntOr(path string, def int) int {
	if v, err := c.GetInt(path); err == nil {
		return v
	}
	return def
}

// getStringSliceOr returns the string slice at path or the default.
func (c *Config) getStringSliceOr(path string, def []string) []string {
	if v, err := c.GetStringSlice(path); err == nil {
		return v
	}
	return def
}

// getDurationOr returns the duration at path or the default.
func (c *Config) getDurationOr(path string, def time.Duration) time.Duration {
	if v, err := c.GetDuration(path); err == nil {
		return v
	}
	return def
}
