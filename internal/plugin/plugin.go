// Package plugin loads user rule scripts through a sandboxed Lua
// runtime. A rules script extends or trims the word sets driving
// indentation, for example:
//
//	nimstorm.add_dedenters("elsewise")
//	nimstorm.remove_operators("->")
//
// Scripts run once at load time with a bounded execution time and no
// access to the file system or the process environment.
package plugin

import (
	"fmt"
	"os"
)

// DefaultRulesFile is the conventional rules script name, looked up in
// the user config directory and the project root.
const DefaultRulesFile = "rules.lua"

// LoadRules runs the script at path in a fresh sandboxed state and
// returns the edits it requested. A missing script is not an error and
// yields empty changes.
func LoadRules(path string) (Changes, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Changes{}, nil
		}
		return Changes{}, err
	}

	s := NewState()
	defer s.Close()

	if err := s.LoadFile(path); err != nil {
		return Changes{}, fmt.Errorf("rules script %s: %w", path, err)
	}
	return s.Changes(), nil
}
