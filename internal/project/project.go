// Package project locates Nim project roots and their source files.
// It also stages unsaved buffer content on disk for tools that can only
// read files, such as nimsuggest.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Root describes a discovered project root.
type Root struct {
	// Dir is the absolute path of the root directory.
	Dir string
	// Marker is the file or directory that identified the root,
	// relative to Dir (for example "foo.nimble" or ".git").
	Marker string
}

// FindRoot walks upward from start until it finds a directory containing
// a project marker: a *.nimble file, config.nims, nim.cfg, or .git.
// start may be a file or a directory. The nearest marker wins; when one
// directory holds several, the nimble file takes priority.
func FindRoot(start string) (Root, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return Root{}, err
	}

	dir := abs
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		dir = filepath.Dir(abs)
	}

	for {
		if marker, ok := findMarker(dir); ok {
			return Root{Dir: dir, Marker: marker}, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Root{}, fmt.Errorf("%w: searched upward from %s", ErrNoRoot, abs)
		}
		dir = parent
	}
}

// Contains reports whether path is inside the root directory.
func (r Root) Contains(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	if abs == r.Dir {
		return true
	}
	prefix := r.Dir
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(abs, prefix)
}

// Rel returns path relative to the root directory.
func (r Root) Rel(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Rel(r.Dir, abs)
}

// findMarker scans a single directory for project markers. A .git entry
// may be a directory or, in worktrees, a plain file.
func findMarker(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	var nimble string
	var configNims, nimCfg, git bool
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case !entry.IsDir() && strings.HasSuffix(name, ".nimble"):
			if nimble == "" || name < nimble {
				nimble = name
			}
		case !entry.IsDir() && name == "config.nims":
			configNims = true
		case !entry.IsDir() && name == "nim.cfg":
			nimCfg = true
		case name == ".git":
			git = true
		}
	}

	switch {
	case nimble != "":
		return nimble, true
	case configNims:
		return "config.nims", true
	case nimCfg:
		return "nim.cfg", true
	case git:
		return ".git", true
	}
	return "", false
}
