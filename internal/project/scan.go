package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/karrick/godirwalk"
)

// ScanOptions configures source enumeration.
type ScanOptions struct {
	// Extensions lists the file extensions to include, with leading dot.
	Extensions []string

	// Exclude lists glob patterns matched against entry base names.
	// A matching directory is skipped with its whole subtree.
	Exclude []string
}

// DefaultScanOptions returns the options used for empty fields.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		Extensions: []string{".nim", ".nims"},
		Exclude:    []string{".git", "nimcache", "nimbledeps"},
	}
}

// Sources walks root and returns the absolute paths of all matching
// source files, sorted. Unreadable entries are skipped.
func Sources(root string, opts ScanOptions) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}

	defaults := DefaultScanOptions()
	if len(opts.Extensions) == 0 {
		opts.Extensions = defaults.Extensions
	}
	if len(opts.Exclude) == 0 {
		opts.Exclude = defaults.Exclude
	}

	var files []string
	err = godirwalk.Walk(abs, &godirwalk.Options{
		Unsorted: true,
		Callback: func(path string, de *godirwalk.Dirent) error {
			if path == abs {
				return nil
			}
			if matchAny(opts.Exclude, de.Name()) {
				if de.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if de.IsDir() {
				return nil
			}
			if hasExtension(opts.Extensions, de.Name()) {
				files = append(files, path)
			}
			return nil
		},
		ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
			return godirwalk.SkipNode
		},
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// matchAny reports whether name matches any of the glob patterns.
func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

func hasExtension(extensions []string, name string) bool {
	ext := filepath.Ext(name)
	for _, want := range extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}
