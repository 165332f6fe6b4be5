package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTree creates the named files under dir, making parent directories
// as needed. Entries ending in "/" become empty directories.
func writeTree(t *testing.T, dir string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(dir, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			if err := os.MkdirAll(full, 0o755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("# placeholder\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFindRoot_NimbleMarker(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "app.nimble", "src/app.nim", "src/deep/util.nim")

	root, err := FindRoot(filepath.Join(dir, "src", "deep"))
	if err != nil {
		t.Fatalf("FindRoot() error = %v", err)
	}
	if root.Dir != dir {
		t.Errorf("Dir = %q, want %q", root.Dir, dir)
	}
	if root.Marker != "app.nimble" {
		t.Errorf("Marker = %q, want %q", root.Marker, "app.nimble")
	}
}

func TestFindRoot_FromFile(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "app.nimble", "src/app.nim")

	root, err := FindRoot(filepath.Join(dir, "src", "app.nim"))
	if err != nil {
		t.Fatalf("FindRoot() error = %v", err)
	}
	if root.Dir != dir {
		t.Errorf("Dir = %q, want %q", root.Dir, dir)
	}
}

func TestFindRoot_Markers(t *testing.T) {
	tests := []struct {
		name   string
		marker string
		isDir  bool
	}{
		{"config nims", "config.nims", false},
		{"nim cfg", "nim.cfg", false},
		{"git directory", ".git", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.isDir {
				if err := os.MkdirAll(filepath.Join(dir, tt.marker), 0o755); err != nil {
					t.Fatal(err)
				}
			} else {
				writeTree(t, dir, tt.marker)
			}
			writeTree(t, dir, "sub/x.nim")

			root, err := FindRoot(filepath.Join(dir, "sub"))
			if err != nil {
				t.Fatalf("FindRoot() error = %v", err)
			}
			if root.Dir != dir {
				t.Errorf("Dir = %q, want %q", root.Dir, dir)
			}
			if root.Marker != tt.marker {
				t.Errorf("Marker = %q, want %q", root.Marker, tt.marker)
			}
		})
	}
}

func TestFindRoot_NimblePriority(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "app.nimble", "nim.cfg", ".git/")

	root, err := FindRoot(dir)
	if err != nil {
		t.Fatalf("FindRoot() error = %v", err)
	}
	if root.Marker != "app.nimble" {
		t.Errorf("Marker = %q, want %q", root.Marker, "app.nimble")
	}
}

func TestFindRoot_NearestWins(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, ".git/", "vendor/lib/lib.nimble", "vendor/lib/src/lib.nim")

	root, err := FindRoot(filepath.Join(dir, "vendor", "lib", "src"))
	if err != nil {
		t.Fatalf("FindRoot() error = %v", err)
	}
	want := filepath.Join(dir, "vendor", "lib")
	if root.Dir != want {
		t.Errorf("Dir = %q, want %q", root.Dir, want)
	}
	if root.Marker != "lib.nimble" {
		t.Errorf("Marker = %q, want %q", root.Marker, "lib.nimble")
	}
}

func TestFindRoot_NotFound(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "loose.nim")

	_, err := FindRoot(dir)
	if !errors.Is(err, ErrNoRoot) {
		t.Errorf("FindRoot() error = %v, want ErrNoRoot", err)
	}
}

func TestRoot_Contains(t *testing.T) {
	dir := t.TempDir()
	root := Root{Dir: dir}

	if !root.Contains(filepath.Join(dir, "src", "app.nim")) {
		t.Error("Contains() should include nested paths")
	}
	if !root.Contains(dir) {
		t.Error("Contains() should include the root itself")
	}
	if root.Contains(filepath.Dir(dir)) {
		t.Error("Contains() should exclude the parent directory")
	}
	if root.Contains(dir + "sibling") {
		t.Error("Contains() should exclude siblings sharing a prefix")
	}
}

func TestRoot_Rel(t *testing.T) {
	dir := t.TempDir()
	root := Root{Dir: dir}

	rel, err := root.Rel(filepath.Join(dir, "src", "app.nim"))
	if err != nil {
		t.Fatalf("Rel() error = %v", err)
	}
	if rel != filepath.Join("src", "app.nim") {
		t.Errorf("Rel() = %q, want %q", rel, filepath.Join("src", "app.nim"))
	}
}
