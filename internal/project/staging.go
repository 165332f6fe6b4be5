package project

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Staging manages on-disk copies of unsaved buffer content. nimsuggest
// reads dirty state from a file, so a query against a modified buffer
// first stages the buffer here and passes the staged path along.
type Staging struct {
	mu     sync.Mutex
	dir    string
	files  map[string]string
	closed bool
}

// NewStaging creates a staging area backed by a fresh temp directory.
func NewStaging() (*Staging, error) {
	dir, err := os.MkdirTemp("", "nimstorm-dirty-")
	if err != nil {
		return nil, err
	}
	return &Staging{
		dir:   dir,
		files: make(map[string]string),
	}, nil
}

// Dir returns the staging directory path.
func (s *Staging) Dir() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dir
}

// DirtyFile writes content to the staged copy for path and returns the
// staged file path. A source path keeps the same staged file across
// calls, so repeated queries overwrite in place. The source file does
// not need to exist.
func (s *Staging) DirtyFile(path string, content []byte) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrStagingClosed
	}

	staged, ok := s.files[abs]
	if !ok {
		staged = filepath.Join(s.dir, stagedName(abs))
		s.files[abs] = staged
	}
	if err := os.WriteFile(staged, content, 0o600); err != nil {
		return "", err
	}
	return staged, nil
}

// Remove deletes the staged copy for path, if any.
func (s *Staging) Remove(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if staged, ok := s.files[abs]; ok {
		os.Remove(staged)
		delete(s.files, abs)
	}
}

// Close removes the staging directory and all staged files.
func (s *Staging) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.files = nil
	return os.RemoveAll(s.dir)
}

// stagedName keeps the source extension so tools still recognize the
// file type.
func stagedName(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		ext = ".nim"
	}
	return uuid.NewString() + ext
}
