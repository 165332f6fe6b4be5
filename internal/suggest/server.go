package suggest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/nimstorm/internal/logging"
)

// Status represents the lifecycle state of the tool process.
type Status int32

const (
	// StatusStopped indicates the process is not running.
	StatusStopped Status = iota
	// StatusStarting indicates the process is being started.
	StatusStarting
	// StatusRunning indicates the process is ready for queries.
	StatusRunning
	// StatusStopping indicates the process is being shut down.
	StatusStopping
	// StatusFailed indicates the process exited unexpectedly or failed to start.
	StatusFailed
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "stopped"
	case StatusStarting:
		return "starting"
	case StatusRunning:
		return "running"
	case StatusStopping:
		return "stopping"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Defaults for Config.
const (
	// DefaultCommand is the tool binary looked up on PATH.
	DefaultCommand = "nimsuggest"
	// DefaultTimeout bounds a single query.
	DefaultTimeout = 30 * time.Second
)

// stopGrace is how long Stop waits for a clean exit before killing.
const stopGrace = 3 * time.Second

// Config configures the tool process.
type Config struct {
	// Command is the tool binary. Defaults to DefaultCommand.
	Command string
	// Args are extra arguments placed before the project file.
	Args []string
	// WorkDir is the process working directory. Defaults to inherited.
	WorkDir string
	// Timeout bounds each query. Defaults to DefaultTimeout.
	Timeout time.Duration
	// Logger receives process lifecycle and protocol logs.
	Logger *logging.Logger
}

// Server manages one long-lived tool process for a project file.
type Server struct {
	id      string
	project string
	config  Config
	logger  *logging.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	tr     *transport
	status atomic.Int32
	exitCh chan error
}

// NewServer creates a server for the given project file. The process is
// not started until Start is called.
func NewServer(project string, config Config) *Server {
	if config.Command == "" {
		config.Command = DefaultCommand
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	logger := config.Logger
	if logger == nil {
		logger = logging.Null
	}

	return &Server{
		id:      uuid.NewString(),
		project: project,
		config:  config,
		logger:  logger.WithComponent("suggest").WithField("project", project),
		exitCh:  make(chan error, 1),
	}
}

// ID returns the server's session identifier.
func (s *Server) ID() string {
	return s.id
}

// Project returns the project file the process was started for.
func (s *Server) Project() string {
	return s.project
}

// Status returns the current process status.
func (s *Server) Status() Status {
	return Status(s.status.Load())
}

// Running reports whether the process is ready for queries.
func (s *Server) Running() bool {
	return s.Status() == StatusRunning
}

func (s *Server) setStatus(status Status) {
	s.status.Store(int32(status))
}

// Start launches the tool process.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.Status() {
	case StatusRunning, StatusStarting:
		return ErrAlreadyStarted
	}

	s.setStatus(StatusStarting)
	if err := s.startProcess(ctx); err != nil {
		s.setStatus(StatusFailed)
		return err
	}

	s.logger.Info("started %s (pid %d)", s.config.Command, s.cmd.Process.Pid)
	return nil
}

// startProcess spawns the tool with its stdio wired to the transport.
func (s *Server) startProcess(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	args := make([]string, 0, len(s.config.Args)+2)
	args = append(args, "--stdin")
	args = append(args, s.config.Args...)
	args = append(args, s.project)

	cmd := exec.Command(s.config.Command, args...)
	cmd.Dir = s.config.WorkDir

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		stdin.Close()
		stdout.Close()
		return fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		stdin.Close()
		stdout.Close()
		stderr.Close()
		return fmt.Errorf("starting %s: %w", s.config.Command, err)
	}

	s.cmd = cmd
	s.stdin = stdin
	s.tr = newTransport(stdin, stdout, s.logger)

	// Mark running before the monitor starts so a crash can only ever
	// downgrade the status, never race a later upgrade.
	s.setStatus(StatusRunning)

	go s.drainStderr(stderr)
	go s.monitor()

	return nil
}

// monitor waits for the process to exit and records unexpected exits.
func (s *Server) monitor() {
	err := s.cmd.Wait()

	switch s.Status() {
	case StatusStopping, StatusStopped:
		// Expected exit.
	default:
		s.setStatus(StatusFailed)
		s.logger.Warn("process exited unexpectedly: %v", err)
	}

	select {
	case s.exitCh <- err:
	default:
	}
}

// drainStderr forwards the tool's stderr to the logger.
func (s *Server) drainStderr(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		s.logger.Debug("stderr: %s", scanner.Text())
	}
}

// Stop shuts the process down, killing it if it does not exit within the
// grace period. Stopping an already stopped server is a no-op.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.Status() {
	case StatusStopped, StatusStarting:
		return nil
	}
	wasFailed := s.Status() == StatusFailed
	s.setStatus(StatusStopping)

	if s.tr != nil {
		s.tr.close()
	}
	// Closing stdin asks the tool to exit.
	if s.stdin != nil {
		s.stdin.Close()
	}

	if s.cmd != nil && s.cmd.Process != nil && !wasFailed {
		select {
		case <-s.exitCh:
		case <-time.After(stopGrace):
			s.logger.Warn("no exit after %s, killing", stopGrace)
			if err := s.cmd.Process.Kill(); err != nil {
				s.setStatus(StatusStopped)
				return fmt.Errorf("killing process: %w", err)
			}
			<-s.exitCh
		}
	}

	s.setStatus(StatusStopped)
	s.logger.Info("stopped")
	return nil
}

// Query sends one request and returns the parsed response records.
// Response lines that do not parse as records are skipped; the tool mixes
// informational output into stdout on some versions.
func (s *Server) Query(ctx context.Context, method Method, q Query) ([]Entry, error) {
	if !s.Running() {
		err := error(ErrNotRunning)
		if s.Status() == StatusFailed {
			err = ErrCrashed
		}
		return nil, &QueryError{Method: method, Path: q.FilePath, Line: q.Line, Col: q.Col, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	request := encodeRequest(method, q)
	s.logger.Debug("query: %s", request)

	lines, err := s.tr.call(ctx, request)
	if err != nil {
		if errors.Is(err, ErrShutdown) && s.Status() == StatusFailed {
			err = ErrCrashed
		}
		return nil, &QueryError{Method: method, Path: q.FilePath, Line: q.Line, Col: q.Col, Err: err}
	}

	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		entry, perr := parseEntry(line)
		if perr != nil {
			s.logger.Debug("skipping response line: %v", perr)
			continue
		}
		entries = append(entries, entry)
	}

	s.logger.Debug("%s returned %d records", method, len(entries))
	return entries, nil
}
