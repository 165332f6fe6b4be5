package suggest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dshills/nimstorm/internal/logging"
)

// transport handles the tool's line protocol over stdio. Requests are
// single lines; each response is a run of record lines terminated by a
// blank line. The protocol is strictly serial, so calls are queued behind
// a mutex rather than multiplexed by ID.
type transport struct {
	writer io.Writer
	wmu    sync.Mutex

	// qmu serializes calls; the tool answers one query at a time.
	qmu   sync.Mutex
	lines chan string

	// collecting is set while a call is waiting on response lines. Lines
	// that arrive outside a call (startup banner, stale output from a
	// timed-out query) are discarded.
	collecting atomic.Bool

	closed atomic.Bool
	done   chan struct{}

	logger *logging.Logger
}

// newTransport creates a transport over the tool's stdin and stdout pipes
// and starts its read loop.
func newTransport(w io.Writer, r io.Reader, logger *logging.Logger) *transport {
	t := &transport{
		writer: w,
		lines:  make(chan string, 64),
		done:   make(chan struct{}),
		logger: logger,
	}
	go t.readLoop(r)
	return t
}

// close marks the transport shut down. The owner closes the underlying
// pipes, which ends the read loop.
func (t *transport) close() {
	t.closed.Store(true)
}

// call sends one request line and collects response lines until the blank
// terminator. It returns the raw record lines, unparsed.
func (t *transport) call(ctx context.Context, request string) ([]string, error) {
	if t.closed.Load() {
		return nil, ErrShutdown
	}

	t.qmu.Lock()
	defer t.qmu.Unlock()

	// Purge lines buffered by an earlier call that gave up on its response.
	for {
		select {
		case line := <-t.lines:
			t.logger.Debug("purging stale line: %s", line)
			continue
		default:
		}
		break
	}

	t.collecting.Store(true)
	defer t.collecting.Store(false)

	if err := t.send(request); err != nil {
		return nil, err
	}

	var records []string
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.done:
			return nil, ErrShutdown
		case line := <-t.lines:
			if line == "" {
				return records, nil
			}
			records = append(records, line)
		}
	}
}

// send writes a single request line.
func (t *transport) send(request string) error {
	t.wmu.Lock()
	defer t.wmu.Unlock()

	if _, err := io.WriteString(t.writer, request+"\n"); err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	return nil
}

// readLoop reads lines from the tool until EOF and feeds them to the
// active call, if any.
func (t *transport) readLoop(r io.Reader) {
	defer close(t.done)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if !t.collecting.Load() {
			if line != "" {
				t.logger.Debug("discarding line outside call: %s", line)
			}
			continue
		}

		select {
		case t.lines <- line:
		default:
			t.logger.Debug("dropping line, no reader: %s", line)
		}
	}

	if err := scanner.Err(); err != nil && !t.closed.Load() {
		t.logger.Error("read loop: %v", err)
	}
}
