package suggest

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/dshills/nimstorm/internal/logging"
)

// startMock wires a transport to a mock tool process. The handle function
// receives each request line and writes the raw response to w.
func startMock(t *testing.T, handle func(request string, w io.Writer)) *transport {
	t.Helper()

	toolIn, clientOut := io.Pipe()
	clientIn, toolOut := io.Pipe()

	tr := newTransport(clientOut, clientIn, logging.Null)

	go func() {
		reader := bufio.NewReader(toolIn)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			handle(line[:len(line)-1], toolOut)
		}
	}()

	t.Cleanup(func() {
		tr.close()
		clientOut.Close()
		toolOut.Close()
	})

	return tr
}

func TestTransport_Call(t *testing.T) {
	tr := startMock(t, func(request string, w io.Writer) {
		if request != `def "foo.nim":3:7` {
			t.Errorf("unexpected request %q", request)
		}
		io.WriteString(w, "def\tskProc\tfoo.bar\tproc (x: int)\t/tmp/foo.nim\t1\t5\t\"\"\n")
		io.WriteString(w, "def\tskVar\tfoo.baz\tint\t/tmp/foo.nim\t2\t0\t\"\"\n")
		io.WriteString(w, "\n")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	records, err := tr.call(ctx, `def "foo.nim":3:7`)
	if err != nil {
		t.Fatalf("call() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d: %v", len(records), records)
	}
	if records[0] != "def\tskProc\tfoo.bar\tproc (x: int)\t/tmp/foo.nim\t1\t5\t\"\"" {
		t.Errorf("unexpected first record %q", records[0])
	}
}

func TestTransport_EmptyResponse(t *testing.T) {
	tr := startMock(t, func(request string, w io.Writer) {
		io.WriteString(w, "\n")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	records, err := tr.call(ctx, `use "foo.nim":1:0`)
	if err != nil {
		t.Fatalf("call() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %v", records)
	}
}

func TestTransport_CallTimeout(t *testing.T) {
	tr := startMock(t, func(request string, w io.Writer) {
		// Never respond.
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := tr.call(ctx, `sug "slow.nim":1:0`)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}

func TestTransport_PurgesStaleLines(t *testing.T) {
	tr := startMock(t, func(request string, w io.Writer) {
		io.WriteString(w, "sug\tskLet\tfoo.fresh\tint\t/tmp/foo.nim\t4\t2\t\"\"\n\n")
	})

	// Lines left behind by a query that timed out before its response came.
	tr.lines <- "sug\tskLet\tfoo.stale\tint\t/tmp/foo.nim\t1\t0\t\"\""
	tr.lines <- ""

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	records, err := tr.call(ctx, `sug "foo.nim":4:2`)
	if err != nil {
		t.Fatalf("call() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d: %v", len(records), records)
	}
	if records[0] != "sug\tskLet\tfoo.fresh\tint\t/tmp/foo.nim\t4\t2\t\"\"" {
		t.Errorf("stale record survived purge: %q", records[0])
	}
}

func TestTransport_EOFMidResponse(t *testing.T) {
	toolIn, clientOut := io.Pipe()
	clientIn, toolOut := io.Pipe()

	tr := newTransport(clientOut, clientIn, logging.Null)
	t.Cleanup(func() {
		tr.close()
		clientOut.Close()
	})

	go func() {
		reader := bufio.NewReader(toolIn)
		if _, err := reader.ReadString('\n'); err != nil {
			return
		}
		// One record, then the process dies without the blank terminator.
		io.WriteString(toolOut, "def\tskProc\tfoo.bar\tproc ()\t/tmp/foo.nim\t1\t0\t\"\"\n")
		toolOut.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := tr.call(ctx, `def "foo.nim":1:0`)
	if !errors.Is(err, ErrShutdown) {
		t.Errorf("expected ErrShutdown, got %v", err)
	}
}

func TestTransport_CallAfterClose(t *testing.T) {
	tr := startMock(t, func(request string, w io.Writer) {})
	tr.close()

	_, err := tr.call(context.Background(), `sug "foo.nim":1:0`)
	if !errors.Is(err, ErrShutdown) {
		t.Errorf("expected ErrShutdown, got %v", err)
	}
}
