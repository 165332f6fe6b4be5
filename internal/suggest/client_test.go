package suggest

import (
	"context"
	"errors"
	"testing"
	"time"
)

// emptyTool answers every request with an empty response.
const emptyTool = `while read -r line; do
  printf '\n'
done
`

// sugTool answers every request with two sug records plus a stray
// informational line that is not a record.
const sugTool = `while read -r line; do
  printf 'Hint: operation successful\n'
  printf 'sug\tskProc\tfoo.bar\tproc (x: int)\t/tmp/foo.nim\t3\t0\t""\n'
  printf 'sug\tskVar\tfoo.count\tint\t/tmp/foo.nim\t5\t4\t""\n'
  printf '\n'
done
`

func startClient(t *testing.T, toolBody string) *Client {
	t.Helper()

	c := NewClient("project.nim", Config{
		Command: fakeTool(t, toolBody),
		Timeout: 5 * time.Second,
	})
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { c.Stop() })
	return c
}

func TestClient_Suggestions(t *testing.T) {
	c := startClient(t, sugTool)

	entries, err := c.Suggestions(context.Background(), Query{FilePath: "foo.nim", Line: 3, Col: 4})
	if err != nil {
		t.Fatalf("Suggestions() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(entries), entries)
	}
	if entries[0].Name() != "bar" || entries[1].Name() != "count" {
		t.Errorf("unexpected names %q, %q", entries[0].Name(), entries[1].Name())
	}
	if entries[1].Forth != "int" {
		t.Errorf("expected forth int, got %q", entries[1].Forth)
	}
}

func TestClient_SuggestionsEmpty(t *testing.T) {
	c := startClient(t, emptyTool)

	entries, err := c.Suggestions(context.Background(), Query{FilePath: "foo.nim", Line: 1, Col: 0})
	if err != nil {
		t.Fatalf("Suggestions() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %v", entries)
	}
}

func TestClient_ContextSuggestions(t *testing.T) {
	c := startClient(t, sugTool)

	entries, err := c.ContextSuggestions(context.Background(), Query{FilePath: "foo.nim", Line: 3, Col: 8})
	if err != nil {
		t.Fatalf("ContextSuggestions() error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
}

func TestClient_DefinitionNotFound(t *testing.T) {
	c := startClient(t, emptyTool)

	_, err := c.Definition(context.Background(), Query{FilePath: "foo.nim", Line: 2, Col: 6})
	if !errors.Is(err, ErrLookupFailed) {
		t.Fatalf("expected ErrLookupFailed, got %v", err)
	}

	var qerr *QueryError
	if !errors.As(err, &qerr) {
		t.Fatalf("expected *QueryError, got %T", err)
	}
	if qerr.Method != MethodDef {
		t.Errorf("expected method def, got %s", qerr.Method)
	}
	if qerr.Line != 2 || qerr.Col != 6 {
		t.Errorf("expected position 2:6, got %d:%d", qerr.Line, qerr.Col)
	}
}

func TestClient_UsagesNotFound(t *testing.T) {
	c := startClient(t, emptyTool)

	_, err := c.Usages(context.Background(), Query{FilePath: "foo.nim", Line: 1, Col: 0})
	if !errors.Is(err, ErrLookupFailed) {
		t.Errorf("expected ErrLookupFailed, got %v", err)
	}
}

func TestClient_NotStarted(t *testing.T) {
	c := NewClient("project.nim", Config{})

	if c.Running() {
		t.Error("expected not running before Start")
	}
	_, err := c.Suggestions(context.Background(), Query{FilePath: "foo.nim", Line: 1, Col: 0})
	if !errors.Is(err, ErrNotRunning) {
		t.Errorf("expected ErrNotRunning, got %v", err)
	}
}
