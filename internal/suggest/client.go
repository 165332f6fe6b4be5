// Package suggest provides a client for the nimsuggest tool.
//
// nimsuggest is a long-lived process started per project file. It speaks a
// line protocol on stdin/stdout: a request names a method, a file position
// and optionally a dirty copy of the file; the response is a run of
// tab-separated records terminated by a blank line. The client manages the
// process lifecycle and exposes the four query methods the editor layer
// needs: completion suggestions, invocation context, definition and
// usages.
//
// Unsaved buffer contents are handed to the tool by staging them to disk
// and passing the staged path in Query.DirtyPath; the tool reads dirty
// state from files, not from the protocol.
package suggest

import (
	"context"
)

// Client is the high-level interface to the tool for one project.
type Client struct {
	srv *Server
}

// NewClient creates a client for the given project file. Start must be
// called before querying.
func NewClient(project string, config Config) *Client {
	return &Client{srv: NewServer(project, config)}
}

// Start launches the tool process.
func (c *Client) Start(ctx context.Context) error {
	return c.srv.Start(ctx)
}

// Stop shuts the tool process down.
func (c *Client) Stop() error {
	return c.srv.Stop()
}

// Running reports whether the tool process is ready for queries.
func (c *Client) Running() bool {
	return c.srv.Running()
}

// ID returns the client's session identifier.
func (c *Client) ID() string {
	return c.srv.ID()
}

// Suggestions returns completion candidates at the query position. An
// empty result is not an error; there may simply be nothing to complete.
func (c *Client) Suggestions(ctx context.Context, q Query) ([]Entry, error) {
	return c.srv.Query(ctx, MethodSug, q)
}

// ContextSuggestions returns the invocation context at the query position,
// typically the signatures of the call the position sits inside.
func (c *Client) ContextSuggestions(ctx context.Context, q Query) ([]Entry, error) {
	return c.srv.Query(ctx, MethodCon, q)
}

// Definition returns the definition of the symbol at the query position.
// A symbol with no known definition returns ErrLookupFailed.
func (c *Client) Definition(ctx context.Context, q Query) (Entry, error) {
	entries, err := c.srv.Query(ctx, MethodDef, q)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, &QueryError{Method: MethodDef, Path: q.FilePath, Line: q.Line, Col: q.Col, Err: ErrLookupFailed}
	}
	return entries[0], nil
}

// Usages returns every known use of the symbol at the query position,
// definition included. A symbol with no known uses returns ErrLookupFailed.
func (c *Client) Usages(ctx context.Context, q Query) ([]Entry, error) {
	entries, err := c.srv.Query(ctx, MethodUse, q)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, &QueryError{Method: MethodUse, Path: q.FilePath, Line: q.Line, Col: q.Col, Err: ErrLookupFailed}
	}
	return entries, nil
}
