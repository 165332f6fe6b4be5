package indent

import (
	"github.com/dshills/nimstorm/internal/logging"
	"github.com/dshills/nimstorm/internal/syntax"
	"github.com/dshills/nimstorm/internal/textbuf"
)

// Engine computes indentation for one buffer. It owns a syntax scanner over
// the buffer and re-reads it after every mutation, so callers can freely
// interleave queries and edits.
//
// Engine is not safe for concurrent use; the editor protocol it serves is
// synchronous.
type Engine struct {
	buf   *textbuf.Buffer
	scan  *syntax.Scanner
	rules compiledRules
	log   *logging.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules replaces the default Nim rule set.
func WithRules(r Rules) Option {
	return func(e *Engine) {
		e.rules = compile(r)
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an engine over the given buffer.
func New(buf *textbuf.Buffer, opts ...Option) *Engine {
	e := &Engine{
		buf:   buf,
		scan:  syntax.NewScanner(buf),
		rules: compile(DefaultRules()),
		log:   logging.Null,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Buffer returns the buffer the engine operates on.
func (e *Engine) Buffer() *textbuf.Buffer {
	return e.buf
}

// Offset returns the configured indentation step.
func (e *Engine) Offset() int {
	return e.rules.Offset
}

// TargetColumn classifies pos and returns the indentation column its line
// should have.
func (e *Engine) TargetColumn(pos textbuf.Pos) int {
	ctx := e.Classify(pos)
	col := e.Calculate(ctx)
	e.log.Debug("target column %d for %s", col, ctx)
	return col
}

// TargetForLine returns the indentation column for a line.
func (e *Engine) TargetForLine(line int) int {
	return e.TargetColumn(e.buf.LineStart(line))
}
