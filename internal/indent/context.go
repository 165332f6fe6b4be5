package indent

import (
	"fmt"

	"github.com/dshills/nimstorm/internal/textbuf"
)

// Kind identifies why a line indents the way it does.
type Kind uint8

const (
	// NoIndent means no context applies; the line indents to column 0.
	NoIndent Kind = iota
	// InsideString means the line starts inside a multi-line string literal.
	InsideString
	// InsideParen means the line starts inside an unclosed bracket.
	InsideParen
	// AfterBlockStart means the previous code line opens a block.
	AfterBlockStart
	// AfterOperator means the statement is continued across lines by a
	// dangling or leading operator.
	AfterOperator
	// AfterLine means the line follows an ordinary statement.
	AfterLine
)

// String returns the string representation of the context kind.
func (k Kind) String() string {
	switch k {
	case NoIndent:
		return "no-indent"
	case InsideString:
		return "inside-string"
	case InsideParen:
		return "inside-paren"
	case AfterBlockStart:
		return "after-block-start"
	case AfterOperator:
		return "after-operator"
	case AfterLine:
		return "after-line"
	default:
		return "unknown"
	}
}

// Context is the classification result for a position.
type Context struct {
	// Kind tags the context.
	Kind Kind
	// Anchor is the position the context is relative to: the opening
	// bracket, the string's opening quote, the statement that opens the
	// block, the operator, or the previous line's first content.
	Anchor textbuf.Pos
	// At is the position classification was requested for.
	At textbuf.Pos

	// limit bounds statement navigation when the context was found inside
	// an unclosed bracket. Zero means unbounded.
	limit textbuf.Pos
}

// String returns a human-readable representation of the context.
func (c Context) String() string {
	return fmt.Sprintf("%s@%d", c.Kind, c.Anchor)
}
