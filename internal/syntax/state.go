package syntax

import "github.com/dshills/nimstorm/internal/textbuf"

// StringKind identifies the kind of string literal a scan position is in.
type StringKind uint8

const (
	// StrNone means not inside a string literal.
	StrNone StringKind = iota
	// StrDouble is a plain double quoted string with backslash escapes.
	StrDouble
	// StrTriple is a triple quoted string; the only kind that spans lines.
	StrTriple
	// StrRaw is a raw string literal (r"..." or any ident"..." form),
	// where a doubled quote is a literal quote and backslash is plain.
	StrRaw
)

// String returns the string representation of the string kind.
func (k StringKind) String() string {
	switch k {
	case StrNone:
		return "none"
	case StrDouble:
		return "double"
	case StrTriple:
		return "triple"
	case StrRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Paren records one unclosed opening bracket.
type Paren struct {
	Pos textbuf.Pos // offset of the opening bracket
	Ch  byte        // '(', '[' or '{'
}

// closes reports whether the closing bracket ch matches this opener.
func (p Paren) closes(ch byte) bool {
	switch p.Ch {
	case '(':
		return ch == ')'
	case '[':
		return ch == ']'
	case '{':
		return ch == '}'
	}
	return false
}

// State is the scan state at a position. The zero value is the state at the
// start of a buffer.
type State struct {
	// Str is the string literal kind the position is inside, if any.
	Str StringKind
	// StrStart is the offset of the opening quote when Str != StrNone.
	StrStart textbuf.Pos
	// Comment is the block comment nesting depth.
	Comment int
	// LineComment is set inside a line comment. It never survives a line
	// boundary.
	LineComment bool
	// Parens is the stack of unclosed brackets, outermost first.
	// Callers must not mutate it.
	Parens []Paren
}

// InString reports whether the state is inside any string literal.
func (s State) InString() bool {
	return s.Str != StrNone
}

// InComment reports whether the state is inside a comment.
func (s State) InComment() bool {
	return s.Comment > 0 || s.LineComment
}

// Depth returns the number of unclosed brackets.
func (s State) Depth() int {
	return len(s.Parens)
}

// Inner returns the innermost unclosed bracket.
func (s State) Inner() (Paren, bool) {
	if len(s.Parens) == 0 {
		return Paren{}, false
	}
	return s.Parens[len(s.Parens)-1], true
}

// Outer returns the outermost unclosed bracket.
func (s State) Outer() (Paren, bool) {
	if len(s.Parens) == 0 {
		return Paren{}, false
	}
	return s.Parens[0], true
}

// clone returns a copy whose paren stack is safe to mutate.
func (s State) clone() State {
	c := s
	if len(s.Parens) > 0 {
		c.Parens = append([]Paren(nil), s.Parens...)
	}
	return c
}

// SpanKind classifies a span of line text.
type SpanKind uint8

const (
	// SpanCode is ordinary source text.
	SpanCode SpanKind = iota
	// SpanString covers a string or character literal including quotes.
	SpanString
	// SpanComment covers a comment including its markers.
	SpanComment
)

// Span is a half-open byte range [Start, End) within a single line,
// classified by kind.
type Span struct {
	Kind  SpanKind
	Start int
	End   int
}
