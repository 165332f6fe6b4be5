package syntax

import (
	"sort"
	"strings"

	"github.com/dshills/nimstorm/internal/textbuf"
)

// Source is the buffer view the scanner analyzes. *textbuf.Buffer satisfies
// it.
type Source interface {
	LineCount() int
	Line(line int) string
	LineStart(line int) textbuf.Pos
	LineAt(pos textbuf.Pos) int
	Revision() uint64
}

// Scanner caches per-line scan states for a source and answers position
// queries. States are rebuilt lazily when the source revision changes.
// Scanner is not safe for concurrent use.
type Scanner struct {
	src    Source
	rev    uint64
	valid  bool
	states []State
}

// NewScanner creates a scanner over the given source.
func NewScanner(src Source) *Scanner {
	return &Scanner{src: src}
}

// sync rebuilds the per-line states if the source has changed.
func (s *Scanner) sync() {
	if s.valid && s.rev == s.src.Revision() {
		return
	}
	n := s.src.LineCount()
	s.states = s.states[:0]
	var st State
	for i := 0; i < n; i++ {
		s.states = append(s.states, st)
		st, _ = ScanLine(s.src.Line(i), s.src.LineStart(i), st)
	}
	s.rev = s.src.Revision()
	s.valid = true
}

// LineState returns the scan state at the start of a line.
func (s *Scanner) LineState(line int) State {
	s.sync()
	if line < 0 || line >= len(s.states) {
		return State{}
	}
	return s.states[line]
}

// StateAt returns the scan state at an arbitrary offset.
func (s *Scanner) StateAt(pos textbuf.Pos) State {
	s.sync()
	line := s.src.LineAt(pos)
	start := s.src.LineStart(line)
	return StateThrough(s.src.Line(line), start, s.LineState(line), pos-start)
}

// LineSpans returns the classified spans of a line.
func (s *Scanner) LineSpans(line int) []Span {
	s.sync()
	_, spans := ScanLine(s.src.Line(line), s.src.LineStart(line), s.LineState(line))
	return spans
}

// InString reports whether pos is inside a string literal and returns the
// offset of its opening quote.
func (s *Scanner) InString(pos textbuf.Pos) (textbuf.Pos, bool) {
	st := s.StateAt(pos)
	if !st.InString() {
		return 0, false
	}
	return st.StrStart, true
}

// InComment reports whether pos is inside a comment.
func (s *Scanner) InComment(pos textbuf.Pos) bool {
	return s.StateAt(pos).InComment()
}

// InCommentOrString reports whether pos is inside a comment or a string.
func (s *Scanner) InCommentOrString(pos textbuf.Pos) bool {
	st := s.StateAt(pos)
	return st.InComment() || st.InString()
}

// InnerParen returns the innermost unclosed bracket open at pos.
func (s *Scanner) InnerParen(pos textbuf.Pos) (Paren, bool) {
	return s.StateAt(pos).Inner()
}

// NarrowToParen returns the interior of the innermost bracket unclosed at
// pos: everything between the opening bracket and its closer. A bracket
// that never closes narrows through the end of the source. ok is false
// when pos is not inside a bracket.
func (s *Scanner) NarrowToParen(pos textbuf.Pos) (textbuf.Range, bool) {
	open, ok := s.InnerParen(pos)
	if !ok {
		return textbuf.Range{}, false
	}

	n := s.src.LineCount()
	for l := s.src.LineAt(pos); l < n; l++ {
		if l+1 < n && stackHolds(s.LineState(l+1).Parens, open) {
			continue
		}

		// The bracket leaves the stack on this line, if it ever does. The
		// opener cannot be pushed again, so the first column without it
		// sits just past the closer.
		text := s.src.Line(l)
		base := s.src.LineStart(l)
		st := s.LineState(l)
		lo := 0
		if p := int(pos - base); p > 0 {
			lo = p
		}
		col := lo + sort.Search(len(text)+1-lo, func(c int) bool {
			return !stackHolds(StateThrough(text, base, st, lo+c).Parens, open)
		})
		if col <= len(text) {
			return textbuf.NewRange(open.Pos+1, base+textbuf.Pos(col-1)), true
		}
		break
	}

	end := s.src.LineStart(n-1) + textbuf.Pos(len(s.src.Line(n-1)))
	return textbuf.NewRange(open.Pos+1, end), true
}

// stackHolds reports whether a paren stack still carries the given opener.
func stackHolds(stack []Paren, p Paren) bool {
	for _, q := range stack {
		if q.Pos == p.Pos {
			return true
		}
	}
	return false
}

// ParenDepth returns the number of brackets unclosed at pos.
func (s *Scanner) ParenDepth(pos textbuf.Pos) int {
	return s.StateAt(pos).Depth()
}

// CodeEnd returns the column just past the last code or string character of
// a line, excluding trailing whitespace and comments. Lines with no such
// content return 0.
func (s *Scanner) CodeEnd(line int) int {
	s.sync()
	text := s.src.Line(line)
	end := 0
	for _, sp := range s.LineSpans(line) {
		switch sp.Kind {
		case SpanCode:
			for j := sp.End; j > sp.Start; j-- {
				if !isSpaceByte(text[j-1]) {
					if j > end {
						end = j
					}
					break
				}
			}
		case SpanString:
			if sp.End > end {
				end = sp.End
			}
		}
	}
	return end
}

// CommentOnly reports whether a line contains a comment and nothing else.
// Blank lines are not comment-only.
func (s *Scanner) CommentOnly(line int) bool {
	s.sync()
	if strings.TrimSpace(s.src.Line(line)) == "" {
		return false
	}
	return s.CodeEnd(line) == 0
}
