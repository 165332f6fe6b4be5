package indent

import "github.com/dshills/nimstorm/internal/textbuf"

// Session adds level cycling on top of an Engine for interactive use. The
// first indent request on a line applies the computed target; a repeated
// request on the same line steps down through the candidate levels,
// wrapping around past column 0.
//
// Levels are recomputed whenever the request is not a repeat, targets a
// different line, or the buffer changed under the session.
type Session struct {
	eng    *Engine
	levels Levels
	line   int
	rev    uint64
	valid  bool
}

// NewSession creates a session over an engine.
func NewSession(eng *Engine) *Session {
	return &Session{eng: eng}
}

// Engine returns the underlying engine.
func (s *Session) Engine() *Engine {
	return s.eng
}

// IndentLine indents line, cycling when repeated is set and the session
// still matches the line and buffer state. It returns the adjusted cursor
// and the applied column.
func (s *Session) IndentLine(line int, cursor textbuf.Pos, repeated bool) (textbuf.Pos, int, error) {
	buf := s.eng.Buffer()

	var col int
	if repeated && s.valid && s.line == line && s.rev == buf.Revision() {
		col = s.levels.Toggle()
	} else {
		target := s.eng.TargetForLine(line)
		s.levels = ComputeLevels(target, s.eng.rules.Offset)
		col = s.levels.Current()
	}

	newCursor, err := s.eng.Apply(line, col, cursor)
	if err != nil {
		s.valid = false
		return cursor, 0, err
	}

	s.line = line
	s.rev = buf.Revision()
	s.valid = true
	return newCursor, col, nil
}

// Levels returns the candidate columns of the current cycle, or nil when
// the session holds none.
func (s *Session) Levels() []int {
	if !s.valid {
		return nil
	}
	return s.levels.Columns()
}

// Reset discards the session state, forcing the next request to recompute.
func (s *Session) Reset() {
	s.valid = false
}
