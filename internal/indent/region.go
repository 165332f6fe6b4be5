package indent

import (
	"fmt"

	"github.com/dshills/nimstorm/internal/textbuf"
)

// regionLines resolves a byte range to the inclusive line span it overlaps.
// A reversed range is normalized; an end sitting exactly on a line start
// does not pull that line in. ok is false when the range overlaps nothing.
func (e *Engine) regionLines(start, end textbuf.Pos) (int, int, bool) {
	if start > end {
		start, end = end, start
	}
	if start == end {
		return 0, 0, false
	}
	first := e.buf.LineAt(start)
	last := e.buf.LineAt(end)
	if last > first && end == e.buf.LineStart(last) {
		last--
	}
	return first, last, true
}

// IndentRegion recomputes indentation for every line overlapping
// [start, end). Blank lines are skipped. Lines inside a multi-line string
// are left alone unless the line leads with the closing delimiter, which is
// realigned with the string's opening line.
//
// Targets are computed fresh per line, so earlier reindents feed the
// context of later ones.
func (e *Engine) IndentRegion(start, end textbuf.Pos) error {
	first, last, ok := e.regionLines(start, end)
	if !ok {
		return nil
	}

	for line := first; line <= last; line++ {
		if e.buf.IsBlank(line) {
			continue
		}
		if e.scan.LineState(line).InString() && !e.leadsWithCloser(line) {
			continue
		}
		col := e.TargetForLine(line)
		if _, err := e.Apply(line, col, 0); err != nil {
			return fmt.Errorf("indent region line %d: %w", line+1, err)
		}
	}
	return nil
}

// leadsWithCloser reports whether a string continuation line's first
// non-whitespace content is the closing quote of its string.
func (e *Engine) leadsWithCloser(line int) bool {
	first := e.buf.FirstNonBlank(line)
	if first >= e.buf.LineEnd(line) {
		return false
	}
	if e.buf.Text()[first] != '"' {
		return false
	}
	// The string must actually end on this line.
	return !e.scan.LineState(line + 1).InString()
}

// ShiftRight adds count columns of indentation to every non-blank line
// overlapping [start, end). A non-positive count defaults to the configured
// offset.
func (e *Engine) ShiftRight(start, end textbuf.Pos, count int) error {
	if count <= 0 {
		count = e.rules.Offset
	}
	first, last, ok := e.regionLines(start, end)
	if !ok {
		return nil
	}

	for line := first; line <= last; line++ {
		if e.buf.IsBlank(line) {
			continue
		}
		col := e.buf.Indentation(line)
		if _, err := e.Apply(line, col+count, 0); err != nil {
			return fmt.Errorf("shift right line %d: %w", line+1, err)
		}
	}
	return nil
}

// ShiftLeft removes count columns of indentation from every non-blank line
// overlapping [start, end). When any such line has fewer than count columns
// the whole shift fails up front and the buffer is untouched. A
// non-positive count defaults to the configured offset.
func (e *Engine) ShiftLeft(start, end textbuf.Pos, count int) error {
	if count <= 0 {
		count = e.rules.Offset
	}
	first, last, ok := e.regionLines(start, end)
	if !ok {
		return nil
	}

	for line := first; line <= last; line++ {
		if e.buf.IsBlank(line) {
			continue
		}
		if e.buf.Indentation(line) < count {
			return fmt.Errorf("line %d: %w", line+1, ErrInsufficientIndent)
		}
	}

	for line := first; line <= last; line++ {
		if e.buf.IsBlank(line) {
			continue
		}
		col := e.buf.Indentation(line)
		if _, err := e.Apply(line, col-count, 0); err != nil {
			return fmt.Errorf("shift left line %d: %w", line+1, err)
		}
	}
	return nil
}
