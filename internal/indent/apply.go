package indent

import "github.com/dshills/nimstorm/internal/textbuf"

// Apply rewrites the leading whitespace of line to exactly col spaces and
// returns the adjusted cursor. A cursor inside the old indentation lands at
// the end of the new indentation; a cursor after it shifts with the text;
// a cursor before the line is untouched. When the line already carries
// exactly the target indentation the buffer is not mutated.
func (e *Engine) Apply(line, col int, cursor textbuf.Pos) (textbuf.Pos, error) {
	if col < 0 {
		col = 0
	}
	buf := e.buf
	start := buf.LineStart(line)
	span := buf.IndentSpan(line)
	want := indentText(col)

	var newCursor textbuf.Pos
	switch {
	case cursor < start:
		newCursor = cursor
	case cursor <= start+span:
		newCursor = start + textbuf.Pos(col)
	default:
		newCursor = cursor + textbuf.Pos(col-span)
	}

	if buf.Line(line)[:span] != want {
		if err := buf.Replace(start, start+span, want); err != nil {
			return cursor, err
		}
	}
	return newCursor, nil
}

// IndentLine computes the target column for a line, applies it, and returns
// the adjusted cursor along with the column used.
func (e *Engine) IndentLine(line int, cursor textbuf.Pos) (textbuf.Pos, int, error) {
	col := e.TargetForLine(line)
	newCursor, err := e.Apply(line, col, cursor)
	return newCursor, col, err
}
