package indent

import "github.com/dshills/nimstorm/internal/textbuf"

// opBytes are the characters operator tokens are built from. Brackets and
// quotes are deliberately absent.
const opBytes = "=+-*/<>&|^%!?~.:@$"

func isIdentByte(b byte) bool {
	return b == '_' || b >= 0x80 ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isOpByte(b byte) bool {
	for i := 0; i < len(opBytes); i++ {
		if opBytes[i] == b {
			return true
		}
	}
	return false
}

// BackwardStatementStart returns the position of the first token of the
// logical statement containing pos, crossing continuation lines, unclosed
// brackets and multi-line strings backward.
func (e *Engine) BackwardStatementStart(pos textbuf.Pos) textbuf.Pos {
	return e.statementStart(pos, 0)
}

// statementStart is BackwardStatementStart bounded below by limit. A limit
// of zero means the whole buffer.
func (e *Engine) statementStart(pos, limit textbuf.Pos) textbuf.Pos {
	buf := e.buf
	line := buf.LineAt(pos)
	limitLine := buf.LineAt(limit)

	for line > limitLine {
		st := e.scan.LineState(line)

		// A line starting inside a string belongs to the statement that
		// opened the string.
		if st.InString() {
			if l := buf.LineAt(st.StrStart); l >= limitLine {
				line = l
				continue
			}
			break
		}

		// A line starting inside a bracket belongs to the statement that
		// opened the bracket; brackets opened before limit bound the walk.
		if p, ok := st.Inner(); ok {
			if p.Pos >= limit {
				line = buf.LineAt(p.Pos)
				continue
			}
		}

		prev, ok := e.prevCodeLine(line, limit)
		if !ok {
			break
		}
		if tok, _ := e.lastCodeToken(prev, limit); e.rules.isOperator(tok) {
			line = prev
			continue
		}
		if tok, _ := e.firstCodeToken(line); e.rules.isOperator(tok) {
			line = prev
			continue
		}
		break
	}

	start := buf.FirstNonBlank(line)
	if start < limit {
		start = e.firstNonBlankFrom(limit)
	}
	return start
}

// firstNonBlankFrom skips spaces and tabs forward from pos within its line.
func (e *Engine) firstNonBlankFrom(pos textbuf.Pos) textbuf.Pos {
	buf := e.buf
	end := buf.LineEnd(buf.LineAt(pos))
	text := buf.Text()
	for pos < end && (text[pos] == ' ' || text[pos] == '\t') {
		pos++
	}
	return pos
}

// prevCodeLine returns the nearest line above line that carries code (or
// string content), skipping blank and comment-only lines. With a non-zero
// limit, lines whose code lies entirely before limit do not count.
func (e *Engine) prevCodeLine(line int, limit textbuf.Pos) (int, bool) {
	limitLine := e.buf.LineAt(limit)
	for l := line - 1; l >= limitLine; l-- {
		if e.lineHasCode(l, limit) {
			return l, true
		}
	}
	return 0, false
}

func (e *Engine) lineHasCode(line int, limit textbuf.Pos) bool {
	end := e.scan.CodeEnd(line)
	if end == 0 {
		return false
	}
	return e.buf.LineStart(line)+end > limit
}

// lastCodeToken extracts the final code token of a line: an identifier or
// an operator run, ignoring trailing comments. Tokens starting before limit
// do not count.
func (e *Engine) lastCodeToken(line int, limit textbuf.Pos) (string, textbuf.Pos) {
	text := e.buf.Line(line)
	end := e.scan.CodeEnd(line)
	if end == 0 || end > len(text) {
		return "", 0
	}

	start := end
	switch {
	case isIdentByte(text[end-1]):
		for start > 0 && isIdentByte(text[start-1]) {
			start--
		}
	case isOpByte(text[end-1]):
		for start > 0 && isOpByte(text[start-1]) {
			start--
		}
	default:
		return "", 0
	}

	pos := e.buf.LineStart(line) + start
	if pos < limit {
		return "", 0
	}
	return text[start:end], pos
}

// firstCodeToken extracts the leading token of a line: an identifier or an
// operator run at the first non-whitespace column.
func (e *Engine) firstCodeToken(line int) (string, textbuf.Pos) {
	text := e.buf.Line(line)
	col := e.buf.IndentSpan(line)
	if col >= len(text) {
		return "", 0
	}

	end := col
	switch {
	case isIdentByte(text[col]):
		for end < len(text) && isIdentByte(text[end]) {
			end++
		}
	case isOpByte(text[col]):
		for end < len(text) && isOpByte(text[end]) {
			end++
		}
	default:
		return "", 0
	}

	return text[col:end], e.buf.LineStart(line) + col
}

// tokenAt extracts the identifier or operator run starting exactly at pos.
func (e *Engine) tokenAt(pos textbuf.Pos) string {
	buf := e.buf
	line := buf.LineAt(pos)
	text := buf.Line(line)
	col := pos - buf.LineStart(line)
	if col < 0 || col >= len(text) {
		return ""
	}

	end := col
	switch {
	case isIdentByte(text[col]):
		for end < len(text) && isIdentByte(text[end]) {
			end++
		}
	case isOpByte(text[col]):
		for end < len(text) && isOpByte(text[end]) {
			end++
		}
	default:
		return ""
	}
	return text[col:end]
}

// ForwardOverBlank returns the first line at or after line that is neither
// blank nor comment-only, or false when none exists.
func (e *Engine) ForwardOverBlank(line int) (int, bool) {
	for l := line; l < e.buf.LineCount(); l++ {
		if e.lineHasCode(l, 0) {
			return l, true
		}
	}
	return 0, false
}

// containsRoutine reports whether the text range holds a routine keyword as
// a whole word.
func (e *Engine) containsRoutine(start, end textbuf.Pos) bool {
	text := e.buf.TextRange(start, end)
	i := 0
	for i < len(text) {
		if !isIdentByte(text[i]) {
			i++
			continue
		}
		j := i
		for j < len(text) && isIdentByte(text[j]) {
			j++
		}
		if e.rules.isRoutine(text[i:j]) {
			return true
		}
		i = j
	}
	return false
}
