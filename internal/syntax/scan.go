package syntax

import (
	"unicode/utf8"

	"github.com/dshills/nimstorm/internal/textbuf"
)

// ScanLine scans one line of text (without its newline) under the state at
// the line start. It returns the state at the start of the next line plus
// the classified spans of the line. base is the buffer offset of the line
// start.
func ScanLine(text string, base textbuf.Pos, st State) (State, []Span) {
	var spans []Span
	st = scanChunk(text, base, st, len(text), &spans)

	// Line comments end at the newline. Plain and raw strings are single
	// line in Nim; an unterminated one does not poison following lines.
	st.LineComment = false
	if st.Str == StrDouble || st.Str == StrRaw {
		st.Str = StrNone
	}
	return st, spans
}

// StateThrough scans the first col bytes of a line and returns the state at
// that column. No end-of-line normalization is applied.
func StateThrough(text string, base textbuf.Pos, st State, col int) State {
	if col > len(text) {
		col = len(text)
	}
	if col < 0 {
		col = 0
	}
	return scanChunk(text, base, st, col, nil)
}

// scanChunk runs the state machine over text[0:stop]. When spans is non-nil
// the classified spans are appended to it.
func scanChunk(text string, base textbuf.Pos, st State, stop int, spans *[]Span) State {
	st = st.clone()

	i := 0
	mark := 0
	emit := func(end int, kind SpanKind) {
		if spans != nil && end > mark {
			*spans = append(*spans, Span{Kind: kind, Start: mark, End: end})
		}
		mark = end
	}

	for i < stop {
		switch {
		case st.Comment > 0:
			for i < stop {
				if text[i] == ']' && i+1 < stop && text[i+1] == '#' {
					st.Comment--
					i += 2
					if st.Comment == 0 {
						emit(i, SpanComment)
						break
					}
					continue
				}
				if text[i] == '#' && i+1 < stop && text[i+1] == '[' {
					st.Comment++
					i += 2
					continue
				}
				i++
			}

		case st.LineComment:
			i = stop

		case st.Str == StrTriple:
			for i < stop {
				if text[i] != '"' {
					i++
					continue
				}
				n := 0
				for i+n < stop && text[i+n] == '"' {
					n++
				}
				i += n
				if n >= 3 {
					st.Str = StrNone
					emit(i, SpanString)
					break
				}
			}

		case st.Str == StrDouble:
			for i < stop {
				switch text[i] {
				case '\\':
					i += 2
				case '"':
					i++
					st.Str = StrNone
				default:
					i++
				}
				if st.Str == StrNone {
					emit(i, SpanString)
					break
				}
			}

		case st.Str == StrRaw:
			for i < stop {
				if text[i] != '"' {
					i++
					continue
				}
				if i+1 < stop && text[i+1] == '"' {
					i += 2 // doubled quote is a literal quote
					continue
				}
				i++
				st.Str = StrNone
				emit(i, SpanString)
				break
			}

		default:
			i = scanCode(text, base, &st, i, stop, emit)
		}
	}

	// Whatever is left belongs to the mode we ended in.
	switch {
	case st.Comment > 0 || st.LineComment:
		emit(stop, SpanComment)
	case st.Str != StrNone:
		emit(stop, SpanString)
	default:
		emit(stop, SpanCode)
	}

	return st
}

// scanCode consumes code text starting at i until a string or comment opens
// (or stop is reached) and returns the new position.
func scanCode(text string, base textbuf.Pos, st *State, i, stop int, emit func(int, SpanKind)) int {
	for i < stop {
		switch ch := text[i]; ch {
		case '#':
			emit(i, SpanCode)
			if i+1 < stop && text[i+1] == '[' {
				st.Comment = 1
				return i + 2
			}
			if i+2 < stop && text[i+1] == '#' && text[i+2] == '[' {
				st.Comment = 1
				return i + 3
			}
			st.LineComment = true
			return i

		case '"':
			emit(i, SpanCode)
			st.StrStart = base + textbuf.Pos(i)
			if i+2 < stop && text[i+1] == '"' && text[i+2] == '"' {
				st.Str = StrTriple
				return i + 3
			}
			if i > 0 && isIdentByte(text[i-1]) {
				st.Str = StrRaw
				return i + 1
			}
			st.Str = StrDouble
			return i + 1

		case '\'':
			if end := matchCharLit(text, i, stop); end > 0 {
				emit(i, SpanCode)
				emit(end, SpanString)
				i = end
				continue
			}
			i++

		case '(', '[', '{':
			st.Parens = append(st.Parens, Paren{Pos: base + textbuf.Pos(i), Ch: ch})
			i++

		case ')', ']', '}':
			if n := len(st.Parens); n > 0 && st.Parens[n-1].closes(ch) {
				st.Parens = st.Parens[:n-1]
			}
			i++

		default:
			i++
		}
	}
	emit(stop, SpanCode)
	return stop
}

// matchCharLit tries to match a character literal starting at the quote at
// position i. It returns the column after the closing quote, or -1 when the
// quote is a type suffix (as in 1'i32) or no literal matches.
func matchCharLit(text string, i, stop int) int {
	if i > 0 && isIdentByte(text[i-1]) {
		return -1
	}
	k := i + 1
	if k >= stop || text[k] == '\'' {
		return -1
	}
	if text[k] == '\\' {
		k++
		if k >= stop {
			return -1
		}
		k++
		// Allow the digits of \xHH and \ddd escapes.
		for k < stop && k-i <= 5 && text[k] != '\'' {
			if !isHexByte(text[k]) {
				break
			}
			k++
		}
	} else {
		_, size := utf8.DecodeRuneInString(text[k:stop])
		k += size
	}
	if k < stop && text[k] == '\'' {
		return k + 1
	}
	return -1
}

func isIdentByte(b byte) bool {
	return b == '_' || b >= 0x80 ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isHexByte(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t'
}
