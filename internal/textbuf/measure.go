package textbuf

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Indentation returns the leading whitespace width of a line in display
// columns. Tabs advance to the next tab stop; everything the engine writes
// back is spaces, but input may still carry tabs.
func (b *Buffer) Indentation(line int) int {
	text := b.Line(line)
	col := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case ' ':
			col++
		case '\t':
			col += b.tabWidth - col%b.tabWidth
		default:
			return col
		}
	}
	return col
}

// IndentSpan returns the byte length of the leading whitespace run of a line.
func (b *Buffer) IndentSpan(line int) int {
	text := b.Line(line)
	for i := 0; i < len(text); i++ {
		if text[i] != ' ' && text[i] != '\t' {
			return i
		}
	}
	return len(text)
}

// FirstNonBlank returns the offset of the first non-whitespace character of
// a line. For blank lines it returns the line end.
func (b *Buffer) FirstNonBlank(line int) Pos {
	return b.LineStart(line) + b.IndentSpan(line)
}

// IsBlank reports whether a line is empty or contains only whitespace.
func (b *Buffer) IsBlank(line int) bool {
	return b.IndentSpan(line) == len(b.Line(line))
}

// DisplayCol returns the display column of an offset within its line,
// accounting for tab stops and wide characters.
func (b *Buffer) DisplayCol(pos Pos) int {
	if pos < 0 {
		pos = 0
	}
	if pos > len(b.text) {
		pos = len(b.text)
	}
	start := b.LineStart(b.LineAt(pos))
	return b.widthOf(b.text[start:pos])
}

// widthOf returns the display width of s, assuming it starts at column 0.
func (b *Buffer) widthOf(s string) int {
	col := 0
	for {
		i := strings.IndexByte(s, '\t')
		if i < 0 {
			return col + uniseg.StringWidth(s)
		}
		col += uniseg.StringWidth(s[:i])
		col += b.tabWidth - col%b.tabWidth
		s = s[i+1:]
	}
}
