package textbuf

import (
	"errors"
	"io"
	"os"
	"sort"
	"strings"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// DefaultTabWidth is the tab stop width used when none is configured.
const DefaultTabWidth = 8

// Buffer holds the document text plus a line start index.
// All offsets are byte offsets into the normalized (LF only) text.
type Buffer struct {
	text       string
	lineStarts []Pos
	revision   uint64
	tabWidth   int
}

// New creates a new empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		lineStarts: []Pos{0},
		tabWidth:   DefaultTabWidth,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// FromString creates a buffer with initial content.
func FromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	b.text = normalizeLineEndings(s)
	b.reindex()
	return b
}

// FromReader creates a buffer from an io.Reader.
func FromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return FromString(string(data), opts...), nil
}

// FromFile creates a buffer from a file on disk.
func FromFile(path string, opts ...Option) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromString(string(data), opts...), nil
}

// normalizeLineEndings converts CRLF and CR line endings to LF.
func normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// reindex rebuilds the line start index from the current text.
func (b *Buffer) reindex() {
	b.lineStarts = b.lineStarts[:0]
	b.lineStarts = append(b.lineStarts, 0)
	for i := 0; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			b.lineStarts = append(b.lineStarts, Pos(i+1))
		}
	}
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	return b.text
}

// TextRange returns text in the given byte range, clamped to the buffer.
func (b *Buffer) TextRange(start, end Pos) string {
	if start < 0 {
		start = 0
	}
	if end > len(b.text) {
		end = len(b.text)
	}
	if start >= end {
		return ""
	}
	return b.text[start:end]
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() Pos {
	return len(b.text)
}

// LineCount returns the number of lines. An empty buffer has one line;
// a trailing newline starts a final empty line.
func (b *Buffer) LineCount() int {
	return len(b.lineStarts)
}

// Line returns the text of a specific line without its newline.
// Out of range lines return the empty string.
func (b *Buffer) Line(line int) string {
	if line < 0 || line >= len(b.lineStarts) {
		return ""
	}
	return b.text[b.LineStart(line):b.LineEnd(line)]
}

// LineStart returns the byte offset of the start of a line.
// Out of range lines clamp to the buffer bounds.
func (b *Buffer) LineStart(line int) Pos {
	if line < 0 {
		return 0
	}
	if line >= len(b.lineStarts) {
		return len(b.text)
	}
	return b.lineStarts[line]
}

// LineEnd returns the byte offset just past the last character of a line,
// excluding the newline.
func (b *Buffer) LineEnd(line int) Pos {
	if line < 0 {
		return 0
	}
	if line >= len(b.lineStarts)-1 {
		return len(b.text)
	}
	return b.lineStarts[line+1] - 1
}

// LineAt returns the line containing the given offset.
// Offsets are clamped to the buffer; Len() maps to the last line.
func (b *Buffer) LineAt(pos Pos) int {
	if pos <= 0 {
		return 0
	}
	if pos >= len(b.text) {
		return len(b.lineStarts) - 1
	}
	// First line start greater than pos, minus one.
	i := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > pos
	})
	return i - 1
}

// PosToPoint converts a byte offset to a line/column point.
func (b *Buffer) PosToPoint(pos Pos) Point {
	line := b.LineAt(pos)
	if pos < 0 {
		pos = 0
	}
	if pos > len(b.text) {
		pos = len(b.text)
	}
	return Point{Line: line, Col: pos - b.lineStarts[line]}
}

// PointToPos converts a line/column point to a byte offset.
// Points beyond the line clamp to the line end.
func (b *Buffer) PointToPos(p Point) Pos {
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(b.lineStarts) {
		return len(b.text)
	}
	pos := b.lineStarts[p.Line] + p.Col
	if end := b.LineEnd(p.Line); pos > end {
		return end
	}
	if pos < b.lineStarts[p.Line] {
		return b.lineStarts[p.Line]
	}
	return pos
}

// Revision returns the buffer revision, incremented on every mutation.
func (b *Buffer) Revision() uint64 {
	return b.revision
}

// TabWidth returns the configured tab stop width.
func (b *Buffer) TabWidth() int {
	return b.tabWidth
}

// Write Operations

// Insert inserts text at the given offset.
func (b *Buffer) Insert(at Pos, text string) error {
	if at < 0 || at > len(b.text) {
		return ErrOffsetOutOfRange
	}
	if text == "" {
		return nil
	}
	text = normalizeLineEndings(text)
	b.text = b.text[:at] + text + b.text[at:]
	b.reindex()
	b.revision++
	return nil
}

// Delete removes the bytes in [start, end).
func (b *Buffer) Delete(start, end Pos) error {
	if start > end {
		return ErrRangeInvalid
	}
	if start < 0 || end > len(b.text) {
		return ErrOffsetOutOfRange
	}
	if start == end {
		return nil
	}
	b.text = b.text[:start] + b.text[end:]
	b.reindex()
	b.revision++
	return nil
}

// Replace replaces the bytes in [start, end) with text.
func (b *Buffer) Replace(start, end Pos, text string) error {
	if start > end {
		return ErrRangeInvalid
	}
	if start < 0 || end > len(b.text) {
		return ErrOffsetOutOfRange
	}
	text = normalizeLineEndings(text)
	if start == end && text == "" {
		return nil
	}
	b.text = b.text[:start] + text + b.text[end:]
	b.reindex()
	b.revision++
	return nil
}
