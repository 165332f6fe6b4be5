package textbuf

import "testing"

func TestIndentation(t *testing.T) {
	tests := []struct {
		name string
		text string
		line int
		want int
	}{
		{"no indent", "proc f()", 0, 0},
		{"two spaces", "  discard", 0, 2},
		{"tab default width", "\tdiscard", 0, 8},
		{"tab then space", "\t discard", 0, 9},
		{"space then tab", " \tdiscard", 0, 8},
		{"blank line", "   ", 0, 3},
		{"second line", "if x:\n    y", 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := FromString(tt.text)
			if got := buf.Indentation(tt.line); got != tt.want {
				t.Errorf("Indentation(%d) = %d, want %d", tt.line, got, tt.want)
			}
		})
	}
}

func TestIndentationCustomTabWidth(t *testing.T) {
	buf := FromString("\t\tx", WithTabWidth(2))
	if got := buf.Indentation(0); got != 4 {
		t.Errorf("Indentation(0) = %d, want 4", got)
	}
}

func TestIndentSpan(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"abc", 0},
		{"  abc", 2},
		{"\t abc", 2},
		{"    ", 4},
		{"", 0},
	}

	for _, tt := range tests {
		buf := FromString(tt.text)
		if got := buf.IndentSpan(0); got != tt.want {
			t.Errorf("IndentSpan(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestFirstNonBlank(t *testing.T) {
	buf := FromString("ab\n  cd\n   ")

	if got := buf.FirstNonBlank(0); got != 0 {
		t.Errorf("FirstNonBlank(0) = %d, want 0", got)
	}
	if got := buf.FirstNonBlank(1); got != 5 {
		t.Errorf("FirstNonBlank(1) = %d, want 5", got)
	}
	// Blank line: returns its end.
	if got := buf.FirstNonBlank(2); got != buf.LineEnd(2) {
		t.Errorf("FirstNonBlank(2) = %d, want %d", got, buf.LineEnd(2))
	}
}

func TestIsBlank(t *testing.T) {
	buf := FromString("abc\n\n   \n\t\n x")

	want := []bool{false, true, true, true, false}
	for i, w := range want {
		if got := buf.IsBlank(i); got != w {
			t.Errorf("IsBlank(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestDisplayCol(t *testing.T) {
	tests := []struct {
		name string
		text string
		pos  Pos
		want int
	}{
		{"ascii", "echo(x)", 5, 5},
		{"after tab", "\tx", 1, 8},
		{"wide rune", "あx", len("あ"), 2},
		{"combining narrow", "éx", len("é"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := FromString(tt.text)
			if got := buf.DisplayCol(tt.pos); got != tt.want {
				t.Errorf("DisplayCol(%d) = %d, want %d", tt.pos, got, tt.want)
			}
		})
	}
}

func TestDisplayColSecondLine(t *testing.T) {
	buf := FromString("first\necho(\"あ\",")
	// Column of the comma on line 2: echo(" is 6 cells, あ is 2.
	commaPos := buf.LineStart(1) + len("echo(\"あ\"")
	if got := buf.DisplayCol(commaPos); got != 9 {
		t.Errorf("DisplayCol = %d, want 9", got)
	}
}
