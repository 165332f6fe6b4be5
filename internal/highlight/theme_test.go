package highlight

import (
	"strings"
	"testing"

	"github.com/dshills/nimstorm/internal/syntax"
)

func TestThemeStyleFallback(t *testing.T) {
	theme := DefaultTheme()

	if theme.Style(TokenCommentBlock) != theme.Style(TokenComment) {
		t.Error("expected block comments to fall back to the comment style")
	}
	if theme.Style(TokenNumberHex) != theme.Style(TokenNumber) {
		t.Error("expected hex numbers to fall back to the number style")
	}
	if theme.Style(TokenIdentifier) != "" {
		t.Error("expected identifiers unstyled")
	}
}

func TestPaint(t *testing.T) {
	theme := DefaultTheme()

	got := theme.Paint("# x", []Token{{TokenComment, 0, 3}})
	want := "\x1b[90m# x\x1b[0m"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPaintPlainGaps(t *testing.T) {
	theme := DefaultTheme()

	got := theme.Paint("a = 1", []Token{
		{TokenIdentifier, 0, 1},
		{TokenNumber, 4, 5},
	})
	if !strings.HasPrefix(got, "a = ") {
		t.Errorf("expected unstyled prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Errorf("expected reset after styled token, got %q", got)
	}
}

func TestMonoThemePaintsNothing(t *testing.T) {
	h := New()
	theme := MonoTheme()

	line := "proc f() = discard # done"
	tokens, _ := h.HighlightLine(line, syntax.State{})
	if got := theme.Paint(line, tokens); got != line {
		t.Errorf("expected %q unchanged, got %q", line, got)
	}
}

func TestThemeByName(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"dark", "dark", true},
		{"light", "light", true},
		{"mono", "mono", true},
		{"", "dark", true},
		{"neon", "", false},
	}

	for _, tt := range tests {
		theme, ok := ThemeByName(tt.name)
		if ok != tt.ok {
			t.Errorf("%q: expected ok=%v, got %v", tt.name, tt.ok, ok)
			continue
		}
		if ok && theme.Name() != tt.want {
			t.Errorf("%q: expected theme %q, got %q", tt.name, tt.want, theme.Name())
		}
	}
}
