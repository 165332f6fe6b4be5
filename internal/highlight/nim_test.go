package highlight

import (
	"testing"

	"github.com/dshills/nimstorm/internal/syntax"
)

// tokenOfType returns the first token of the given type, if any.
func tokenOfType(tokens []Token, tokenType TokenType) (Token, bool) {
	for _, tok := range tokens {
		if tok.Type == tokenType {
			return tok, true
		}
	}
	return Token{}, false
}

func TestHighlightLineBasics(t *testing.T) {
	h := New()

	tokens, _ := h.HighlightLine("let x = 42", syntax.State{})

	want := []Token{
		{TokenKeywordDeclaration, 0, 3},
		{TokenIdentifier, 4, 5},
		{TokenOperator, 6, 7},
		{TokenNumber, 8, 10},
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i, tok := range tokens {
		if tok != want[i] {
			t.Errorf("token %d: expected %+v, got %+v", i, want[i], tok)
		}
	}
}

func TestHighlightTokenTypes(t *testing.T) {
	tests := []struct {
		name string
		line string
		want TokenType
	}{
		{"control keyword", "if x:", TokenKeywordControl},
		{"word operator", "a and b", TokenKeywordOperator},
		{"import keyword", "import os", TokenKeywordOther},
		{"language constant", "x = nil", TokenConstant},
		{"builtin type", "var n: int", TokenTypeBuiltin},
		{"builtin function", "echo 1", TokenFunctionBuiltin},
		{"routine name", "proc fib(n: int): int =", TokenFunction},
		{"exported symbol", "var count* = 0", TokenExported},
		{"pragma", "proc p() {.inline.} =", TokenMeta},
		{"line comment", "echo 1 # note", TokenComment},
		{"doc comment", "## Doc text", TokenCommentDoc},
		{"string literal", "echo \"hi\"", TokenString},
		{"char literal", "let c = 'a'", TokenStringChar},
		{"bracket", "foo(a)", TokenPunctuationBracket},
		{"delimiter", "foo(a, b)", TokenPunctuation},
	}

	h := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, _ := h.HighlightLine(tt.line, syntax.State{})
			if _, ok := tokenOfType(tokens, tt.want); !ok {
				t.Errorf("expected a %s token in %v", tt.want, tokens)
			}
		})
	}
}

func TestHighlightNumbers(t *testing.T) {
	tests := []struct {
		line string
		want TokenType
	}{
		{"0xFF", TokenNumberHex},
		{"0xFF'u8", TokenNumberHex},
		{"0o17", TokenNumberOctal},
		{"0b1010", TokenNumberBinary},
		{"3.14", TokenNumberFloat},
		{"1e9", TokenNumberFloat},
		{"1_000_000", TokenNumber},
		{"42'i64", TokenNumber},
	}

	h := New()
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			tokens, _ := h.HighlightLine(tt.line, syntax.State{})
			if len(tokens) != 1 {
				t.Fatalf("expected one token, got %v", tokens)
			}
			if tokens[0].Type != tt.want {
				t.Errorf("expected %s, got %s", tt.want, tokens[0].Type)
			}
			if tokens[0].Start != 0 || tokens[0].End != len(tt.line) {
				t.Errorf("expected full-line token, got %+v", tokens[0])
			}
		})
	}
}

func TestHighlightStringState(t *testing.T) {
	h := New()

	tokens, state := h.HighlightLine(`x = """abc`, syntax.State{})
	if !state.InString() {
		t.Fatal("expected line to end inside a string")
	}
	if tok, ok := tokenOfType(tokens, TokenString); !ok || tok.Start != 4 || tok.End != 10 {
		t.Errorf("expected string token from 4 to 10, got %v", tokens)
	}

	tokens, state = h.HighlightLine(`def""" & 1`, state)
	if state.InString() {
		t.Fatal("expected string to close")
	}
	if len(tokens) == 0 || tokens[0].Type != TokenString || tokens[0].End != 6 {
		t.Errorf("expected leading string token through column 6, got %v", tokens)
	}
	if _, ok := tokenOfType(tokens, TokenNumber); !ok {
		t.Errorf("expected trailing code to tokenize, got %v", tokens)
	}
}

func TestHighlightAll(t *testing.T) {
	h := New()

	lines := h.HighlightAll("x = \"\"\"\nhi\n\"\"\"\necho 1")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}

	if len(lines[1]) != 1 || lines[1][0].Type != TokenString {
		t.Errorf("expected string continuation on line 1, got %v", lines[1])
	}
	if len(lines[2]) != 1 || lines[2][0].Type != TokenString {
		t.Errorf("expected string closer on line 2, got %v", lines[2])
	}
	if _, ok := tokenOfType(lines[3], TokenFunctionBuiltin); !ok {
		t.Errorf("expected code after string, got %v", lines[3])
	}
}

func TestHighlightBlockComment(t *testing.T) {
	h := New()

	lines := h.HighlightAll("#[ one\ntwo ]#\necho 1")
	if len(lines[0]) != 1 || lines[0][0].Type != TokenCommentBlock {
		t.Errorf("expected block comment opener, got %v", lines[0])
	}
	if len(lines[1]) == 0 || lines[1][0].Type != TokenCommentBlock {
		t.Errorf("expected block comment continuation, got %v", lines[1])
	}
	if _, ok := tokenOfType(lines[2], TokenFunctionBuiltin); !ok {
		t.Errorf("expected code after comment, got %v", lines[2])
	}
}

func TestHighlightKeywordCoversWholeWord(t *testing.T) {
	h := New()

	// "iffy" must not tokenize as the keyword "if".
	tokens, _ := h.HighlightLine("iffy = 1", syntax.State{})
	if tok, ok := tokenOfType(tokens, TokenIdentifier); !ok || tok.End != 4 {
		t.Errorf("expected identifier through column 4, got %v", tokens)
	}
	if _, ok := tokenOfType(tokens, TokenKeywordControl); ok {
		t.Errorf("expected no control keyword in %v", tokens)
	}
}
