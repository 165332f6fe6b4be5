package highlight

import "testing"

func TestTokenTypeString(t *testing.T) {
	tests := []struct {
		tt   TokenType
		want string
	}{
		{TokenNone, "none"},
		{TokenCommentDoc, "comment.doc"},
		{TokenKeywordControl, "keyword.control"},
		{TokenExported, "identifier.exported"},
		{TokenNumberBinary, "number.binary"},
		{tokenTypeCount, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.tt.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestTokenTypePredicates(t *testing.T) {
	if !TokenCommentDoc.IsComment() {
		t.Error("expected doc comment to be a comment")
	}
	if !TokenStringChar.IsString() {
		t.Error("expected char literal to be a string")
	}
	if !TokenNumberHex.IsNumber() {
		t.Error("expected hex to be a number")
	}
	if !TokenKeywordOther.IsKeyword() {
		t.Error("expected import class to be a keyword")
	}
	if TokenOperator.IsKeyword() {
		t.Error("expected operator not to be a keyword")
	}
}

func TestTokenAt(t *testing.T) {
	tokens := []Token{
		{TokenKeywordControl, 0, 2},
		{TokenIdentifier, 3, 4},
	}

	if tok, ok := TokenAt(tokens, 1); !ok || tok.Type != TokenKeywordControl {
		t.Errorf("expected control keyword at column 1, got %+v", tok)
	}
	if _, ok := TokenAt(tokens, 2); ok {
		t.Error("expected no token in the gap")
	}
	if tok, ok := TokenAt(tokens, 3); !ok || tok.Type != TokenIdentifier {
		t.Errorf("expected identifier at column 3, got %+v", tok)
	}
	if _, ok := TokenAt(tokens, 10); ok {
		t.Error("expected no token past the end")
	}
}
