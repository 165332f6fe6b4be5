// Package highlight provides font-lock style tokenization for Nim source.
//
// Multi-line constructs (triple-quoted strings, nested block comments) ride
// on the syntax package's line states; regex and keyword rules classify the
// remaining code regions line by line.
package highlight

// TokenType represents the semantic type of a token.
type TokenType uint8

// Token types, grouped so the Is* predicates can test ranges.
const (
	TokenNone TokenType = iota

	// Comments
	TokenComment
	TokenCommentBlock
	TokenCommentDoc

	// Strings
	TokenString
	TokenStringChar

	// Numbers
	TokenNumber
	TokenNumberFloat
	TokenNumberHex
	TokenNumberOctal
	TokenNumberBinary

	// Keywords
	TokenKeyword
	TokenKeywordControl     // if, case, while, return, try
	TokenKeywordOperator    // and, or, div, in, cast
	TokenKeywordDeclaration // proc, type, var, object
	TokenKeywordOther       // import, export, include, from

	// Operators and punctuation
	TokenOperator
	TokenPunctuation
	TokenPunctuationBracket

	// Identifiers
	TokenIdentifier
	TokenExported // name* export marker
	TokenConstant // true, false, nil

	// Functions and types
	TokenFunction
	TokenFunctionBuiltin
	TokenTypeBuiltin
	TokenTypeName

	// Pragmas
	TokenMeta

	tokenTypeCount
)

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "unknown"
}

// IsComment returns true if this is a comment token.
func (t TokenType) IsComment() bool {
	return t >= TokenComment && t <= TokenCommentDoc
}

// IsString returns true if this is a string token.
func (t TokenType) IsString() bool {
	return t >= TokenString && t <= TokenStringChar
}

// IsNumber returns true if this is a number token.
func (t TokenType) IsNumber() bool {
	return t >= TokenNumber && t <= TokenNumberBinary
}

// IsKeyword returns true if this is a keyword token.
func (t TokenType) IsKeyword() bool {
	return t >= TokenKeyword && t <= TokenKeywordOther
}

// Token represents a highlighted region of a line.
type Token struct {
	// Type is the semantic type of the token.
	Type TokenType

	// Start is the starting byte column (0-indexed).
	Start int

	// End is the ending byte column (exclusive).
	End int
}

// Len returns the length of the token.
func (t Token) Len() int {
	return t.End - t.Start
}

// Contains returns true if the column is within the token.
func (t Token) Contains(col int) bool {
	return col >= t.Start && col < t.End
}

// TokenAt returns the token covering the given column, if any. Tokens must
// be sorted by start column.
func TokenAt(tokens []Token, col int) (Token, bool) {
	for _, tok := range tokens {
		if tok.Contains(col) {
			return tok, true
		}
		if tok.Start > col {
			break
		}
	}
	return Token{}, false
}

// tokenTypeNames maps token types to their string names.
var tokenTypeNames = []string{
	TokenNone: "none",

	TokenComment:      "comment",
	TokenCommentBlock: "comment.block",
	TokenCommentDoc:   "comment.doc",

	TokenString:     "string",
	TokenStringChar: "string.char",

	TokenNumber:       "number",
	TokenNumberFloat:  "number.float",
	TokenNumberHex:    "number.hex",
	TokenNumberOctal:  "number.octal",
	TokenNumberBinary: "number.binary",

	TokenKeyword:            "keyword",
	TokenKeywordControl:     "keyword.control",
	TokenKeywordOperator:    "keyword.operator",
	TokenKeywordDeclaration: "keyword.declaration",
	TokenKeywordOther:       "keyword.other",

	TokenOperator:           "operator",
	TokenPunctuation:        "punctuation",
	TokenPunctuationBracket: "punctuation.bracket",

	TokenIdentifier: "identifier",
	TokenExported:   "identifier.exported",
	TokenConstant:   "constant",

	TokenFunction:        "function",
	TokenFunctionBuiltin: "function.builtin",
	TokenTypeBuiltin:     "type.builtin",
	TokenTypeName:        "type",

	TokenMeta: "meta",
}
