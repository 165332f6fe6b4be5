package highlight

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dshills/nimstorm/internal/syntax"
)

// Rule defines a regex highlighting rule applied to code regions.
type Rule struct {
	// Pattern is the regex pattern to match.
	Pattern *regexp.Regexp

	// Type is the token type to assign to matches.
	Type TokenType

	// Submatch is the submatch index to use (0 for the whole match).
	Submatch int
}

// Highlighter tokenizes Nim source line by line. String and comment regions
// come from the syntax scanner; regex rules and keyword tables classify the
// code in between.
type Highlighter struct {
	language   string
	extensions []string
	rules      []Rule
	keywords   map[string]TokenType
}

// New creates the Nim highlighter.
func New() *Highlighter {
	h := &Highlighter{
		language:   "nim",
		extensions: []string{".nim", ".nims", ".nimble"},
		keywords:   make(map[string]TokenType),
	}

	// Pragmas before anything else so their content is not re-tokenized.
	h.AddRule(`\{\..*?\.\}`, TokenMeta)

	// Declared routine names.
	h.AddSubmatchRule(`\b(?:proc|func|method|iterator|macro|template|converter)\s+([A-Za-z_][A-Za-z0-9_]*)`, TokenFunction, 1)

	// Exported symbols: an identifier immediately followed by a star.
	h.AddSubmatchRule(`([A-Za-z_][A-Za-z0-9_]*\*)(?:[\s,:(\[=]|$)`, TokenExported, 1)

	// Numbers, specific bases first. Nim allows underscores and apostrophe
	// type suffixes (0xFF'i32, 1.5'f64).
	h.AddRule(`\b0[xX][0-9a-fA-F_]+(?:'[A-Za-z][A-Za-z0-9]*)?\b`, TokenNumberHex)
	h.AddRule(`\b0o[0-7_]+(?:'[A-Za-z][A-Za-z0-9]*)?\b`, TokenNumberOctal)
	h.AddRule(`\b0[bB][01_]+(?:'[A-Za-z][A-Za-z0-9]*)?\b`, TokenNumberBinary)
	h.AddRule(`\b\d[\d_]*(?:\.[\d_]+(?:[eE][+-]?\d+)?|[eE][+-]?\d+)(?:'[A-Za-z][A-Za-z0-9]*)?\b`, TokenNumberFloat)
	h.AddRule(`\b\d[\d_]*(?:'[A-Za-z][A-Za-z0-9]*)?\b`, TokenNumber)

	h.AddKeywords(TokenKeywordControl,
		"if", "elif", "else", "when", "case", "of", "while", "for",
		"break", "continue", "return", "yield", "try", "except", "finally",
		"raise", "defer", "block", "do", "discard", "asm", "end")
	h.AddKeywords(TokenKeywordDeclaration,
		"proc", "func", "method", "iterator", "macro", "template",
		"converter", "type", "var", "let", "const", "using", "concept",
		"mixin", "bind", "object", "enum", "tuple", "distinct", "ref",
		"ptr", "static", "out")
	h.AddKeywords(TokenKeywordOperator,
		"and", "or", "not", "xor", "div", "mod", "shl", "shr",
		"in", "notin", "is", "isnot", "as", "cast", "addr")
	h.AddKeywords(TokenKeywordOther,
		"import", "export", "include", "from")
	h.AddKeywords(TokenConstant,
		"true", "false", "nil")
	h.AddKeywords(TokenTypeBuiltin,
		"int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64",
		"float", "float32", "float64", "bool", "char", "byte",
		"string", "cstring", "pointer", "seq", "set", "array",
		"openArray", "varargs", "range", "auto", "void",
		"typed", "untyped", "Natural", "Positive")
	h.AddKeywords(TokenFunctionBuiltin,
		"echo", "new", "len", "add", "inc", "dec", "ord", "chr",
		"high", "low", "min", "max", "abs", "succ", "pred",
		"sizeof", "assert", "doAssert", "repr", "newSeq", "setLen")

	return h
}

// AddRule adds a regex rule.
func (h *Highlighter) AddRule(pattern string, tokenType TokenType) *Highlighter {
	h.rules = append(h.rules, Rule{
		Pattern: regexp.MustCompile(pattern),
		Type:    tokenType,
	})
	return h
}

// AddSubmatchRule adds a regex rule that tokenizes one submatch.
func (h *Highlighter) AddSubmatchRule(pattern string, tokenType TokenType, submatch int) *Highlighter {
	h.rules = append(h.rules, Rule{
		Pattern:  regexp.MustCompile(pattern),
		Type:     tokenType,
		Submatch: submatch,
	})
	return h
}

// AddKeywords adds keywords with a specific token type.
func (h *Highlighter) AddKeywords(tokenType TokenType, keywords ...string) *Highlighter {
	for _, kw := range keywords {
		h.keywords[kw] = tokenType
	}
	return h
}

// Language returns the language name.
func (h *Highlighter) Language() string {
	return h.language
}

// FileExtensions returns the file extensions this highlighter handles.
func (h *Highlighter) FileExtensions() []string {
	return h.extensions
}

// HighlightLine tokenizes a single line under the scan state at its start
// and returns the tokens plus the state for the next line.
func (h *Highlighter) HighlightLine(line string, state syntax.State) ([]Token, syntax.State) {
	next, spans := syntax.ScanLine(line, 0, state)

	tokens := make([]Token, 0, len(spans))
	for _, sp := range spans {
		switch sp.Kind {
		case syntax.SpanComment:
			tokens = append(tokens, Token{
				Type:  commentType(line[sp.Start:sp.End]),
				Start: sp.Start,
				End:   sp.End,
			})
		case syntax.SpanString:
			tokens = append(tokens, Token{
				Type:  stringType(line[sp.Start:sp.End]),
				Start: sp.Start,
				End:   sp.End,
			})
		case syntax.SpanCode:
			tokens = h.tokenizeCode(tokens, line, sp.Start, sp.End)
		}
	}

	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].Start < tokens[j].Start
	})
	return tokens, next
}

// HighlightAll tokenizes a whole source text, threading scan state across
// lines. The result has one token slice per line.
func (h *Highlighter) HighlightAll(src string) [][]Token {
	lines := strings.Split(src, "\n")
	out := make([][]Token, len(lines))

	var state syntax.State
	for i, line := range lines {
		out[i], state = h.HighlightLine(line, state)
	}
	return out
}

// commentType distinguishes doc, block and line comments by their opener.
// Continuation lines of a block comment carry no opener.
func commentType(text string) TokenType {
	switch {
	case strings.HasPrefix(text, "##["):
		return TokenCommentDoc
	case strings.HasPrefix(text, "#["):
		return TokenCommentBlock
	case strings.HasPrefix(text, "##"):
		return TokenCommentDoc
	case strings.HasPrefix(text, "#"):
		return TokenComment
	default:
		return TokenCommentBlock
	}
}

// stringType distinguishes char literals from string literals.
func stringType(text string) TokenType {
	if strings.HasPrefix(text, "'") {
		return TokenStringChar
	}
	return TokenString
}

// tokenizeCode applies regex rules, keywords and punctuation to a code
// region of the line.
func (h *Highlighter) tokenizeCode(tokens []Token, line string, start, end int) []Token {
	region := line[start:end]
	covered := make([]bool, len(region))

	for _, rule := range h.rules {
		for _, match := range rule.Pattern.FindAllStringSubmatchIndex(region, -1) {
			lo, hi := match[0], match[1]
			if rule.Submatch > 0 && len(match) > rule.Submatch*2+1 {
				lo = match[rule.Submatch*2]
				hi = match[rule.Submatch*2+1]
			}
			if lo < 0 || hi <= lo || isCovered(covered, lo, hi) {
				continue
			}
			tokens = append(tokens, Token{Type: rule.Type, Start: start + lo, End: start + hi})
			markCovered(covered, lo, hi)
		}
	}

	i := 0
	for i < len(region) {
		switch b := region[i]; {
		case covered[i]:
			i++

		case isWordByte(b):
			j := i
			for j < len(region) && isWordByte(region[j]) && !covered[j] {
				j++
			}
			word := region[i:j]
			tokenType := TokenIdentifier
			if kw, ok := h.keywords[word]; ok {
				tokenType = kw
			}
			tokens = append(tokens, Token{Type: tokenType, Start: start + i, End: start + j})
			markCovered(covered, i, j)
			i = j

		case isOperatorByte(b):
			j := i
			for j < len(region) && isOperatorByte(region[j]) && !covered[j] {
				j++
			}
			tokens = append(tokens, Token{Type: TokenOperator, Start: start + i, End: start + j})
			markCovered(covered, i, j)
			i = j

		case b == '(' || b == ')' || b == '[' || b == ']' || b == '{' || b == '}':
			tokens = append(tokens, Token{Type: TokenPunctuationBracket, Start: start + i, End: start + i + 1})
			covered[i] = true
			i++

		case b == ',' || b == ';':
			tokens = append(tokens, Token{Type: TokenPunctuation, Start: start + i, End: start + i + 1})
			covered[i] = true
			i++

		default:
			i++
		}
	}

	return tokens
}

func isWordByte(b byte) bool {
	return b == '_' || b >= 0x80 ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isOperatorByte(b byte) bool {
	switch b {
	case '=', '+', '-', '*', '/', '<', '>', '@', '$', '~', '&', '%', '|', '!', '?', '^', '.', ':', '\\':
		return true
	}
	return false
}

func isCovered(covered []bool, start, end int) bool {
	for i := start; i < end && i < len(covered); i++ {
		if covered[i] {
			return true
		}
	}
	return false
}

func markCovered(covered []bool, start, end int) {
	if start < 0 {
		start = 0
	}
	for i := start; i < end && i < len(covered); i++ {
		covered[i] = true
	}
}
