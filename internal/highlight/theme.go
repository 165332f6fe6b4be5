package highlight

import "strings"

// ansiReset clears all terminal attributes.
const ansiReset = "\x1b[0m"

// Theme maps token types to ANSI escape sequences.
type Theme struct {
	name   string
	styles map[TokenType]string
}

// Name returns the theme name.
func (t *Theme) Name() string {
	return t.name
}

// Style returns the escape sequence for a token type. Types without an
// explicit style fall back to their group's style; unknown types render
// unstyled.
func (t *Theme) Style(tokenType TokenType) string {
	if s, ok := t.styles[tokenType]; ok {
		return s
	}
	switch {
	case tokenType.IsComment():
		return t.styles[TokenComment]
	case tokenType.IsString():
		return t.styles[TokenString]
	case tokenType.IsNumber():
		return t.styles[TokenNumber]
	case tokenType.IsKeyword():
		return t.styles[TokenKeyword]
	}
	return ""
}

// Paint renders a line with its tokens wrapped in escape sequences. Tokens
// must be sorted and non-overlapping, as HighlightLine produces them.
func (t *Theme) Paint(line string, tokens []Token) string {
	if len(tokens) == 0 {
		return line
	}

	var b strings.Builder
	pos := 0
	for _, tok := range tokens {
		if tok.Start < pos || tok.End > len(line) {
			continue
		}
		b.WriteString(line[pos:tok.Start])
		if style := t.Style(tok.Type); style != "" {
			b.WriteString(style)
			b.WriteString(line[tok.Start:tok.End])
			b.WriteString(ansiReset)
		} else {
			b.WriteString(line[tok.Start:tok.End])
		}
		pos = tok.End
	}
	b.WriteString(line[pos:])
	return b.String()
}

// DefaultTheme returns the dark 16-color theme.
func DefaultTheme() *Theme {
	return &Theme{
		name: "dark",
		styles: map[TokenType]string{
			TokenComment:            "\x1b[90m",
			TokenCommentDoc:         "\x1b[90;1m",
			TokenString:             "\x1b[32m",
			TokenStringChar:         "\x1b[32m",
			TokenNumber:             "\x1b[35m",
			TokenKeyword:            "\x1b[34;1m",
			TokenKeywordControl:     "\x1b[34;1m",
			TokenKeywordOperator:    "\x1b[34m",
			TokenKeywordDeclaration: "\x1b[34;1m",
			TokenKeywordOther:       "\x1b[34;1m",
			TokenOperator:           "\x1b[36m",
			TokenExported:           "\x1b[33;1m",
			TokenConstant:           "\x1b[35;1m",
			TokenFunction:           "\x1b[33m",
			TokenFunctionBuiltin:    "\x1b[33m",
			TokenTypeBuiltin:        "\x1b[36;1m",
			TokenTypeName:           "\x1b[36;1m",
			TokenMeta:               "\x1b[31m",
		},
	}
}

// LightTheme returns a theme for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		name: "light",
		styles: map[TokenType]string{
			TokenComment:            "\x1b[37m",
			TokenCommentDoc:         "\x1b[37;1m",
			TokenString:             "\x1b[32m",
			TokenStringChar:         "\x1b[32m",
			TokenNumber:             "\x1b[31m",
			TokenKeyword:            "\x1b[34;1m",
			TokenKeywordControl:     "\x1b[34;1m",
			TokenKeywordOperator:    "\x1b[34m",
			TokenKeywordDeclaration: "\x1b[34;1m",
			TokenKeywordOther:       "\x1b[34;1m",
			TokenOperator:           "\x1b[30m",
			TokenExported:           "\x1b[33m",
			TokenConstant:           "\x1b[31;1m",
			TokenFunction:           "\x1b[94m",
			TokenFunctionBuiltin:    "\x1b[94m",
			TokenTypeBuiltin:        "\x1b[36m",
			TokenTypeName:           "\x1b[36m",
			TokenMeta:               "\x1b[35m",
		},
	}
}

// MonoTheme returns a theme with no styling, useful for plain output and
// tests.
func MonoTheme() *Theme {
	return &Theme{name: "mono", styles: map[TokenType]string{}}
}

// ThemeByName looks up a built-in theme.
func ThemeByName(name string) (*Theme, bool) {
	switch name {
	case "dark", "":
		return DefaultTheme(), true
	case "light":
		return LightTheme(), true
	case "mono":
		return MonoTheme(), true
	default:
		return nil, false
	}
}
