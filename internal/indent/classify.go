package indent

import (
	"github.com/dshills/nimstorm/internal/syntax"
	"github.com/dshills/nimstorm/internal/textbuf"
)

// Classify determines the indentation context for the line containing pos.
// Classification is total: every position maps to exactly one context.
//
// The decision order matters. String state wins over everything, an
// unclosed bracket narrows the remaining checks to its interior, and the
// block/operator checks run before the plain after-line fallback.
func (e *Engine) Classify(pos textbuf.Pos) Context {
	buf := e.buf
	line := buf.LineAt(pos)
	st := e.scan.LineState(line)

	// Inside a multi-line string literal.
	if st.InString() {
		return Context{Kind: InsideString, Anchor: st.StrStart, At: pos}
	}

	// Inside an unclosed bracket: analyze only its interior.
	if p, ok := st.Inner(); ok {
		return e.classifyInParen(pos, line, p)
	}

	// The first line has nothing above it to indent against.
	if line == 0 {
		return Context{Kind: NoIndent, Anchor: 0, At: pos}
	}

	curTok, curTokPos := e.firstCodeToken(line)

	// After a block opener, unless this line leads with a dedenter: the
	// dedenter realigns against the enclosing statement instead.
	if !e.rules.isDedenter(curTok) {
		if ctx, ok := e.afterBlockStart(pos, line, 0); ok {
			return ctx
		}
	}

	// A leading continuation operator on the current line.
	if e.rules.isOperator(curTok) {
		return Context{Kind: AfterOperator, Anchor: curTokPos, At: pos}
	}

	prev, ok := e.prevCodeLine(line, 0)
	if !ok {
		return Context{Kind: NoIndent, Anchor: 0, At: pos}
	}

	// A dangling continuation operator on the previous code line.
	if tok, tokPos := e.lastCodeToken(prev, 0); e.rules.isOperator(tok) {
		return Context{Kind: AfterOperator, Anchor: tokPos, At: pos}
	}

	// An ordinary previous line.
	return Context{Kind: AfterLine, Anchor: buf.FirstNonBlank(prev), At: pos}
}

// classifyInParen classifies a line that starts inside an unclosed bracket.
// Block and operator contexts can still apply within the bracket interior;
// when nothing more specific matches, the bracket itself is the context.
func (e *Engine) classifyInParen(pos textbuf.Pos, line int, open syntax.Paren) Context {
	limit := open.Pos + 1

	curTok, curTokPos := e.firstCodeToken(line)

	if !e.rules.isDedenter(curTok) {
		if ctx, ok := e.afterBlockStart(pos, line, limit); ok {
			return ctx
		}
	}

	if e.rules.isOperator(curTok) {
		return Context{Kind: AfterOperator, Anchor: curTokPos, At: pos, limit: limit}
	}

	if prev, ok := e.prevCodeLine(line, limit); ok {
		if tok, tokPos := e.lastCodeToken(prev, limit); e.rules.isOperator(tok) {
			return Context{Kind: AfterOperator, Anchor: tokPos, At: pos, limit: limit}
		}
	}

	return Context{Kind: InsideParen, Anchor: open.Pos, At: pos}
}

// afterBlockStart reports whether the code preceding line opens a block:
// its last character is a colon, its last character is an equals on a
// routine definition, it is a bare declaration keyword (var, type, ...), or
// it ends with an indenter token (object, enum, ...). The context anchor is
// the statement owning the opener.
func (e *Engine) afterBlockStart(pos textbuf.Pos, line int, limit textbuf.Pos) (Context, bool) {
	prev, ok := e.prevCodeLine(line, limit)
	if !ok {
		return Context{}, false
	}

	text := e.buf.Line(prev)
	end := e.scan.CodeEnd(prev)
	if end == 0 || end > len(text) {
		return Context{}, false
	}
	lineStart := e.buf.LineStart(prev)
	codeEnd := lineStart + end

	opens := false
	switch text[end-1] {
	case ':':
		opens = codeEnd-1 >= limit
	case '=':
		// A trailing equals only opens a block on a routine definition
		// (proc f() =). Plain assignments fall through to the operator
		// checks.
		if codeEnd-1 >= limit {
			start := e.statementStart(codeEnd-1, limit)
			opens = e.containsRoutine(start, codeEnd)
		}
	}

	if !opens {
		// A bare declaration keyword owning the whole line: var, let,
		// const, type, import.
		if tok, tokPos := e.firstCodeToken(prev); tok != "" && tokPos >= limit {
			if e.rules.isBlockStart(tok) && lineStart+end == tokPos+textbuf.Pos(len(tok)) {
				opens = true
			}
		}
	}

	if !opens {
		// A trailing indenter token: type Foo = object, enum, tuple.
		if tok, _ := e.lastCodeToken(prev, limit); e.rules.isIndenter(tok) {
			opens = true
		}
	}

	if !opens {
		return Context{}, false
	}

	anchor := e.statementStart(lineStart+end, limit)
	return Context{Kind: AfterBlockStart, Anchor: anchor, At: pos, limit: limit}, true
}
