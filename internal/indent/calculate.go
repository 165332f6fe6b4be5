package indent

import (
	"strings"

	"github.com/dshills/nimstorm/internal/syntax"
	"github.com/dshills/nimstorm/internal/textbuf"
)

// Calculate maps a context to the target indentation column.
func (e *Engine) Calculate(ctx Context) int {
	switch ctx.Kind {
	case NoIndent:
		return 0
	case InsideString:
		// Copy the indentation of the line that opened the string. String
		// content is never re-derived from code context.
		return e.buf.Indentation(e.buf.LineAt(ctx.Anchor))
	case AfterBlockStart:
		return e.buf.Indentation(e.buf.LineAt(ctx.Anchor)) + e.rules.Offset
	case AfterLine:
		return e.afterLineColumn(ctx)
	case AfterOperator:
		return e.afterOperatorColumn(ctx)
	case InsideParen:
		return e.insideParenColumn(ctx)
	default:
		return 0
	}
}

// afterLineColumn aligns with the statement owning the previous line, minus
// one step when the current line leads with a dedenter keyword. A dedent
// below column 0 clamps to 0.
func (e *Engine) afterLineColumn(ctx Context) int {
	start := e.statementStart(ctx.Anchor, ctx.limit)
	col := e.buf.Indentation(e.buf.LineAt(start))

	line := e.buf.LineAt(ctx.At)
	if tok, _ := e.firstCodeToken(line); e.rules.isDedenter(tok) {
		col -= e.rules.Offset
		if col < 0 {
			col = 0
		}
	}
	return col
}

// afterOperatorColumn aligns a continuation line. A statement led by a
// block keyword aligns one column past the keyword; otherwise the line
// aligns after the statement's assignment operator when one exists with
// content behind it; otherwise it indents one step from the statement.
func (e *Engine) afterOperatorColumn(ctx Context) int {
	buf := e.buf
	start := e.statementStart(ctx.Anchor, ctx.limit)
	line := buf.LineAt(start)

	tok := e.tokenAt(start)
	if e.rules.isBlockStart(tok) {
		return buf.DisplayCol(start+textbuf.Pos(len(tok))) + 1
	}

	if after, ok := e.afterAssignment(start); ok {
		return buf.DisplayCol(after)
	}

	return buf.Indentation(line) + e.rules.Offset
}

// afterAssignment finds the first assignment operator on the statement's
// first line and returns the position of the content following it. Only
// code spans are searched, so equals signs inside strings or comments do
// not count. A dangling assignment with nothing behind it reports false.
func (e *Engine) afterAssignment(start textbuf.Pos) (textbuf.Pos, bool) {
	buf := e.buf
	line := buf.LineAt(start)
	text := buf.Line(line)
	lineStart := buf.LineStart(line)
	codeEnd := e.scan.CodeEnd(line)
	startCol := start - lineStart

	for _, sp := range e.scan.LineSpans(line) {
		if sp.Kind != syntax.SpanCode {
			continue
		}
		col := sp.Start
		if col < startCol {
			col = startCol
		}
		for col < sp.End && col < codeEnd {
			if !isOpByte(text[col]) {
				col++
				continue
			}
			runStart := col
			for col < sp.End && col < codeEnd && isOpByte(text[col]) {
				col++
			}
			if !isAssignOp(text[runStart:col]) {
				continue
			}
			// Skip whitespace after the operator; a bare trailing
			// assignment does not anchor anything.
			after := col
			for after < codeEnd && (text[after] == ' ' || text[after] == '\t') {
				after++
			}
			if after >= codeEnd {
				return 0, false
			}
			return lineStart + textbuf.Pos(after), true
		}
	}
	return 0, false
}

// isAssignOp reports whether an operator run is an assignment: a bare
// equals or a compound like += that is not a comparison.
func isAssignOp(tok string) bool {
	if tok == "=" {
		return true
	}
	if len(tok) < 2 || tok[len(tok)-1] != '=' {
		return false
	}
	switch tok[len(tok)-2] {
	case '=', '<', '>', '!':
		return false
	}
	return true
}

// insideParenColumn computes the column for a line inside an unclosed
// bracket. A line leading with the closer of the outermost bracket aligns
// with the opener's line; otherwise content aligns just past the opener
// when the opener has trailing content (aligned style) or one step in from
// the opener's line when it does not (hanging style), adjusted one step
// out for a nested closer and one step in when a hanging opener's line
// starts a block.
func (e *Engine) insideParenColumn(ctx Context) int {
	buf := e.buf
	open := ctx.Anchor
	openLine := buf.LineAt(open)
	openCol := open - buf.LineStart(openLine)
	curLine := buf.LineAt(ctx.At)

	closerFirst := false
	first := buf.FirstNonBlank(curLine)
	if first < buf.LineEnd(curLine) {
		switch buf.Text()[first] {
		case ')', ']', '}':
			closerFirst = true
			if e.scan.ParenDepth(first+1) == 0 {
				// Closing the outermost bracket: align with its line.
				return buf.Indentation(openLine)
			}
		}
	}

	hanging := e.scan.CodeEnd(openLine) <= openCol+1
	var col int
	if hanging {
		col = buf.Indentation(openLine) + e.rules.Offset
	} else {
		col = buf.DisplayCol(open) + 1
	}

	switch {
	case closerFirst:
		col -= e.rules.Offset
		if col < 0 {
			col = 0
		}
	case hanging:
		if tok, _ := e.firstCodeToken(openLine); e.rules.isBlockStart(tok) {
			col += e.rules.Offset
		}
	}
	return col
}

// indentText returns col spaces.
func indentText(col int) string {
	if col <= 0 {
		return ""
	}
	return strings.Repeat(" ", col)
}
