package indent

// DefaultOffset is the indentation step used when none is configured.
// The Nim style guide indents by two spaces.
const DefaultOffset = 2

// Rules holds the language knowledge the engine consults: the indentation
// step and the keyword and token sets that drive classification.
type Rules struct {
	// Offset is the indentation step in columns.
	Offset int
	// BlockStart are keywords that open an indented block when their
	// statement ends with a colon or definition equals, or that stand
	// alone as a section header (var, let, type, import).
	BlockStart []string
	// Indenters are tokens that imply an indented next line when they end
	// a line, such as object or enum in a type definition.
	Indenters []string
	// Dedenters are leading tokens that dedent their own line relative to
	// the previous statement, such as else and except.
	Dedenters []string
	// Operators are tokens that continue a statement across lines when
	// dangling at the end of a line or leading the next one.
	Operators []string
	// Routines are the keywords that introduce a routine definition; a
	// trailing equals only opens a block when its statement contains one.
	Routines []string
}

// DefaultRules returns the rule set for plain Nim.
func DefaultRules() Rules {
	return Rules{
		Offset: DefaultOffset,
		BlockStart: []string{
			"if", "when", "elif", "else", "case", "of", "while", "for",
			"try", "except", "finally", "block", "defer", "do", "static",
			"proc", "func", "method", "iterator", "macro", "template",
			"converter", "type", "const", "let", "var", "import", "export",
			"include", "using",
		},
		Indenters: []string{"object", "enum", "tuple", "concept"},
		Dedenters: []string{"elif", "else", "of", "except", "finally"},
		Operators: []string{
			"=", "+", "-", "*", "/", "%", "&", "|", "^", "<", ">",
			"==", "!=", "<=", ">=", "->", "=>", "..",
			"+=", "-=", "*=", "/=", "&=",
			"and", "or", "xor", "not", "div", "mod", "shl", "shr",
			"in", "notin", "is", "isnot",
		},
		Routines: []string{
			"proc", "func", "method", "iterator", "macro", "template",
			"converter",
		},
	}
}

// compiledRules is the lookup form of Rules.
type compiledRules struct {
	Offset     int
	blockStart map[string]struct{}
	indenters  map[string]struct{}
	dedenters  map[string]struct{}
	operators  map[string]struct{}
	routines   map[string]struct{}
}

// compile normalizes a rule set for lookup. A non-positive offset falls
// back to DefaultOffset.
func compile(r Rules) compiledRules {
	if r.Offset <= 0 {
		r.Offset = DefaultOffset
	}
	return compiledRules{
		Offset:     r.Offset,
		blockStart: toSet(r.BlockStart),
		indenters:  toSet(r.Indenters),
		dedenters:  toSet(r.Dedenters),
		operators:  toSet(r.Operators),
		routines:   toSet(r.Routines),
	}
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}

func (r compiledRules) isBlockStart(tok string) bool {
	_, ok := r.blockStart[tok]
	return ok
}

func (r compiledRules) isIndenter(tok string) bool {
	_, ok := r.indenters[tok]
	return ok
}

func (r compiledRules) isDedenter(tok string) bool {
	_, ok := r.dedenters[tok]
	return ok
}

func (r compiledRules) isOperator(tok string) bool {
	_, ok := r.operators[tok]
	return ok
}

func (r compiledRules) isRoutine(tok string) bool {
	_, ok := r.routines[tok]
	return ok
}
