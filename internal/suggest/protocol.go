package suggest

import (
	"fmt"
	"strconv"
	"strings"
)

// Method identifies a query kind understood by the tool.
type Method string

// Query methods.
const (
	// MethodSug requests completion suggestions at a position.
	MethodSug Method = "sug"
	// MethodCon requests the invocation context (signature help).
	MethodCon Method = "con"
	// MethodDef requests the definition of the symbol at a position.
	MethodDef Method = "def"
	// MethodUse requests all usages of the symbol at a position.
	MethodUse Method = "use"
)

// Query identifies a source position for a tool request.
type Query struct {
	// FilePath is the file as the tool knows it on disk.
	FilePath string
	// DirtyPath optionally points at a staged copy holding unsaved edits.
	DirtyPath string
	// Line is 1-based.
	Line int
	// Col is 0-based, per the tool's convention.
	Col int
}

// Entry is one record of a tool response.
type Entry struct {
	// Section echoes the query method the record answers.
	Section string
	// SymKind is the tool's symbol kind, e.g. "skProc" or "skVar".
	SymKind string
	// QualifiedPath is the module-qualified symbol name.
	QualifiedPath []string
	// Forth is the type signature text.
	Forth string
	// FilePath locates the symbol's source file.
	FilePath string
	// Line is 1-based.
	Line int
	// Col is 0-based.
	Col int
	// Doc is the symbol's documentation, if any.
	Doc string
}

// Name returns the unqualified symbol name.
func (e Entry) Name() string {
	if len(e.QualifiedPath) == 0 {
		return ""
	}
	return e.QualifiedPath[len(e.QualifiedPath)-1]
}

// Location returns the entry's position as "file:line:col".
func (e Entry) Location() string {
	return fmt.Sprintf("%s:%d:%d", e.FilePath, e.Line, e.Col)
}

// encodeRequest renders a query as a single protocol line:
//
//	method "file";"dirtyfile":line:col
//
// The dirty file part is omitted when no staged copy exists.
func encodeRequest(m Method, q Query) string {
	if q.DirtyPath != "" {
		return fmt.Sprintf("%s \"%s\";\"%s\":%d:%d", m, q.FilePath, q.DirtyPath, q.Line, q.Col)
	}
	return fmt.Sprintf("%s \"%s\":%d:%d", m, q.FilePath, q.Line, q.Col)
}

// recordFields is the number of tab-separated fields a record carries.
// Newer tool versions append extra fields, which are ignored.
const recordFields = 8

// parseEntry parses one tab-separated response record:
//
//	section symKind qualifiedPath forth filePath line col doc
func parseEntry(line string) (Entry, error) {
	// The tool writes its interactive prompt without a trailing newline, so
	// the prompt can end up prefixed to the first record of a response.
	for strings.HasPrefix(line, "> ") {
		line = line[2:]
	}

	fields := strings.Split(line, "\t")
	if len(fields) < recordFields {
		return Entry{}, fmt.Errorf("%w: want %d fields, got %d", ErrInvalidRecord, recordFields, len(fields))
	}

	lineNum, err := strconv.Atoi(fields[5])
	if err != nil {
		return Entry{}, fmt.Errorf("%w: bad line number %q", ErrInvalidRecord, fields[5])
	}
	col, err := strconv.Atoi(fields[6])
	if err != nil {
		return Entry{}, fmt.Errorf("%w: bad column %q", ErrInvalidRecord, fields[6])
	}

	return Entry{
		Section:       fields[0],
		SymKind:       fields[1],
		QualifiedPath: strings.Split(fields[2], "."),
		Forth:         fields[3],
		FilePath:      fields[4],
		Line:          lineNum,
		Col:           col,
		Doc:           unquoteDoc(fields[7]),
	}, nil
}

// unquoteDoc strips the quoting the tool applies to the doc field. Empty
// docs arrive as `""`. Malformed quoting falls back to the raw text.
func unquoteDoc(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if unquoted, err := strconv.Unquote(s); err == nil {
			return unquoted
		}
	}
	return s
}
