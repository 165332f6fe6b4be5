package suggest

import (
	"errors"
	"testing"
)

func TestEncodeRequest(t *testing.T) {
	tests := []struct {
		name   string
		method Method
		query  Query
		want   string
	}{
		{
			name:   "without dirty file",
			method: MethodDef,
			query:  Query{FilePath: "foo.nim", Line: 3, Col: 11},
			want:   `def "foo.nim":3:11`,
		},
		{
			name:   "with dirty file",
			method: MethodSug,
			query:  Query{FilePath: "foo.nim", DirtyPath: "/tmp/stage/foo.nim", Line: 10, Col: 4},
			want:   `sug "foo.nim";"/tmp/stage/foo.nim":10:4`,
		},
		{
			name:   "usages",
			method: MethodUse,
			query:  Query{FilePath: "/src/lexer.nim", Line: 120, Col: 0},
			want:   `use "/src/lexer.nim":120:0`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodeRequest(tt.method, tt.query); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseEntry(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Entry
	}{
		{
			name: "full record",
			line: "def\tskProc\tsystem.echo\tproc (x: varargs[typed])\t/usr/lib/nim/system.nim\t2011\t5\t\"writes to stdout\"",
			want: Entry{
				Section:       "def",
				SymKind:       "skProc",
				QualifiedPath: []string{"system", "echo"},
				Forth:         "proc (x: varargs[typed])",
				FilePath:      "/usr/lib/nim/system.nim",
				Line:          2011,
				Col:           5,
				Doc:           "writes to stdout",
			},
		},
		{
			name: "escaped doc",
			line: "sug\tskVar\tfoo.count\tint\t/tmp/foo.nim\t5\t4\t\"first\\nsecond\"",
			want: Entry{
				Section:       "sug",
				SymKind:       "skVar",
				QualifiedPath: []string{"foo", "count"},
				Forth:         "int",
				FilePath:      "/tmp/foo.nim",
				Line:          5,
				Col:           4,
				Doc:           "first\nsecond",
			},
		},
		{
			name: "prompt prefix stripped",
			line: "> use\tskLet\tfoo.x\tint\t/tmp/foo.nim\t1\t4\t\"\"",
			want: Entry{
				Section:       "use",
				SymKind:       "skLet",
				QualifiedPath: []string{"foo", "x"},
				Forth:         "int",
				FilePath:      "/tmp/foo.nim",
				Line:          1,
				Col:           4,
				Doc:           "",
			},
		},
		{
			name: "extra trailing fields ignored",
			line: "sug\tskProc\tfoo.bar\tproc ()\t/tmp/foo.nim\t3\t0\t\"\"\t100",
			want: Entry{
				Section:       "sug",
				SymKind:       "skProc",
				QualifiedPath: []string{"foo", "bar"},
				Forth:         "proc ()",
				FilePath:      "/tmp/foo.nim",
				Line:          3,
				Col:           0,
				Doc:           "",
			},
		},
		{
			name: "unquoted doc kept as is",
			line: "con\tskProc\tfoo.bar\tproc ()\t/tmp/foo.nim\t3\t0\tplain text",
			want: Entry{
				Section:       "con",
				SymKind:       "skProc",
				QualifiedPath: []string{"foo", "bar"},
				Forth:         "proc ()",
				FilePath:      "/tmp/foo.nim",
				Line:          3,
				Col:           0,
				Doc:           "plain text",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEntry(tt.line)
			if err != nil {
				t.Fatalf("parseEntry() error = %v", err)
			}
			if got.Section != tt.want.Section || got.SymKind != tt.want.SymKind {
				t.Errorf("expected %s/%s, got %s/%s", tt.want.Section, tt.want.SymKind, got.Section, got.SymKind)
			}
			if len(got.QualifiedPath) != len(tt.want.QualifiedPath) {
				t.Fatalf("expected path %v, got %v", tt.want.QualifiedPath, got.QualifiedPath)
			}
			for i := range got.QualifiedPath {
				if got.QualifiedPath[i] != tt.want.QualifiedPath[i] {
					t.Errorf("expected path %v, got %v", tt.want.QualifiedPath, got.QualifiedPath)
				}
			}
			if got.Forth != tt.want.Forth {
				t.Errorf("expected forth %q, got %q", tt.want.Forth, got.Forth)
			}
			if got.FilePath != tt.want.FilePath {
				t.Errorf("expected file %q, got %q", tt.want.FilePath, got.FilePath)
			}
			if got.Line != tt.want.Line || got.Col != tt.want.Col {
				t.Errorf("expected %d:%d, got %d:%d", tt.want.Line, tt.want.Col, got.Line, got.Col)
			}
			if got.Doc != tt.want.Doc {
				t.Errorf("expected doc %q, got %q", tt.want.Doc, got.Doc)
			}
		})
	}
}

func TestParseEntryInvalid(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"banner text", "Nimsuggest v2.0.0"},
		{"too few fields", "def\tskProc\tsystem.echo"},
		{"bad line number", "def\tskProc\tfoo.bar\tproc ()\t/tmp/foo.nim\tx\t0\t\"\""},
		{"bad column", "def\tskProc\tfoo.bar\tproc ()\t/tmp/foo.nim\t3\ty\t\"\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseEntry(tt.line); !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("expected ErrInvalidRecord, got %v", err)
			}
		})
	}
}

func TestEntryName(t *testing.T) {
	entry := Entry{QualifiedPath: []string{"system", "io", "readLine"}}
	if got := entry.Name(); got != "readLine" {
		t.Errorf("expected readLine, got %q", got)
	}

	empty := Entry{}
	if got := empty.Name(); got != "" {
		t.Errorf("expected empty name, got %q", got)
	}
}

func TestEntryLocation(t *testing.T) {
	entry := Entry{FilePath: "/src/foo.nim", Line: 12, Col: 3}
	if got := entry.Location(); got != "/src/foo.nim:12:3" {
		t.Errorf("unexpected location %q", got)
	}
}
