// Package textbuf provides the text buffer backing the editor integration.
//
// The buffer stores the full document as a contiguous string plus a line
// start index, which keeps offset/line conversions cheap and makes whole
// buffer scans (syntax analysis, region reindents) simple slices.
//
// The package provides:
//
//   - Byte offset and line/column coordinate conversion
//   - Line ending normalization to LF on load and insert
//   - Indentation measurement in display columns (tab stops and wide
//     character aware)
//   - Revision tracking for change detection by downstream analyzers
//
// Basic usage:
//
//	buf := textbuf.FromString("proc f() =\n  discard\n")
//	col := buf.Indentation(1) // 2
//	buf.Replace(buf.LineStart(1), buf.LineStart(1)+2, "    ")
//
// Concurrency:
//
// The editor protocol this package serves is strictly synchronous: one
// request mutates or reads the buffer at a time. Buffer is therefore not
// safe for concurrent use and performs no locking.
package textbuf
