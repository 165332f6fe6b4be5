// Package syntax provides lexical analysis of Nim source text for the
// indentation engine and the highlighter.
//
// The analyzer is a line oriented state machine: scanning a line under the
// state at its start yields the state at the start of the next line, plus
// the string/comment/code spans within the line. A Scanner caches per-line
// states for a buffer and rebuilds them lazily whenever the buffer revision
// changes, so position queries only ever rescan a single line.
//
// The analysis is deliberately shallow. It tracks exactly what indentation
// and font-lock need: string literals (plain, raw, triple quoted, character),
// comments (line, nested block), and the stack of unclosed brackets. It does
// not parse Nim.
package syntax
