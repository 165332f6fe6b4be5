// Package indent computes context sensitive indentation for Nim source.
//
// The engine works in two phases. Classification inspects the text around a
// position and produces a Context describing why the line indents the way it
// does: inside an unclosed bracket, inside a multi-line string, after a line
// that opens a block, after a dangling operator, or simply after an ordinary
// line. Calculation maps that context to a target column using a fixed rule
// per context kind.
//
// On top of the two phases sit the level cycler (Session), which lets a
// repeated indent request step a line through every plausible column, and
// the region operations, which reindent or rigidly shift a whole range.
//
// All language knowledge lives in Rules as plain keyword and token sets, so
// the behavior can be tuned from configuration without touching the engine.
package indent
