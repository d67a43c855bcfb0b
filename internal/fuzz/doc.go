// Package fuzztests houses Go fuzz harnesses for the analysis pipeline
// (text -> lexer -> parser -> scope builder). They guard against panics,
// hangs and broken span or table invariants on arbitrary input.
package fuzztests
