// Package token defines lexical token kinds and trivia for LPC sources.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Comments, whitespace and preprocessor lines are leading Trivia of the next
//     significant token and never appear in the token stream.
//   - Built-in type names (int, string, mapping, ...) and declaration modifiers
//     are keywords; struct/class names and efuns are identifiers.
package token
