// Package diag defines the diagnostic model shared by the lexer, the parser and
// the scope builder.
//
// Diagnostic is the central record: a Severity, a numeric Code with a stable
// string form (LEXnnnn, SYNnnnn, SEMnnnn), a short Message, the Primary span and
// optional Notes pointing at related spans.
//
// Producers emit through a Reporter (BagReporter collects into a Bag,
// DedupReporter filters repeats) or build records with ReportBuilder. Package
// diag does no formatting or IO; rendering lives in internal/diagfmt.
package diag
