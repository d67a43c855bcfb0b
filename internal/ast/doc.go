// Package ast defines the LPC syntax tree produced by the parser.
//
// Nodes are tagged variants: every construct is its own struct and consumers
// dispatch with type switches. Declarations, statements and expressions are
// separated by the Decl, Stmt and Expr marker interfaces. Spans are half-open
// byte offsets into the normalized document text.
//
// Malformed regions become BadDecl, BadStmt or BadExpr nodes so that consumers
// can skip them and keep walking.
package ast
