package ast

import (
	"strings"

	"lpcls/internal/source"
	"lpcls/internal/token"
)

// Node is any syntax tree element.
type Node interface {
	Span() source.Span
}

// Decl is a top-level declaration.
type Decl interface {
	Node
	declNode()
}

// Stmt is a statement inside a function body.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// File is the root of a parsed document.
type File struct {
	Sp    source.Span
	Decls []Decl
}

func (f *File) Span() source.Span { return f.Sp }

// Ident is a name occurrence. It is also an expression.
type Ident struct {
	Name string
	Sp   source.Span
}

func (i *Ident) Span() source.Span { return i.Sp }
func (*Ident) exprNode()           {}

// Valid reports whether the identifier carries a name.
func (i *Ident) Valid() bool { return i != nil && i.Name != "" }

// TypeRef is a written type: a base name plus array markers.
//
//	int          Name "int"
//	struct Point Name "struct Point"
//	class Node*  Name "class Node", Stars 1
type TypeRef struct {
	Name  string
	Stars int
	Sp    source.Span
}

func (t *TypeRef) Span() source.Span { return t.Sp }

// Text renders the type the way symbols store it, e.g. "string*".
func (t *TypeRef) Text() string {
	if t == nil || t.Name == "" {
		return ""
	}
	return t.Name + strings.Repeat("*", t.Stars)
}

// WithStars returns the type text with extra per-declarator array markers.
func (t *TypeRef) WithStars(extra int) string {
	base := t.Text()
	if base == "" {
		return ""
	}
	return base + strings.Repeat("*", extra)
}

// Operator kinds reuse token kinds.
type Op = token.Kind
