package ast

import (
	"lpcls/internal/source"
)

// InheritDecl is `inherit REF;`. Raw keeps the reference text exactly as written
// (a string literal, a macro name, or a concatenation such as `DIR "room"`).
type InheritDecl struct {
	Sp        source.Span
	Modifiers []string
	Raw       string
	RawSp     source.Span
	Parts     []Expr
}

// VarDecl declares one or more variables sharing a base type. It appears both at
// file level and as a statement.
type VarDecl struct {
	Sp        source.Span
	Modifiers []string
	Type      *TypeRef
	Vars      []*Declarator
	Doc       string
}

// Declarator is one name in a VarDecl, with its own array markers and initializer.
type Declarator struct {
	Sp    source.Span
	Name  *Ident
	Stars int
	Init  Expr
}

// TypeText is the declarator's full type, e.g. "int*" for `int *a`.
func (v *VarDecl) TypeText(d *Declarator) string {
	return v.Type.WithStars(d.Stars)
}

// FuncDecl is a function definition or prototype. Type is nil when no return type is written.
type FuncDecl struct {
	Sp        source.Span
	Modifiers []string
	Type      *TypeRef
	Stars     int
	Name      *Ident
	Params    []*Param
	Varargs   bool
	Body      *Block // nil for prototypes
	Doc       string
}

// Param is a function or closure parameter.
type Param struct {
	Sp      source.Span
	Type    *TypeRef
	Stars   int
	Name    *Ident
	Default Expr
	Varargs bool
}

// TypeText is the parameter's full type or "" when unwritten.
func (p *Param) TypeText() string {
	return p.Type.WithStars(p.Stars)
}

// StructDecl is a struct or class definition. Keyword is "struct" or "class".
type StructDecl struct {
	Sp      source.Span
	Keyword string
	Name    *Ident
	Body    source.Span
	Fields  []*VarDecl
	Doc     string
}

// BadDecl marks a region the parser could not understand.
type BadDecl struct {
	Sp source.Span
}

func (d *InheritDecl) Span() source.Span { return d.Sp }
func (d *VarDecl) Span() source.Span     { return d.Sp }
func (d *Declarator) Span() source.Span  { return d.Sp }
func (d *FuncDecl) Span() source.Span    { return d.Sp }
func (p *Param) Span() source.Span       { return p.Sp }
func (d *StructDecl) Span() source.Span  { return d.Sp }
func (d *BadDecl) Span() source.Span     { return d.Sp }

func (*InheritDecl) declNode() {}
func (*VarDecl) declNode()     {}
func (*FuncDecl) declNode()    {}
func (*StructDecl) declNode()  {}
func (*BadDecl) declNode()     {}

func (*VarDecl) stmtNode()    {}
func (*StructDecl) stmtNode() {}
