package ast

import (
	"lpcls/internal/source"
)

type Block struct {
	Sp    source.Span
	Stmts []Stmt
}

type ExprStmt struct {
	X Expr
}

type IfStmt struct {
	Sp   source.Span
	Cond Expr
	Then Stmt
	Else Stmt
}

type WhileStmt struct {
	Sp   source.Span
	Cond Expr
	Body Stmt
}

type DoStmt struct {
	Sp   source.Span
	Body Stmt
	Cond Expr
}

// ForStmt is `for (init; cond; post) body`. Init is a *VarDecl, an *ExprStmt or nil.
type ForStmt struct {
	Sp   source.Span
	Init Stmt
	Cond Expr
	Post Expr
	Body Stmt
}

// ForeachVar is one loop variable. Type is nil when the variable is not declared in
// the loop header.
type ForeachVar struct {
	Type  *TypeRef
	Stars int
	Name  *Ident
}

// TypeText is the written type of the loop variable or "".
func (v *ForeachVar) TypeText() string {
	return v.Type.WithStars(v.Stars)
}

type ForeachStmt struct {
	Sp   source.Span
	Vars []*ForeachVar
	Coll Expr
	Body Stmt
}

type SwitchStmt struct {
	Sp   source.Span
	Tag  Expr
	Body *Block
}

// CaseClause is a `case` label. Hi is set for ranges (`case 1..5:`).
type CaseClause struct {
	Sp    source.Span
	Value Expr
	Hi    Expr
}

type DefaultClause struct {
	Sp source.Span
}

type ReturnStmt struct {
	Sp     source.Span
	Result Expr
}

type BreakStmt struct{ Sp source.Span }

type ContinueStmt struct{ Sp source.Span }

type EmptyStmt struct{ Sp source.Span }

type BadStmt struct{ Sp source.Span }

func (s *Block) Span() source.Span         { return s.Sp }
func (s *ExprStmt) Span() source.Span      { return s.X.Span() }
func (s *IfStmt) Span() source.Span        { return s.Sp }
func (s *WhileStmt) Span() source.Span     { return s.Sp }
func (s *DoStmt) Span() source.Span        { return s.Sp }
func (s *ForStmt) Span() source.Span       { return s.Sp }
func (s *ForeachStmt) Span() source.Span   { return s.Sp }
func (s *SwitchStmt) Span() source.Span    { return s.Sp }
func (s *CaseClause) Span() source.Span    { return s.Sp }
func (s *DefaultClause) Span() source.Span { return s.Sp }
func (s *ReturnStmt) Span() source.Span    { return s.Sp }
func (s *BreakStmt) Span() source.Span     { return s.Sp }
func (s *ContinueStmt) Span() source.Span  { return s.Sp }
func (s *EmptyStmt) Span() source.Span     { return s.Sp }
func (s *BadStmt) Span() source.Span       { return s.Sp }

func (*Block) stmtNode()         {}
func (*ExprStmt) stmtNode()      {}
func (*IfStmt) stmtNode()        {}
func (*WhileStmt) stmtNode()     {}
func (*DoStmt) stmtNode()        {}
func (*ForStmt) stmtNode()       {}
func (*ForeachStmt) stmtNode()   {}
func (*SwitchStmt) stmtNode()    {}
func (*CaseClause) stmtNode()    {}
func (*DefaultClause) stmtNode() {}
func (*ReturnStmt) stmtNode()    {}
func (*BreakStmt) stmtNode()     {}
func (*ContinueStmt) stmtNode()  {}
func (*EmptyStmt) stmtNode()     {}
func (*BadStmt) stmtNode()       {}
