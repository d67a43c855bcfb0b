package ast

import (
	"lpcls/internal/source"
	"lpcls/internal/token"
)

// BasicLit is an int, float, char or string literal. Kind is the token kind.
type BasicLit struct {
	Sp    source.Span
	Kind  token.Kind
	Value string
}

// ArrayLit is `({ a, b })`.
type ArrayLit struct {
	Sp    source.Span
	Elems []Expr
}

type KeyValue struct {
	Key   Expr
	Value Expr
}

// MappingLit is `([ k: v ])`.
type MappingLit struct {
	Sp      source.Span
	Entries []KeyValue
}

// FuncPtrLit is `(: expr, args :)`.
type FuncPtrLit struct {
	Sp    source.Span
	Exprs []Expr
}

// Closure is `function(params) { body }`.
type Closure struct {
	Sp     source.Span
	Type   *TypeRef
	Params []*Param
	Body   *Block
}

type CallExpr struct {
	Sp   source.Span
	Fun  Expr
	Args []Expr
}

// MemberExpr is `X->Sel` or `X.Sel`. Op is token.Arrow or token.Dot.
type MemberExpr struct {
	Sp  source.Span
	X   Expr
	Op  Op
	Sel *Ident
}

// ScopedIdent is `::name` or `parent::name`.
type ScopedIdent struct {
	Sp        source.Span
	Qualifier string
	Name      *Ident
}

// IndexExpr is `X[i]` or a range `X[lo..hi]`; FromEnd marks `<` prefixes.
type IndexExpr struct {
	Sp      source.Span
	X       Expr
	Index   Expr
	Hi      Expr
	IsRange bool
	FromEnd bool
}

// UnaryExpr covers prefix and postfix operators.
type UnaryExpr struct {
	Sp      source.Span
	Op      Op
	X       Expr
	Postfix bool
}

type BinaryExpr struct {
	Sp source.Span
	Op Op
	X  Expr
	Y  Expr
}

// AssignExpr is `Lhs Op Rhs` where Op is '=' or a compound assignment.
type AssignExpr struct {
	Sp  source.Span
	Op  Op
	Lhs Expr
	Rhs Expr
}

type CondExpr struct {
	Sp   source.Span
	Cond Expr
	Then Expr
	Else Expr
}

type CastExpr struct {
	Sp   source.Span
	Type *TypeRef
	X    Expr
}

// CatchExpr is `catch(expr)` or `catch { block }`.
type CatchExpr struct {
	Sp    source.Span
	X     Expr
	Block *Block
}

// NewExpr is `new(class X)` or `new(struct X, field: v)`; Args may be empty.
type NewExpr struct {
	Sp   source.Span
	Type *TypeRef
	Args []Expr
}

type ParenExpr struct {
	Sp source.Span
	X  Expr
}

// CommaExpr is `a, b` where a single expression is expected.
type CommaExpr struct {
	Sp    source.Span
	Elems []Expr
}

// RefExpr is `ref x` or `&x` when passing by reference.
type RefExpr struct {
	Sp source.Span
	X  Expr
}

// SpreadExpr is `args...` in a call.
type SpreadExpr struct {
	Sp source.Span
	X  Expr
}

type BadExpr struct {
	Sp source.Span
}

func (e *BasicLit) Span() source.Span    { return e.Sp }
func (e *ArrayLit) Span() source.Span    { return e.Sp }
func (e *MappingLit) Span() source.Span  { return e.Sp }
func (e *FuncPtrLit) Span() source.Span  { return e.Sp }
func (e *Closure) Span() source.Span     { return e.Sp }
func (e *CallExpr) Span() source.Span    { return e.Sp }
func (e *MemberExpr) Span() source.Span  { return e.Sp }
func (e *ScopedIdent) Span() source.Span { return e.Sp }
func (e *IndexExpr) Span() source.Span   { return e.Sp }
func (e *UnaryExpr) Span() source.Span   { return e.Sp }
func (e *BinaryExpr) Span() source.Span  { return e.Sp }
func (e *AssignExpr) Span() source.Span  { return e.Sp }
func (e *CondExpr) Span() source.Span    { return e.Sp }
func (e *CastExpr) Span() source.Span    { return e.Sp }
func (e *CatchExpr) Span() source.Span   { return e.Sp }
func (e *NewExpr) Span() source.Span     { return e.Sp }
func (e *ParenExpr) Span() source.Span   { return e.Sp }
func (e *CommaExpr) Span() source.Span   { return e.Sp }
func (e *RefExpr) Span() source.Span     { return e.Sp }
func (e *SpreadExpr) Span() source.Span  { return e.Sp }
func (e *BadExpr) Span() source.Span     { return e.Sp }

func (*BasicLit) exprNode()    {}
func (*ArrayLit) exprNode()    {}
func (*MappingLit) exprNode()  {}
func (*FuncPtrLit) exprNode()  {}
func (*Closure) exprNode()     {}
func (*CallExpr) exprNode()    {}
func (*MemberExpr) exprNode()  {}
func (*ScopedIdent) exprNode() {}
func (*IndexExpr) exprNode()   {}
func (*UnaryExpr) exprNode()   {}
func (*BinaryExpr) exprNode()  {}
func (*AssignExpr) exprNode()  {}
func (*CondExpr) exprNode()    {}
func (*CastExpr) exprNode()    {}
func (*CatchExpr) exprNode()   {}
func (*NewExpr) exprNode()     {}
func (*ParenExpr) exprNode()   {}
func (*CommaExpr) exprNode()   {}
func (*RefExpr) exprNode()     {}
func (*SpreadExpr) exprNode()  {}
func (*BadExpr) exprNode()     {}

// Unparen strips any number of enclosing parentheses.
func Unparen(e Expr) Expr {
	for {
		p, ok := e.(*ParenExpr)
		if !ok {
			return e
		}
		e = p.X
	}
}
