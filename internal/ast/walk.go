package ast

import (
	"lpcls/internal/source"
)

// Inspect traverses the tree rooted at n in depth-first source order. f is called
// for each node; when it returns false the node's children are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// Children lists the direct child nodes of n in source order. Nil children are omitted.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c != nil {
			out = append(out, c)
		}
	}
	addExpr := func(e Expr) {
		if e != nil {
			out = append(out, e)
		}
	}
	addStmt := func(s Stmt) {
		if s != nil {
			out = append(out, s)
		}
	}
	addIdent := func(id *Ident) {
		if id != nil {
			out = append(out, id)
		}
	}
	addBlock := func(b *Block) {
		if b != nil {
			out = append(out, b)
		}
	}

	switch n := n.(type) {
	case *File:
		for _, d := range n.Decls {
			add(d)
		}
	case *InheritDecl:
		for _, p := range n.Parts {
			addExpr(p)
		}
	case *VarDecl:
		for _, d := range n.Vars {
			if d != nil {
				out = append(out, d)
			}
		}
	case *Declarator:
		addIdent(n.Name)
		addExpr(n.Init)
	case *FuncDecl:
		addIdent(n.Name)
		for _, p := range n.Params {
			out = append(out, p)
		}
		addBlock(n.Body)
	case *Param:
		addIdent(n.Name)
		addExpr(n.Default)
	case *StructDecl:
		addIdent(n.Name)
		for _, f := range n.Fields {
			out = append(out, f)
		}
	case *Block:
		for _, s := range n.Stmts {
			addStmt(s)
		}
	case *ExprStmt:
		addExpr(n.X)
	case *IfStmt:
		addExpr(n.Cond)
		addStmt(n.Then)
		addStmt(n.Else)
	case *WhileStmt:
		addExpr(n.Cond)
		addStmt(n.Body)
	case *DoStmt:
		addStmt(n.Body)
		addExpr(n.Cond)
	case *ForStmt:
		addStmt(n.Init)
		addExpr(n.Cond)
		addExpr(n.Post)
		addStmt(n.Body)
	case *ForeachStmt:
		for _, v := range n.Vars {
			addIdent(v.Name)
		}
		addExpr(n.Coll)
		addStmt(n.Body)
	case *SwitchStmt:
		addExpr(n.Tag)
		addBlock(n.Body)
	case *CaseClause:
		addExpr(n.Value)
		addExpr(n.Hi)
	case *ReturnStmt:
		addExpr(n.Result)
	case *ArrayLit:
		for _, e := range n.Elems {
			addExpr(e)
		}
	case *MappingLit:
		for _, kv := range n.Entries {
			addExpr(kv.Key)
			addExpr(kv.Value)
		}
	case *FuncPtrLit:
		for _, e := range n.Exprs {
			addExpr(e)
		}
	case *Closure:
		for _, p := range n.Params {
			out = append(out, p)
		}
		addBlock(n.Body)
	case *CallExpr:
		addExpr(n.Fun)
		for _, a := range n.Args {
			addExpr(a)
		}
	case *MemberExpr:
		addExpr(n.X)
		addIdent(n.Sel)
	case *ScopedIdent:
		addIdent(n.Name)
	case *IndexExpr:
		addExpr(n.X)
		addExpr(n.Index)
		addExpr(n.Hi)
	case *UnaryExpr:
		addExpr(n.X)
	case *BinaryExpr:
		addExpr(n.X)
		addExpr(n.Y)
	case *AssignExpr:
		addExpr(n.Lhs)
		addExpr(n.Rhs)
	case *CondExpr:
		addExpr(n.Cond)
		addExpr(n.Then)
		addExpr(n.Else)
	case *CastExpr:
		addExpr(n.X)
	case *CatchExpr:
		addExpr(n.X)
		addBlock(n.Block)
	case *NewExpr:
		for _, a := range n.Args {
			addExpr(a)
		}
	case *ParenExpr:
		addExpr(n.X)
	case *CommaExpr:
		for _, e := range n.Elems {
			addExpr(e)
		}
	case *RefExpr:
		addExpr(n.X)
	case *SpreadExpr:
		addExpr(n.X)
	}
	return out
}

// PathAt returns the chain of nodes whose spans contain offset, outermost first.
// Among siblings the last one containing offset is followed, so a cursor sitting
// between two adjacent nodes lands in the later one.
func PathAt(root Node, offset uint32) []Node {
	if root == nil || !root.Span().Contains(offset) {
		return nil
	}
	path := []Node{root}
	cur := root
	for {
		var next Node
		for _, c := range Children(cur) {
			if sp := c.Span(); sp.Contains(offset) && sp != (source.Span{}) {
				next = c
			}
		}
		if next == nil {
			return path
		}
		path = append(path, next)
		cur = next
	}
}
