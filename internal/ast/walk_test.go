package ast

import (
	"testing"

	"lpcls/internal/source"
)

func sp(a, b uint32) source.Span { return source.Span{Start: a, End: b} }

// int f() { x = y + 1; }
func sampleFile() *File {
	x := &Ident{Name: "x", Sp: sp(10, 11)}
	y := &Ident{Name: "y", Sp: sp(14, 15)}
	one := &BasicLit{Sp: sp(18, 19), Value: "1"}
	sum := &BinaryExpr{Sp: sp(14, 19), X: y, Y: one}
	assign := &AssignExpr{Sp: sp(10, 19), Lhs: x, Rhs: sum}
	body := &Block{Sp: sp(8, 22), Stmts: []Stmt{&ExprStmt{X: assign}}}
	fn := &FuncDecl{
		Sp:   sp(0, 22),
		Type: &TypeRef{Name: "int", Sp: sp(0, 3)},
		Name: &Ident{Name: "f", Sp: sp(4, 5)},
		Body: body,
	}
	return &File{Sp: sp(0, 22), Decls: []Decl{fn}}
}

func TestInspectVisitsIdentsInOrder(t *testing.T) {
	var names []string
	Inspect(sampleFile(), func(n Node) bool {
		if id, ok := n.(*Ident); ok {
			names = append(names, id.Name)
		}
		return true
	})
	want := []string{"f", "x", "y"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
}

func TestInspectPrunes(t *testing.T) {
	count := 0
	Inspect(sampleFile(), func(n Node) bool {
		count++
		_, isBlock := n.(*Block)
		return !isBlock
	})
	// File, FuncDecl, Ident f, Block
	if count != 4 {
		t.Fatalf("expected 4 visited nodes, got %d", count)
	}
}

func TestPathAt(t *testing.T) {
	path := PathAt(sampleFile(), 14)
	last, ok := path[len(path)-1].(*Ident)
	if !ok || last.Name != "y" {
		t.Fatalf("expected innermost node to be ident y, got %T", path[len(path)-1])
	}
	if PathAt(sampleFile(), 100) != nil {
		t.Fatalf("expected nil path outside the file")
	}
}

func TestTypeRefText(t *testing.T) {
	tr := &TypeRef{Name: "class Node", Stars: 1}
	if got := tr.Text(); got != "class Node*" {
		t.Fatalf("Text = %q", got)
	}
	if got := tr.WithStars(1); got != "class Node**" {
		t.Fatalf("WithStars = %q", got)
	}
	var none *TypeRef
	if none.WithStars(2) != "" {
		t.Fatalf("nil type must render empty")
	}
}
