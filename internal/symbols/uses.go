package symbols

import (
	"lpcls/internal/ast"
	"lpcls/internal/source"
)

// Use is a name occurrence in expression position. Symbol is NoSymbolID when
// the name is not declared in the table, e.g. an inherited or efun name.
type Use struct {
	Name   string
	Span   source.Span
	Symbol SymbolID
}

// Uses lists the name occurrences of file in source order, each bound to the
// declaration it resolves to from its own offset. Declaring identifiers,
// member selectors (`x->sel`) and scoped names (`::f`) are not uses.
func (t *Table) Uses(file *ast.File) []Use {
	if t == nil || file == nil {
		return nil
	}
	declared := make(map[source.Span]struct{}, t.Symbols.Len())
	for i := 1; i <= t.Symbols.Len(); i++ {
		if sym := t.Symbols.Get(SymbolID(i)); sym != nil {
			declared[sym.Span] = struct{}{}
		}
	}
	skip := make(map[*ast.Ident]struct{})
	var out []Use
	ast.Inspect(file, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.InheritDecl:
			return false
		case *ast.MemberExpr:
			skip[n.Sel] = struct{}{}
		case *ast.ScopedIdent:
			skip[n.Name] = struct{}{}
		case *ast.Ident:
			if _, ok := skip[n]; ok || !n.Valid() {
				return true
			}
			if _, ok := declared[n.Sp]; ok {
				return true
			}
			id, _ := t.Lookup(n.Name, n.Sp.Start)
			out = append(out, Use{Name: n.Name, Span: n.Sp, Symbol: id})
		}
		return true
	})
	return out
}

// Indexed reports whether id is the binding its scope currently maps its name
// to. A redeclaration in the same scope replaces the earlier symbol.
func (t *Table) Indexed(id SymbolID) bool {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return false
	}
	scope := t.Scopes.Get(sym.Scope)
	if scope == nil {
		return false
	}
	bound, ok := scope.NameIndex[sym.Name]
	return ok && bound == id
}
