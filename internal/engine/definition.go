package engine

import (
	"path/filepath"
	"strings"

	"lpcls/internal/ast"
	"lpcls/internal/inherit"
	"lpcls/internal/symbols"
)

// Definition finds the declaration of the name under offset. Member accesses
// (`a->b`), scoped calls (`::f`, `room::f`) and plain identifiers are handled.
// On the path of an inherit statement the match names the inherited file and
// carries its table but no symbol.
func (e *Engine) Definition(doc string, offset uint32) (Match, bool) {
	d, ok := e.document(doc)
	if !ok {
		return Match{}, false
	}
	path := ast.PathAt(d.res.File, offset)
	if len(path) < 2 {
		return Match{}, false
	}
	units := e.chain(d)

	if inh, ok := enclosingInherit(path); ok {
		unit, found := e.inherits.ResolveInherited(inh.Raw, d.path)
		if !found {
			return Match{}, false
		}
		return Match{Table: unit.Table, Path: unit.Path, Inherited: true}, true
	}

	id, ok := path[len(path)-1].(*ast.Ident)
	if !ok {
		return Match{}, false
	}
	switch parent := path[len(path)-2].(type) {
	case *ast.MemberExpr:
		if parent.Sel == id {
			typ := e.exprType(d, units, parent.X, offset)
			return memberIn(d, units, typ, id.Name)
		}
	case *ast.ScopedIdent:
		return scoped(units, parent.Qualifier, id.Name)
	}
	return e.resolveIn(d, units, id.Name, offset)
}

func enclosingInherit(path []ast.Node) (*ast.InheritDecl, bool) {
	for _, n := range path {
		if inh, ok := n.(*ast.InheritDecl); ok {
			return inh, true
		}
	}
	return nil, false
}

// scoped resolves `q::name` among inherited files. An empty qualifier searches
// all of them; otherwise the file's base name must equal q.
func scoped(units []*inherit.Unit, qualifier, name string) (Match, bool) {
	if qualifier == "" {
		return resolveInherited(units, name)
	}
	for _, u := range units {
		base := strings.TrimSuffix(filepath.Base(u.Path), filepath.Ext(u.Path))
		if base != qualifier {
			continue
		}
		if m, ok := resolveInherited([]*inherit.Unit{u}, name); ok {
			return m, true
		}
	}
	return Match{}, false
}

// exprType approximates the static type of x for member lookup.
func (e *Engine) exprType(d document, units []*inherit.Unit, x ast.Expr, offset uint32) string {
	switch x := ast.Unparen(x).(type) {
	case *ast.Ident:
		if m, ok := e.resolveIn(d, units, x.Name, offset); ok {
			return m.Symbol.Type
		}
	case *ast.MemberExpr:
		if x.Sel == nil {
			break
		}
		if m, ok := memberIn(d, units, e.exprType(d, units, x.X, offset), x.Sel.Name); ok {
			return m.Symbol.Type
		}
	case *ast.CallExpr:
		if fn, ok := x.Fun.(*ast.Ident); ok {
			if m, ok := e.resolveIn(d, units, fn.Name, offset); ok && m.Symbol.Kind == symbols.SymbolFunction {
				return m.Symbol.Type
			}
		}
	case *ast.IndexExpr:
		typ := e.exprType(d, units, x.X, offset)
		if x.IsRange {
			return typ
		}
		return symbols.ElementType(typ)
	case *ast.CastExpr:
		if x.Type != nil {
			return x.Type.Text()
		}
	case *ast.NewExpr:
		if x.Type != nil {
			return x.Type.Text()
		}
	}
	return "mixed"
}
