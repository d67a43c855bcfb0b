package symbols

import (
	"lpcls/internal/ast"
	"lpcls/internal/token"
)

// infer approximates the type of e from the current scope. It never fails:
// anything it cannot classify is mixed.
func (b *builder) infer(e ast.Expr) string {
	switch e := ast.Unparen(e).(type) {
	case *ast.BasicLit:
		switch e.Kind {
		case token.IntLit, token.CharLit:
			return "int"
		case token.FloatLit:
			return "float"
		case token.StringLit:
			return "string"
		}
	case *ast.ArrayLit:
		return "mixed*"
	case *ast.MappingLit:
		return "mapping"
	case *ast.Ident:
		if id, ok := b.resolver.Lookup(e.Name); ok {
			return b.table.Symbols.Get(id).Type
		}
	case *ast.CallExpr:
		fn, ok := e.Fun.(*ast.Ident)
		if !ok {
			break
		}
		if id, ok := b.resolver.Lookup(fn.Name); ok {
			if sym := b.table.Symbols.Get(id); sym.Kind == SymbolFunction {
				return sym.Type
			}
		}
	case *ast.NewExpr:
		if e.Type != nil {
			return e.Type.Text()
		}
	}
	return "mixed"
}
