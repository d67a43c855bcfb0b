package engine

import (
	"fmt"

	"lpcls/internal/ast"
	"lpcls/internal/diag"
	"lpcls/internal/symbols"
)

// unusedDiagnostics reports locals declared in function bodies and parameters of
// defined functions that no name occurrence resolves to. Globals are left alone
// since inheriting files may use them.
func unusedDiagnostics(file *ast.File, table *symbols.Table) []diag.Diagnostic {
	if file == nil || table == nil {
		return nil
	}
	used := make(map[symbols.SymbolID]struct{})
	for _, u := range table.Uses(file) {
		if u.Symbol.IsValid() {
			used[u.Symbol] = struct{}{}
		}
	}

	var out []diag.Diagnostic
	check := func(name *ast.Ident, kind symbols.SymbolKind) {
		if !name.Valid() {
			return
		}
		id, ok := table.Lookup(name.Name, name.Sp.Start)
		if !ok {
			return
		}
		sym := table.Symbol(id)
		if sym.Span != name.Sp || sym.Kind != kind {
			return
		}
		if _, ok := used[id]; ok {
			return
		}
		if kind == symbols.SymbolParameter {
			out = append(out, diag.New(diag.SevInfo, diag.SemaUnusedParameter, name.Sp,
				fmt.Sprintf("parameter %s is never used", name.Name)))
			return
		}
		out = append(out, diag.New(diag.SevInfo, diag.SemaUnusedVariable, name.Sp,
			fmt.Sprintf("local variable %s is never used", name.Name)))
	}

	for _, d := range file.Decls {
		fn, ok := d.(*ast.FuncDecl)
		if !ok || fn.Body == nil {
			continue
		}
		for _, p := range fn.Params {
			check(p.Name, symbols.SymbolParameter)
		}
		ast.Inspect(fn.Body, func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.VarDecl:
				for _, v := range n.Vars {
					if v != nil {
						check(v.Name, symbols.SymbolVariable)
					}
				}
			case *ast.ForeachStmt:
				for _, v := range n.Vars {
					if v.Type != nil {
						check(v.Name, symbols.SymbolVariable)
					}
				}
			}
			return true
		})
	}
	return out
}
