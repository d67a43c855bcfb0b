// Package testkit holds structural checks shared by parser, analysis and fuzz
// tests.
package testkit

import (
	"errors"
	"fmt"

	"lpcls/internal/ast"
	"lpcls/internal/source"
	"lpcls/internal/symbols"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Sp is exactly the content range
// 2) every declaration span is well-formed and inside file.Sp
// 3) declarations appear in source order
// 4) every node below a declaration stays inside the content
func CheckSpanInvariants(file *ast.File, text *source.Text) error {
	if file == nil || text == nil {
		return errors.New("nil file or text")
	}
	if file.Sp.Start != 0 || file.Sp.End != text.Len() {
		return fmt.Errorf("file span %v does not match content length %d", file.Sp, text.Len())
	}
	var prev source.Span
	for i, d := range file.Decls {
		sp := d.Span()
		if sp.End < sp.Start {
			return fmt.Errorf("decl %d: inverted span %v", i, sp)
		}
		if !file.Sp.Covers(sp) {
			return fmt.Errorf("decl %d: span %v is outside file span %v", i, sp, file.Sp)
		}
		if i > 0 && sp.Start < prev.Start {
			return fmt.Errorf("decl %d: span %v starts before previous %v", i, sp, prev)
		}
		prev = sp
	}
	var nodeErr error
	ast.Inspect(file, func(n ast.Node) bool {
		if nodeErr != nil {
			return false
		}
		sp := n.Span()
		if sp.End < sp.Start || sp.End > text.Len() {
			nodeErr = fmt.Errorf("%T: span %v outside content of length %d", n, sp, text.Len())
		}
		return nodeErr == nil
	})
	return nodeErr
}

// CheckTable runs the table's own validation and checks that every scope lies
// inside the content.
func CheckTable(table *symbols.Table, text *source.Text) error {
	if table == nil || text == nil {
		return errors.New("nil table or text")
	}
	if err := table.Validate(); err != nil {
		return err
	}
	for id := symbols.ScopeID(1); ; id++ {
		scope := table.Scope(id)
		if scope == nil {
			return nil
		}
		if scope.Span.End > text.Len() {
			return fmt.Errorf("scope %q: span %v beyond content length %d", scope.Name, scope.Span, text.Len())
		}
	}
}
