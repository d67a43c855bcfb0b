package engine

import (
	"fmt"

	"lpcls/internal/analysis"
	"lpcls/internal/diag"
	"lpcls/internal/project/dag"
	"lpcls/internal/symbols"
)

// InheritDiagnostics warns about inherit statements of doc that resolve to no
// file.
func (e *Engine) InheritDiagnostics(doc string) []diag.Diagnostic {
	d, ok := e.document(doc)
	if !ok {
		return nil
	}
	return e.inheritDiagnostics(d.path, d.table)
}

func (e *Engine) inheritDiagnostics(path string, table *symbols.Table) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, inh := range table.Inherits {
		if _, err := e.inherits.Locate(inh.Raw, path); err != nil {
			out = append(out, diag.New(diag.SevWarning, diag.SemaInheritNotFound, inh.Span,
				fmt.Sprintf("cannot find inherited file %s", inh.Raw)))
		}
	}
	return out
}

// Check analyzes doc like Open and returns the result with its diagnostics
// followed by the inherit warnings and unused locals and parameters.
func (e *Engine) Check(doc string) (*analysis.Result, []diag.Diagnostic, error) {
	res, err := e.Open(doc)
	if err != nil {
		return nil, nil, err
	}
	out := append([]diag.Diagnostic(nil), res.Diagnostics...)
	out = append(out, e.inheritDiagnostics(e.inherits.Canonical(doc), res.Table)...)
	return res, append(out, unusedDiagnostics(res.File, res.Table)...), nil
}

// ResolvedInherits lists the files the inherit statements of doc resolve to,
// in source order. Unresolved statements are skipped.
func (e *Engine) ResolvedInherits(doc string) []dag.InheritEdge {
	d, ok := e.document(doc)
	if !ok {
		return nil
	}
	var out []dag.InheritEdge
	for _, inh := range d.table.Inherits {
		if path, err := e.inherits.Locate(inh.Raw, d.path); err == nil {
			out = append(out, dag.InheritEdge{Path: path, Span: inh.Span})
		}
	}
	return out
}
