package engine

import (
	"lpcls/internal/source"
)

// Reference is one occurrence of a symbol.
type Reference struct {
	Path string
	Span source.Span
	// Decl marks the declaring identifier.
	Decl bool
}

// References lists the occurrences in doc of the symbol under offset, in source
// order. With includeDecl the declaration comes first, even when it lives in an
// inherited file. Member selectors and `::` calls are not counted as uses.
func (e *Engine) References(doc string, offset uint32, includeDecl bool) []Reference {
	target, ok := e.Definition(doc, offset)
	if !ok || !target.Found() {
		return nil
	}
	d, ok := e.document(doc)
	if !ok {
		return nil
	}

	var out []Reference
	if includeDecl {
		out = append(out, Reference{Path: target.Path, Span: target.Symbol.Span, Decl: true})
	}
	chain := e.chain(d)
	for _, u := range d.table.Uses(d.res.File) {
		if u.Name != target.Symbol.Name {
			continue
		}
		if !target.Inherited {
			if u.Symbol == target.ID && target.Path == d.path {
				out = append(out, Reference{Path: d.path, Span: u.Span})
			}
			continue
		}
		if u.Symbol.IsValid() {
			continue
		}
		if m, ok := resolveInherited(chain, u.Name); ok && m.Path == target.Path && m.ID == target.ID {
			out = append(out, Reference{Path: d.path, Span: u.Span})
		}
	}
	return out
}
