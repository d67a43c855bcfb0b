package diagfmt

import (
	"encoding/json"
	"io"

	"fortio.org/safecast"

	"lpcls/internal/source"
	"lpcls/internal/symbols"
)

// SemanticsOutput is the JSON form of a scope tree.
type SemanticsOutput struct {
	Path     string        `json:"path,omitempty"`
	Scopes   []ScopeJSON   `json:"scopes"`
	Symbols  []SymbolJSON  `json:"symbols"`
	Inherits []InheritJSON `json:"inherits,omitempty"`
}

type ScopeJSON struct {
	ID     uint32      `json:"id"`
	Kind   string      `json:"kind"`
	Name   string      `json:"name,omitempty"`
	Parent uint32      `json:"parent,omitempty"`
	Span   source.Span `json:"span"`
}

type SymbolJSON struct {
	ID        uint32      `json:"id"`
	Name      string      `json:"name"`
	Kind      string      `json:"kind"`
	Type      string      `json:"type,omitempty"`
	Scope     uint32      `json:"scope"`
	Span      source.Span `json:"span"`
	Signature string      `json:"signature"`
	Flags     []string    `json:"flags,omitempty"`
	Doc       string      `json:"doc,omitempty"`
}

type InheritJSON struct {
	Raw    string      `json:"raw"`
	Span   source.Span `json:"span"`
	Symbol uint32      `json:"symbol"`
}

// BuildSemanticsOutput flattens table into ID-ordered scope and symbol lists.
func BuildSemanticsOutput(path string, table *symbols.Table) (*SemanticsOutput, error) {
	out := &SemanticsOutput{Path: path, Scopes: []ScopeJSON{}, Symbols: []SymbolJSON{}}
	if table == nil {
		return out, nil
	}
	for i := 1; i <= table.Scopes.Len(); i++ {
		raw, err := safecast.Conv[uint32](i)
		if err != nil {
			return nil, err
		}
		scope := table.Scope(symbols.ScopeID(raw))
		out.Scopes = append(out.Scopes, ScopeJSON{
			ID:     raw,
			Kind:   scope.Kind.String(),
			Name:   scope.Name,
			Parent: uint32(scope.Parent),
			Span:   scope.Span,
		})
	}
	for i := 1; i <= table.Symbols.Len(); i++ {
		raw, err := safecast.Conv[uint32](i)
		if err != nil {
			return nil, err
		}
		id := symbols.SymbolID(raw)
		sym := table.Symbol(id)
		out.Symbols = append(out.Symbols, SymbolJSON{
			ID:        raw,
			Name:      sym.Name,
			Kind:      sym.Kind.String(),
			Type:      sym.Type,
			Scope:     uint32(sym.Scope),
			Span:      sym.Span,
			Signature: table.Signature(id),
			Flags:     symbolFlags(sym),
			Doc:       sym.Doc,
		})
	}
	for _, inh := range table.Inherits {
		out.Inherits = append(out.Inherits, InheritJSON{Raw: inh.Raw, Span: inh.Span, Symbol: uint32(inh.Symbol)})
	}
	return out, nil
}

func symbolFlags(sym *symbols.Symbol) []string {
	var flags []string
	if sym.Inferred {
		flags = append(flags, "inferred")
	}
	if sym.Varargs {
		flags = append(flags, "varargs")
	}
	if sym.Prototype {
		flags = append(flags, "prototype")
	}
	return flags
}

// SemanticsJSON writes the scope tree of table as indented JSON.
func SemanticsJSON(w io.Writer, path string, table *symbols.Table) error {
	out, err := BuildSemanticsOutput(path, table)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
