package inherit

import (
	"lpcls/internal/source"
	"lpcls/internal/symbols"
)

// summarySchema changes whenever Summary's encoding does.
const summarySchema uint16 = 1

// Summary is the persisted form of an inherited file: its top-level exports
// with their parameters and members, plus its own inherit statements.
type Summary struct {
	Schema   uint16
	Path     string
	Hash     uint64
	Len      uint32
	Inherits []InheritSummary
	Exports  []ExportSummary
}

type InheritSummary struct {
	Raw   string
	Parts []symbols.InheritPart
	Start uint32
	End   uint32
}

type ExportSummary struct {
	Name      string
	Kind      uint8
	Type      string
	Start     uint32
	End       uint32
	DeclStart uint32
	DeclEnd   uint32
	Modifiers []string
	Doc       string
	Varargs   bool
	Prototype bool
	Inferred  bool
	// Children holds parameters of functions and members of structs and classes.
	Children []ExportSummary
}

// Summarize captures the global scope of table.
func Summarize(path string, hash uint64, table *symbols.Table, length uint32) *Summary {
	s := &Summary{Schema: summarySchema, Path: path, Hash: hash, Len: length}
	for _, inh := range table.Inherits {
		s.Inherits = append(s.Inherits, InheritSummary{
			Raw:   inh.Raw,
			Parts: inh.Parts,
			Start: inh.Span.Start,
			End:   inh.Span.End,
		})
	}
	for _, id := range table.Globals() {
		sym := table.Symbol(id)
		if sym.Kind == symbols.SymbolInherit {
			continue
		}
		exp := exportOf(sym)
		children := sym.Params
		if sym.Kind.IsType() {
			children = sym.Members
		}
		for _, child := range children {
			exp.Children = append(exp.Children, exportOf(table.Symbol(child)))
		}
		s.Exports = append(s.Exports, exp)
	}
	return s
}

func exportOf(sym *symbols.Symbol) ExportSummary {
	return ExportSummary{
		Name:      sym.Name,
		Kind:      uint8(sym.Kind),
		Type:      sym.Type,
		Start:     sym.Span.Start,
		End:       sym.Span.End,
		DeclStart: sym.Decl.Start,
		DeclEnd:   sym.Decl.End,
		Modifiers: sym.Modifiers,
		Doc:       sym.Doc,
		Varargs:   sym.Varargs,
		Prototype: sym.Prototype,
		Inferred:  sym.Inferred,
	}
}

func (e ExportSummary) symbol() symbols.Symbol {
	return symbols.Symbol{
		Name:      e.Name,
		Kind:      symbols.SymbolKind(e.Kind),
		Type:      e.Type,
		Span:      source.Span{Start: e.Start, End: e.End},
		Decl:      source.Span{Start: e.DeclStart, End: e.DeclEnd},
		Modifiers: e.Modifiers,
		Doc:       e.Doc,
		Varargs:   e.Varargs,
		Prototype: e.Prototype,
		Inferred:  e.Inferred,
	}
}

// Table rebuilds a global-only table from the summary. Functions and types
// get a child scope spanning their declaration so that parameters and members
// stay attached.
func (s *Summary) Table() *symbols.Table {
	table := symbols.NewTable(symbols.Hints{}, source.Span{Start: 0, End: s.Len})
	r := symbols.NewResolver(table, table.Root, nil)

	for _, inh := range s.Inherits {
		span := source.Span{Start: inh.Start, End: inh.End}
		id := r.Declare(symbols.Symbol{
			Name: inh.Raw,
			Kind: symbols.SymbolInherit,
			Type: "object",
			Span: span,
			Decl: span,
		})
		table.Inherits = append(table.Inherits, symbols.Inherit{Raw: inh.Raw, Parts: inh.Parts, Span: span, Symbol: id})
	}

	for _, exp := range s.Exports {
		sym := exp.symbol()
		id := r.Declare(sym)
		if len(exp.Children) == 0 && sym.Kind != symbols.SymbolFunction && !sym.Kind.IsType() {
			continue
		}

		kind, name := symbols.ScopeFunction, "function:"+sym.Name
		switch sym.Kind {
		case symbols.SymbolStruct:
			kind, name = symbols.ScopeStruct, "struct:"+sym.Name
		case symbols.SymbolClass:
			kind, name = symbols.ScopeClass, "class:"+sym.Name
		}
		scope := r.Enter(kind, name, sym.Decl)
		children := make([]symbols.SymbolID, 0, len(exp.Children))
		for _, c := range exp.Children {
			children = append(children, r.Declare(c.symbol()))
		}
		r.Leave(scope)

		if sym.Kind == symbols.SymbolFunction {
			table.Symbol(id).Params = children
		} else {
			table.Symbol(id).Members = children
		}
	}
	return table
}
