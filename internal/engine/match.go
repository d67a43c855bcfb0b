package engine

import (
	"lpcls/internal/inherit"
	"lpcls/internal/symbols"
)

// Match is a resolved symbol together with the table and file that declare it.
type Match struct {
	ID     symbols.SymbolID
	Symbol *symbols.Symbol
	Table  *symbols.Table
	// Path is the declaring file: the document itself or an inherited file.
	Path      string
	Inherited bool
}

// Found reports whether m refers to a symbol.
func (m Match) Found() bool { return m.Symbol != nil }

// Signature renders the symbol for hover text.
func (m Match) Signature() string {
	if !m.Found() {
		return ""
	}
	return m.Table.Signature(m.ID)
}

func local(d document, id symbols.SymbolID) Match {
	return Match{ID: id, Symbol: d.table.Symbol(id), Table: d.table, Path: d.path}
}

func inherited(u *inherit.Unit, id symbols.SymbolID) Match {
	return Match{ID: id, Symbol: u.Table.Symbol(id), Table: u.Table, Path: u.Path, Inherited: true}
}

// exported reports whether an inherited file's global is visible to inheritors.
func exported(sym *symbols.Symbol) bool {
	return sym.Kind != symbols.SymbolInherit && !sym.HasModifier("private")
}
