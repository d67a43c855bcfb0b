package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"lpcls/internal/source"
)

// Hints provide optional capacity suggestions for the table arenas.
type Hints struct{ Scopes, Symbols uint }

// InheritPart is one piece of an inherit reference: a string literal (already
// unquoted) or a macro name.
type InheritPart struct {
	Macro bool
	Text  string
}

// Inherit records one inherit statement in source order.
type Inherit struct {
	Raw    string
	Parts  []InheritPart
	Span   source.Span
	Symbol SymbolID
}

// Table is the scope tree and symbols of one document version.
type Table struct {
	Scopes   *Scopes
	Symbols  *Symbols
	Root     ScopeID
	Inherits []Inherit
}

// NewTable builds an empty table whose global scope covers span.
func NewTable(h Hints, span source.Span) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	t := &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
	}
	t.Root = t.Scopes.New(ScopeGlobal, "global", NoScopeID, span)
	return t
}

// Symbol is shorthand for t.Symbols.Get.
func (t *Table) Symbol(id SymbolID) *Symbol {
	return t.Symbols.Get(id)
}

// Scope is shorthand for t.Scopes.Get.
func (t *Table) Scope(id ScopeID) *Scope {
	return t.Scopes.Get(id)
}

// Globals returns the global scope's most recent declaration per name, in
// declaration order.
func (t *Table) Globals() []SymbolID {
	return t.indexed(t.Root)
}

func (t *Table) indexed(id ScopeID) []SymbolID {
	scope := t.Scopes.Get(id)
	if scope == nil {
		return nil
	}
	out := make([]SymbolID, 0, len(scope.NameIndex))
	for _, symID := range scope.Symbols {
		sym := t.Symbols.Get(symID)
		if sym != nil && scope.NameIndex[sym.Name] == symID {
			out = append(out, symID)
		}
	}
	return out
}

// InheritedFiles lists the raw inherit references in source order, without duplicates.
func (t *Table) InheritedFiles() []string {
	seen := make(map[string]struct{}, len(t.Inherits))
	out := make([]string, 0, len(t.Inherits))
	for _, inh := range t.Inherits {
		if _, dup := seen[inh.Raw]; dup {
			continue
		}
		seen[inh.Raw] = struct{}{}
		out = append(out, inh.Raw)
	}
	return out
}
