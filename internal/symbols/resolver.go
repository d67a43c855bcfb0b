package symbols

import (
	"fmt"

	"lpcls/internal/diag"
	"lpcls/internal/source"
)

// Resolver drives the scope stack while a table is being built.
type Resolver struct {
	table                 *Table
	reporter              diag.Reporter
	stack                 []ScopeID
	scopeMismatchReported map[ScopeID]bool
}

// NewResolver wires a resolver to table with root as the current scope.
func NewResolver(table *Table, root ScopeID, reporter diag.Reporter) *Resolver {
	r := &Resolver{
		table:                 table,
		reporter:              reporter,
		stack:                 make([]ScopeID, 0, 8),
		scopeMismatchReported: make(map[ScopeID]bool),
	}
	if root.IsValid() {
		r.stack = append(r.stack, root)
	}
	return r
}

// CurrentScope returns the scope at the top of the stack.
func (r *Resolver) CurrentScope() ScopeID {
	if len(r.stack) == 0 {
		return NoScopeID
	}
	return r.stack[len(r.stack)-1]
}

// Depth reports the number of open scopes.
func (r *Resolver) Depth() int { return len(r.stack) }

// Enter creates a child of the current scope, pushes it and returns its ID.
func (r *Resolver) Enter(kind ScopeKind, name string, span source.Span) ScopeID {
	scope := r.table.Scopes.New(kind, name, r.CurrentScope(), span)
	r.stack = append(r.stack, scope)
	return scope
}

// Leave pops the current scope, validating it against expected. Debug builds
// panic on a mismatch; release builds emit a warning diagnostic.
func (r *Resolver) Leave(expected ScopeID) {
	if len(r.stack) == 0 {
		return
	}
	top := r.stack[len(r.stack)-1]
	if expected.IsValid() && top != expected {
		debugScopeMismatch(expected, top)
		r.reportScopeMismatch(expected, top)
	}
	r.stack = r.stack[:len(r.stack)-1]
}

// Declare stores sym in the current scope and makes it the visible binding for
// its name there. A later declaration of the same name replaces the index entry;
// both stay in the scope's symbol list.
func (r *Resolver) Declare(sym Symbol) SymbolID {
	return r.declare(sym, true)
}

// DeclareHidden stores sym in the current scope without touching the name index.
func (r *Resolver) DeclareHidden(sym Symbol) SymbolID {
	return r.declare(sym, false)
}

func (r *Resolver) declare(sym Symbol, index bool) SymbolID {
	scopeID := r.CurrentScope()
	scope := r.table.Scopes.Get(scopeID)
	if scope == nil || sym.Name == "" {
		return NoSymbolID
	}
	if sym.Type == "" {
		sym.Type = "mixed"
	}
	sym.Scope = scopeID
	id := r.table.Symbols.New(&sym)
	scope.Symbols = append(scope.Symbols, id)
	if index {
		scope.NameIndex[sym.Name] = id
	}
	return id
}

// Lookup walks the scope chain from the current scope.
func (r *Resolver) Lookup(name string) (SymbolID, bool) {
	return r.table.LookupFrom(r.CurrentScope(), name)
}

// LookupLocal checks only the current scope.
func (r *Resolver) LookupLocal(name string) (SymbolID, bool) {
	scope := r.table.Scopes.Get(r.CurrentScope())
	if scope == nil {
		return NoSymbolID, false
	}
	id, ok := scope.NameIndex[name]
	return id, ok
}

func (r *Resolver) reportScopeMismatch(expected, actual ScopeID) {
	if r.reporter == nil {
		return
	}
	if r.scopeMismatchReported[actual] {
		return
	}
	r.scopeMismatchReported[actual] = true

	var primary source.Span
	actualLabel := fmt.Sprintf("scope #%d", actual)
	if scope := r.table.Scopes.Get(actual); scope != nil {
		primary = scope.Span
		actualLabel = fmt.Sprintf("%s scope #%d", scope.Name, actual)
	}
	expectedLabel := "unknown scope"
	expectedScope := r.table.Scopes.Get(expected)
	if expectedScope != nil {
		expectedLabel = fmt.Sprintf("%s scope #%d", expectedScope.Name, expected)
	}

	msg := fmt.Sprintf("scope stack mismatch: closing %s while expecting %s", actualLabel, expectedLabel)
	b := diag.ReportWarning(r.reporter, diag.SemaScopeMismatch, primary, msg)
	if expectedScope != nil {
		b.WithNote(expectedScope.Span, "expected scope declared here")
	}
	b.Emit()
}
