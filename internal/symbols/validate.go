package symbols

import (
	"errors"
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// Validate walks the arenas checking structural invariants. Returns nil if
// everything is consistent; otherwise all detected issues joined together.
func (t *Table) Validate() error {
	var errs []error

	for idx := 1; idx < len(t.Scopes.data); idx++ {
		scopeID, err := toScopeID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scope := &t.Scopes.data[idx]
		if scope.Kind == ScopeInvalid {
			errs = append(errs, fmt.Errorf("scope %d has invalid kind", scopeID))
		}
		errs = append(errs, t.validateParent(scopeID, scope)...)
		errs = append(errs, t.validateChildren(scopeID, scope)...)
		errs = append(errs, t.validateIndex(scopeID, scope)...)
	}

	for idx := 1; idx < len(t.Symbols.data); idx++ {
		symbolID, err := toSymbolID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sym := t.Symbols.data[idx]
		if sym.Name == "" {
			errs = append(errs, fmt.Errorf("symbol %d has empty name", symbolID))
		}
		scope := t.Scopes.Get(sym.Scope)
		if scope == nil {
			errs = append(errs, fmt.Errorf("symbol %d has invalid scope %d", symbolID, sym.Scope))
			continue
		}
		if !slices.Contains(scope.Symbols, symbolID) {
			errs = append(errs, fmt.Errorf("symbol %d is missing from scope %d list", symbolID, sym.Scope))
		}
	}

	return errors.Join(errs...)
}

func (t *Table) validateParent(id ScopeID, scope *Scope) []error {
	if !scope.Parent.IsValid() {
		if id != t.Root {
			return []error{fmt.Errorf("scope %d has no parent but is not the root", id)}
		}
		return nil
	}
	parent := t.Scopes.Get(scope.Parent)
	if parent == nil || scope.Parent == id {
		return []error{fmt.Errorf("scope %d has invalid parent %d", id, scope.Parent)}
	}
	var errs []error
	if !slices.Contains(parent.Children, id) {
		errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", id, scope.Parent))
	}
	if !parent.Span.Covers(scope.Span) {
		errs = append(errs, fmt.Errorf("scope %d span %s escapes parent %d span %s", id, scope.Span, scope.Parent, parent.Span))
	}
	return errs
}

func (t *Table) validateChildren(id ScopeID, scope *Scope) []error {
	var errs []error
	for i, child := range scope.Children {
		cs := t.Scopes.Get(child)
		if cs == nil || child == id {
			errs = append(errs, fmt.Errorf("scope %d has invalid child %d", id, child))
			continue
		}
		if cs.Parent != id {
			errs = append(errs, fmt.Errorf("scope %d child %d missing parent backlink", id, child))
		}
		for _, sibling := range scope.Children[:i] {
			if ss := t.Scopes.Get(sibling); ss != nil && ss.Span.Overlaps(cs.Span) {
				errs = append(errs, fmt.Errorf("scope %d children %d and %d overlap", id, sibling, child))
			}
		}
	}
	return errs
}

func (t *Table) validateIndex(id ScopeID, scope *Scope) []error {
	var errs []error
	for name, symID := range scope.NameIndex {
		if !slices.Contains(scope.Symbols, symID) {
			errs = append(errs, fmt.Errorf("scope %d name index %q references missing symbol %d", id, name, symID))
			continue
		}
		if sym := t.Symbols.Get(symID); sym == nil || sym.Name != name {
			errs = append(errs, fmt.Errorf("scope %d name index %q points at symbol %d with another name", id, name, symID))
		}
	}
	return errs
}

func toScopeID(idx int) (ScopeID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoScopeID, fmt.Errorf("scope index %d overflow: %w", idx, err)
	}
	return ScopeID(value), nil
}

func toSymbolID(idx int) (SymbolID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoSymbolID, fmt.Errorf("symbol index %d overflow: %w", idx, err)
	}
	return SymbolID(value), nil
}
