package symbols

import (
	"strings"
)

// ScopeAt returns the deepest scope containing offset. When sibling spans share
// the offset the later child wins. Offsets outside the document map to the root.
func (t *Table) ScopeAt(offset uint32) ScopeID {
	cur := t.Root
	for {
		scope := t.Scopes.Get(cur)
		if scope == nil {
			return t.Root
		}
		next := NoScopeID
		for _, child := range scope.Children {
			if cs := t.Scopes.Get(child); cs != nil && cs.Span.Contains(offset) {
				next = child
			}
		}
		if !next.IsValid() {
			return cur
		}
		cur = next
	}
}

// LookupFrom walks from scope to the root returning the nearest binding of name.
func (t *Table) LookupFrom(scope ScopeID, name string) (SymbolID, bool) {
	for scope.IsValid() {
		s := t.Scopes.Get(scope)
		if s == nil {
			break
		}
		if id, ok := s.NameIndex[name]; ok {
			return id, true
		}
		scope = s.Parent
	}
	return NoSymbolID, false
}

// Lookup resolves name as seen from offset.
func (t *Table) Lookup(name string, offset uint32) (SymbolID, bool) {
	return t.LookupFrom(t.ScopeAt(offset), name)
}

// Visible lists the symbols visible at offset, innermost scope first. Each name
// appears once: inner bindings shadow outer ones.
func (t *Table) Visible(offset uint32) []SymbolID {
	seen := make(map[string]struct{})
	var out []SymbolID
	for scope := t.ScopeAt(offset); scope.IsValid(); {
		s := t.Scopes.Get(scope)
		if s == nil {
			break
		}
		for _, id := range t.indexed(scope) {
			name := t.Symbols.Get(id).Name
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, id)
		}
		scope = s.Parent
	}
	return out
}

// FindType finds a struct, then a class, named name anywhere in the tree.
func (t *Table) FindType(name string) (SymbolID, bool) {
	name = ResolveComplexType(name)
	if id, ok := t.findKind(t.Root, name, SymbolStruct); ok {
		return id, true
	}
	return t.findKind(t.Root, name, SymbolClass)
}

func (t *Table) findKind(scope ScopeID, name string, kind SymbolKind) (SymbolID, bool) {
	s := t.Scopes.Get(scope)
	if s == nil {
		return NoSymbolID, false
	}
	if id, ok := s.NameIndex[name]; ok {
		if sym := t.Symbols.Get(id); sym != nil && sym.Kind == kind {
			return id, true
		}
	}
	for _, child := range s.Children {
		if id, ok := t.findKind(child, name, kind); ok {
			return id, true
		}
	}
	return NoSymbolID, false
}

// MembersOf returns the members of the struct or class named by typeName, which
// may carry modifiers, a keyword and array markers.
func (t *Table) MembersOf(typeName string) []SymbolID {
	id, ok := t.FindType(typeName)
	if !ok {
		return nil
	}
	return t.Symbols.Get(id).Members
}

// Member finds a member of typeName by name.
func (t *Table) Member(typeName, member string) (SymbolID, bool) {
	for _, id := range t.MembersOf(typeName) {
		if t.Symbols.Get(id).Name == member {
			return id, true
		}
	}
	return NoSymbolID, false
}

// Function returns the global function named name.
func (t *Table) Function(name string) (SymbolID, bool) {
	id, ok := t.LookupFrom(t.Root, name)
	if !ok || t.Symbols.Get(id).Kind != SymbolFunction {
		return NoSymbolID, false
	}
	return id, true
}

// Path renders an inherit's literal parts joined, or the raw text when
// any macro is involved.
func (inh Inherit) Path() string {
	var b strings.Builder
	for _, p := range inh.Parts {
		if p.Macro {
			return inh.Raw
		}
		b.WriteString(p.Text)
	}
	return b.String()
}

// IsInheriting reports whether any inherit names path. Paths match exactly or
// when one is a '/'-separated suffix of the other; a missing extension is ignored.
func (t *Table) IsInheriting(path string) bool {
	path = strings.TrimSuffix(path, ".c")
	for _, inh := range t.Inherits {
		cand := strings.TrimSuffix(inh.Path(), ".c")
		if cand == path || strings.HasSuffix(cand, "/"+path) || strings.HasSuffix(path, "/"+cand) {
			return true
		}
	}
	return false
}
