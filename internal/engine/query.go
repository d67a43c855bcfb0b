package engine

import (
	"lpcls/internal/inherit"
	"lpcls/internal/symbols"
)

// SymbolsVisible lists what is in scope at offset: local bindings innermost
// first, then the exports of inherited files in chain order. Each name appears
// once.
func (e *Engine) SymbolsVisible(doc string, offset uint32) []Match {
	d, ok := e.document(doc)
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	var out []Match
	for _, id := range d.table.Visible(offset) {
		m := local(d, id)
		seen[m.Symbol.Name] = struct{}{}
		out = append(out, m)
	}
	for _, u := range e.chain(d) {
		for _, id := range u.Table.Globals() {
			sym := u.Table.Symbol(id)
			if !exported(sym) {
				continue
			}
			if _, dup := seen[sym.Name]; dup {
				continue
			}
			seen[sym.Name] = struct{}{}
			out = append(out, inherited(u, id))
		}
	}
	return out
}

// Resolve finds the declaration of name as seen from offset. Local scopes are
// searched first; then the first inherited file that exports name wins.
func (e *Engine) Resolve(doc, name string, offset uint32) (Match, bool) {
	d, ok := e.document(doc)
	if !ok {
		return Match{}, false
	}
	return e.resolveIn(d, e.chain(d), name, offset)
}

func (e *Engine) resolveIn(d document, units []*inherit.Unit, name string, offset uint32) (Match, bool) {
	if id, ok := d.table.Lookup(name, offset); ok {
		return local(d, id), true
	}
	return resolveInherited(units, name)
}

func resolveInherited(units []*inherit.Unit, name string) (Match, bool) {
	for _, u := range units {
		id, ok := u.Table.LookupFrom(u.Table.Root, name)
		if ok && exported(u.Table.Symbol(id)) {
			return inherited(u, id), true
		}
	}
	return Match{}, false
}

// ResolveChain resolves `a->b->c`: the first name is looked up at offset and
// each following name is a member of the previous result's type. It fails as
// soon as any step does.
func (e *Engine) ResolveChain(doc string, names []string, offset uint32) (Match, bool) {
	if len(names) == 0 {
		return Match{}, false
	}
	d, ok := e.document(doc)
	if !ok {
		return Match{}, false
	}
	units := e.chain(d)
	m, ok := e.resolveIn(d, units, names[0], offset)
	for _, name := range names[1:] {
		if !ok {
			break
		}
		m, ok = memberIn(d, units, m.Symbol.Type, name)
	}
	return m, ok
}

// MembersOf lists the members of the struct or class typeName, declared in doc
// or in an inherited file.
func (e *Engine) MembersOf(doc, typeName string) []Match {
	d, ok := e.document(doc)
	if !ok {
		return nil
	}
	owner, ok := findType(d, e.chain(d), typeName)
	if !ok {
		return nil
	}
	out := make([]Match, 0, len(owner.Symbol.Members))
	for _, id := range owner.Symbol.Members {
		out = append(out, Match{ID: id, Symbol: owner.Table.Symbol(id), Table: owner.Table, Path: owner.Path, Inherited: owner.Inherited})
	}
	return out
}

func findType(d document, units []*inherit.Unit, typeName string) (Match, bool) {
	if id, ok := d.table.FindType(typeName); ok {
		return local(d, id), true
	}
	for _, u := range units {
		if id, ok := u.Table.FindType(typeName); ok {
			return inherited(u, id), true
		}
	}
	return Match{}, false
}

func memberIn(d document, units []*inherit.Unit, typeName, member string) (Match, bool) {
	owner, ok := findType(d, units, typeName)
	if !ok {
		return Match{}, false
	}
	for _, id := range owner.Symbol.Members {
		if sym := owner.Table.Symbol(id); sym.Name == member {
			return Match{ID: id, Symbol: sym, Table: owner.Table, Path: owner.Path, Inherited: owner.Inherited}, true
		}
	}
	return Match{}, false
}

// InheritedFiles lists doc's own inherit references as written, without
// duplicates.
func (e *Engine) InheritedFiles(doc string) []string {
	d, ok := e.document(doc)
	if !ok {
		return nil
	}
	return d.table.InheritedFiles()
}

// InheritanceChain lists the resolved paths of every file doc inherits,
// directly or transitively, depth-first.
func (e *Engine) InheritanceChain(doc string) []string {
	d, ok := e.document(doc)
	if !ok {
		return nil
	}
	units := e.chain(d)
	out := make([]string, 0, len(units))
	for _, u := range units {
		out = append(out, u.Path)
	}
	return out
}

// IsInheriting reports whether doc inherits path directly.
func (e *Engine) IsInheriting(doc, path string) bool {
	d, ok := e.document(doc)
	return ok && d.table.IsInheriting(path)
}

// ScopeAt returns the scope containing offset in doc.
func (e *Engine) ScopeAt(doc string, offset uint32) (symbols.ScopeID, bool) {
	d, ok := e.document(doc)
	if !ok {
		return symbols.NoScopeID, false
	}
	return d.table.ScopeAt(offset), true
}
