// Package symbols builds and queries the scope tree of one LPC document.
//
// Scopes and symbols live in arenas owned by a Table and refer to each other by
// integer IDs; dropping the Table drops the whole analysis. Build walks an
// ast.File with a Resolver that keeps the scope stack, declares one symbol per
// declared name and infers approximate types for untyped values.
//
// Lookups are offset based: ScopeAt finds the deepest scope, Lookup walks the
// parent chain, Visible lists what completion should offer.
package symbols
