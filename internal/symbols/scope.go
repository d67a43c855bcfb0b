package symbols

import (
	"lpcls/internal/source"
)

// ScopeKind enumerates scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeGlobal             // one per document
	ScopeFunction           // function definition or closure, holds parameters
	ScopeBlock              // braces, for and foreach headers
	ScopeStruct
	ScopeClass
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeStruct:
		return "struct"
	case ScopeClass:
		return "class"
	default:
		return "invalid"
	}
}

// Scope is a lexical region with its own declarations.
//
// NameIndex maps each name to the most recent declaration in this scope; Symbols
// keeps every declaration in source order, including ones later redeclared.
type Scope struct {
	Name      string
	Kind      ScopeKind
	Parent    ScopeID
	Span      source.Span
	NameIndex map[string]SymbolID
	Symbols   []SymbolID
	Children  []ScopeID
}
