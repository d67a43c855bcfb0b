package symbols

import (
	"lpcls/internal/source"
)

// SymbolKind classifies what a name denotes.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolVariable
	SymbolFunction
	SymbolParameter
	SymbolMember
	SymbolStruct
	SymbolClass
	SymbolInherit
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolParameter:
		return "parameter"
	case SymbolMember:
		return "member"
	case SymbolStruct:
		return "struct"
	case SymbolClass:
		return "class"
	case SymbolInherit:
		return "inherit"
	default:
		return "invalid"
	}
}

// IsType reports whether the symbol names a struct or class.
func (k SymbolKind) IsType() bool {
	return k == SymbolStruct || k == SymbolClass
}

// Symbol is one declared name.
type Symbol struct {
	Name string
	Kind SymbolKind
	// Type is the textual type ("int", "string*", "struct Point"); "mixed" when unknown.
	// For functions it is the return type.
	Type string
	// Span covers the declaring identifier.
	Span source.Span
	// Decl covers the whole declaration statement.
	Decl      source.Span
	Scope     ScopeID
	Members   []SymbolID
	Params    []SymbolID
	Modifiers []string
	Doc       string
	Inferred  bool
	Varargs   bool
	Prototype bool
}

// HasModifier reports whether mod was written on the declaration.
func (s *Symbol) HasModifier(mod string) bool {
	for _, m := range s.Modifiers {
		if m == mod {
			return true
		}
	}
	return false
}
