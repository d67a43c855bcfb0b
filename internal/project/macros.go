package project

import (
	"maps"
	"slices"
)

// MacroTable maps macro names to their replacement text as written in the
// config, quotes included.
type MacroTable map[string]string

// Macro returns the replacement of name.
func (m MacroTable) Macro(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Names lists the defined macros in sorted order.
func (m MacroTable) Names() []string {
	return slices.Sorted(maps.Keys(m))
}
