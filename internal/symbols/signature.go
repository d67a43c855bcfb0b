package symbols

import (
	"strings"
)

// Signature renders a one-line description of a symbol for hover and completion
// detail text, e.g. "varargs int add(int a, mixed *rest...)".
func (t *Table) Signature(id SymbolID) string {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return ""
	}
	var b strings.Builder
	for _, m := range sym.Modifiers {
		b.WriteString(m)
		b.WriteByte(' ')
	}
	switch sym.Kind {
	case SymbolFunction:
		writeTyped(&b, sym.Type, sym.Name)
		b.WriteByte('(')
		for i, pid := range sym.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			p := t.Symbols.Get(pid)
			writeTyped(&b, p.Type, p.Name)
			if p.Varargs {
				b.WriteString("...")
			}
		}
		b.WriteByte(')')
	case SymbolStruct, SymbolClass:
		b.WriteString(sym.Type)
	case SymbolInherit:
		b.WriteString("inherit ")
		b.WriteString(sym.Name)
	default:
		writeTyped(&b, sym.Type, sym.Name)
	}
	return b.String()
}

// writeTyped writes "int *name" for "int*" so that array markers sit on the name
// the way LPC declarations are written.
func writeTyped(b *strings.Builder, typ, name string) {
	base := strings.TrimRight(typ, "*")
	stars := len(typ) - len(base)
	b.WriteString(base)
	b.WriteByte(' ')
	b.WriteString(strings.Repeat("*", stars))
	b.WriteString(name)
}
