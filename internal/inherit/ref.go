package inherit

import (
	"path/filepath"
	"strconv"
	"strings"

	"lpcls/internal/lexer"
	"lpcls/internal/source"
	"lpcls/internal/token"
)

// maxMacroDepth bounds nested macro expansion.
const maxMacroDepth = 8

// Expand turns an inherit reference (`"/std/room"`, `ROOM`, `DIR "room"`) into a
// path. Macro values are expanded recursively and their quotes removed. The
// second result is false when a macro is undefined or the reference is empty.
func Expand(ref string, macros MacroLookup) (string, bool) {
	if macros == nil {
		macros = noMacros{}
	}
	var b strings.Builder
	if !expandInto(&b, ref, macros, 0) {
		return "", false
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}

func expandInto(b *strings.Builder, ref string, macros MacroLookup, depth int) bool {
	if depth > maxMacroDepth {
		return false
	}
	toks := lexer.New(source.NewText([]byte(ref)), lexer.Options{}).All()
	for _, tok := range toks {
		switch tok.Kind {
		case token.EOF, token.Plus:
		case token.StringLit:
			b.WriteString(unquote(tok.Text))
		case token.Ident:
			value, ok := macros.Macro(tok.Text)
			if !ok {
				return false
			}
			if !isQuoted(value) && !strings.ContainsAny(value, "\" ") {
				b.WriteString(value)
				continue
			}
			if !expandInto(b, value, macros, depth+1) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func isQuoted(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}

func unquote(s string) string {
	if v, err := strconv.Unquote(s); err == nil {
		return v
	}
	if isQuoted(s) {
		return s[1 : len(s)-1]
	}
	return s
}

// Candidates lists the files an expanded inherit path may name, in lookup order.
// A leading '/' is relative to root; anything else is tried next to from and
// then under root. Each location is tried with ext appended first.
func Candidates(path, from, root, ext string) []string {
	var bases []string
	if strings.HasPrefix(path, "/") {
		bases = append(bases, filepath.Join(root, filepath.FromSlash(path)))
	} else {
		bases = append(bases,
			filepath.Join(filepath.Dir(from), filepath.FromSlash(path)),
			filepath.Join(root, filepath.FromSlash(path)),
		)
	}

	seen := make(map[string]struct{}, 2*len(bases))
	out := make([]string, 0, 2*len(bases))
	add := func(p string) {
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, base := range bases {
		if ext != "" && !strings.HasSuffix(base, ext) {
			add(base + ext)
		}
		add(base)
	}
	return out
}
