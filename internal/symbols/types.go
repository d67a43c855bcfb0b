package symbols

import (
	"strings"
)

var typeModifiers = map[string]struct{}{
	"private":   {},
	"protected": {},
	"public":    {},
	"static":    {},
	"nomask":    {},
	"varargs":   {},
	"nosave":    {},
}

// ResolveComplexType reduces a written type to its base name: leading modifiers,
// the struct/class keyword and trailing array markers are removed.
//
//	ResolveComplexType("private int *")      == "int"
//	ResolveComplexType("class Node*")        == "Node"
//	ResolveComplexType("struct Point[]")     == "Point"
func ResolveComplexType(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	for len(fields) > 0 {
		if _, ok := typeModifiers[fields[0]]; !ok {
			break
		}
		fields = fields[1:]
	}
	if len(fields) > 0 && (fields[0] == "struct" || fields[0] == "class") {
		fields = fields[1:]
	}
	return stripArray(strings.Join(fields, ""))
}

func stripArray(t string) string {
	for {
		switch {
		case strings.HasSuffix(t, "*"):
			t = strings.TrimSuffix(t, "*")
		case strings.HasSuffix(t, "[]"):
			t = strings.TrimSuffix(t, "[]")
		default:
			return strings.TrimSpace(t)
		}
	}
}

// IsArray reports whether the type text ends in an array marker.
func IsArray(t string) bool {
	t = strings.TrimSpace(t)
	return strings.HasSuffix(t, "*") || strings.HasSuffix(t, "[]")
}

// ElementType strips one trailing array marker. Non-array types yield "mixed".
func ElementType(t string) string {
	t = strings.TrimSpace(t)
	switch {
	case strings.HasSuffix(t, "*"):
		return strings.TrimSpace(strings.TrimSuffix(t, "*"))
	case strings.HasSuffix(t, "[]"):
		return strings.TrimSpace(strings.TrimSuffix(t, "[]"))
	default:
		return "mixed"
	}
}

// IsCompatible reports whether a value of type from may be stored in type to.
// mixed accepts and converts to anything, void converts to nothing, arrays
// compare element-wise and int widens to float.
func IsCompatible(from, to string) bool {
	from, to = normalizeType(from), normalizeType(to)
	switch {
	case from == "void":
		return false
	case to == "mixed" || from == "mixed":
		return true
	case from == to:
		return true
	case IsArray(from) && IsArray(to):
		return IsCompatible(ElementType(from), ElementType(to))
	case IsArray(from) || IsArray(to):
		return false
	case from == "int" && to == "float":
		return true
	case to == "function" && from == "function":
		return true
	}
	return false
}

// normalizeType drops modifiers and folds [] markers and the status alias.
func normalizeType(t string) string {
	fields := strings.Fields(t)
	for len(fields) > 0 {
		if _, ok := typeModifiers[fields[0]]; !ok {
			break
		}
		fields = fields[1:]
	}
	t = strings.Join(fields, " ")
	t = strings.ReplaceAll(t, "[]", "*")
	t = strings.ReplaceAll(t, " *", "*")
	if t == "status" {
		return "int"
	}
	if t == "" {
		return "mixed"
	}
	return t
}
