package symbols_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lpcls/internal/diag"
	"lpcls/internal/parser"
	"lpcls/internal/source"
	"lpcls/internal/symbols"
)

func build(t *testing.T, src string) *symbols.Table {
	t.Helper()
	file, _ := parser.ParseFile(source.NewText([]byte(src)))
	bag := diag.NewBag(10)
	table := symbols.Build(file, symbols.BuildOptions{Reporter: diag.BagReporter{Bag: bag}, Validate: true})
	require.Zero(t, bag.Len(), "build diagnostics: %+v", bag.Items())
	require.NoError(t, table.Validate())
	return table
}

func offset(t *testing.T, src, marker string) uint32 {
	t.Helper()
	i := strings.Index(src, marker)
	require.GreaterOrEqual(t, i, 0, "marker %q not found", marker)
	return uint32(i)
}

func lookup(t *testing.T, table *symbols.Table, name string, at uint32) *symbols.Symbol {
	t.Helper()
	id, ok := table.Lookup(name, at)
	require.True(t, ok, "%s not visible at %d", name, at)
	return table.Symbol(id)
}

func visibleNames(table *symbols.Table, at uint32) []string {
	var names []string
	for _, id := range table.Visible(at) {
		names = append(names, table.Symbol(id).Name)
	}
	return names
}

func TestBumpScenario(t *testing.T) {
	src := `int g_count;
void bump(int by) {
    int total = g_count + by;
    return total;
}
`
	table := build(t, src)
	at := offset(t, src, "return")

	names := visibleNames(table, at)
	assert.Subset(t, names, []string{"g_count", "by", "total"})
	seen := map[string]int{}
	for _, n := range names {
		seen[n]++
	}
	for n, c := range seen {
		assert.Equal(t, 1, c, "duplicate %s", n)
	}

	by := lookup(t, table, "by", at)
	assert.Equal(t, symbols.SymbolParameter, by.Kind)
	assert.Equal(t, "int", by.Type)
	assert.Equal(t, "function:bump", table.Scope(by.Scope).Name)
}

func TestScopeNesting(t *testing.T) {
	src := `void f() {
    for (int i = 0; i < 3; i++) {
        foreach (string s in ({})) { /*X*/ }
    }
}
`
	table := build(t, src)
	var chain []string
	for id := table.ScopeAt(offset(t, src, "/*X*/")); id.IsValid(); id = table.Scope(id).Parent {
		chain = append(chain, table.Scope(id).Name)
	}
	assert.Equal(t, []string{"block", "foreach", "block", "for", "block", "function:f", "global"}, chain)
}

func TestShadowing(t *testing.T) {
	src := `int x;
void f() {
    string x;
    {
        object x;
        /*A*/
    }
    /*B*/
}
int after;
`
	table := build(t, src)
	assert.Equal(t, "object", lookup(t, table, "x", offset(t, src, "/*A*/")).Type)
	assert.Equal(t, "string", lookup(t, table, "x", offset(t, src, "/*B*/")).Type)
	assert.Equal(t, "int", lookup(t, table, "x", offset(t, src, "int after")).Type)

	count := 0
	for _, n := range visibleNames(table, offset(t, src, "/*A*/")) {
		if n == "x" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestMultiDeclaration(t *testing.T) {
	src := "int a, *b, c = 1;"
	table := build(t, src)
	globals := table.Globals()
	require.Len(t, globals, 3)

	a, b, c := table.Symbol(globals[0]), table.Symbol(globals[1]), table.Symbol(globals[2])
	assert.Equal(t, "int", a.Type)
	assert.Equal(t, "int*", b.Type)
	assert.Equal(t, "int", c.Type)
	assert.Equal(t, a.Decl, b.Decl)
	assert.Equal(t, a.Decl, c.Decl)
	assert.NotEqual(t, a.Span, b.Span)
	assert.Equal(t, source.Span{Start: 8, End: 9}, b.Span)
}

func TestAssignmentInference(t *testing.T) {
	src := `object make() { return this_object(); }
void f() {
    a = 1; b = 2.5; c = "s"; d = ({}); e = ([]); g = 'x';
    h = a; i = make(); j = new(class Node); k = foo->bar();
    mixed m = 5;
    mixed *arr = ({});
    /*END*/
}
`
	table := build(t, src)
	at := offset(t, src, "/*END*/")
	want := map[string]string{
		"a": "int", "b": "float", "c": "string", "d": "mixed*", "e": "mapping", "g": "int",
		"h": "int", "i": "object", "j": "class Node", "k": "mixed", "m": "int", "arr": "mixed*",
	}
	for name, typ := range want {
		assert.Equal(t, typ, lookup(t, table, name, at).Type, name)
	}
	assert.True(t, lookup(t, table, "a", at).Inferred)
	assert.False(t, lookup(t, table, "arr", at).Inferred)
	assert.Equal(t, symbols.SymbolVariable, lookup(t, table, "k", at).Kind)
}

func TestAssignmentToVisibleNameDoesNotRedeclare(t *testing.T) {
	src := `int total;
void f() { total = "oops"; /*END*/ }
`
	table := build(t, src)
	sym := lookup(t, table, "total", offset(t, src, "/*END*/"))
	assert.Equal(t, "int", sym.Type)
	assert.Equal(t, table.Root, sym.Scope)
}

func TestForeachInference(t *testing.T) {
	src := `void f(string *names, mapping m, class Node *nodes) {
    foreach (n in names) { /*N*/ }
    foreach (k, v in m) { /*KV*/ }
    foreach (int i in names) { /*I*/ }
    foreach (e in ({ 1, 2 })) { /*E*/ }
    foreach (node in nodes) { /*O*/ }
}
`
	table := build(t, src)
	n := lookup(t, table, "n", offset(t, src, "/*N*/"))
	assert.Equal(t, "string", n.Type)
	assert.True(t, n.Inferred)
	assert.Equal(t, "mixed", lookup(t, table, "k", offset(t, src, "/*KV*/")).Type)
	assert.Equal(t, "mixed", lookup(t, table, "v", offset(t, src, "/*KV*/")).Type)
	assert.Equal(t, "int", lookup(t, table, "i", offset(t, src, "/*I*/")).Type)
	assert.Equal(t, "mixed", lookup(t, table, "e", offset(t, src, "/*E*/")).Type)
	assert.Equal(t, "class Node", lookup(t, table, "node", offset(t, src, "/*O*/")).Type)

	_, ok := table.Lookup("n", offset(t, src, "/*KV*/"))
	assert.False(t, ok, "loop variable must not leak out of its foreach")
}

func TestScanFunctionOutputs(t *testing.T) {
	src := `void f(string s) {
    int already;
    sscanf(s, "%d %s", already, word);
    parse_command(s, env, "%o", obj);
    /*END*/
}
`
	table := build(t, src)
	at := offset(t, src, "/*END*/")
	assert.Equal(t, "int", lookup(t, table, "already", at).Type)
	assert.Equal(t, "mixed", lookup(t, table, "word", at).Type)
	assert.Equal(t, "mixed", lookup(t, table, "obj", at).Type)
	_, ok := table.Lookup("env", at)
	assert.False(t, ok)
}

func TestConfiguredScanFunctions(t *testing.T) {
	src := `void f() { my_scan(a, b, out); /*END*/ }`
	file, _ := parser.ParseFile(source.NewText([]byte(src)))
	table := symbols.Build(file, symbols.BuildOptions{
		ScanFunctions: symbols.ScanFunctionsByName([]string{"my_scan"}),
	})
	at := uint32(strings.Index(src, "/*END*/"))
	_, ok := table.Lookup("out", at)
	assert.True(t, ok)
	_, ok = table.Lookup("b", at)
	assert.False(t, ok)
}

func TestStructsAndClasses(t *testing.T) {
	src := `struct Point { int x, y; };
class Node { class Node *next; mixed value; }
void f() { struct Point p; }
`
	table := build(t, src)
	id, ok := table.FindType("Point")
	require.True(t, ok)
	assert.Equal(t, symbols.SymbolStruct, table.Symbol(id).Kind)

	var members []string
	for _, m := range table.MembersOf("struct Point*") {
		members = append(members, table.Symbol(m).Name)
	}
	assert.Equal(t, []string{"x", "y"}, members)

	next, ok := table.Member("private class Node", "next")
	require.True(t, ok)
	assert.Equal(t, "class Node*", table.Symbol(next).Type)
	assert.Equal(t, symbols.SymbolMember, table.Symbol(next).Kind)
	assert.Equal(t, "class:Node", table.Scope(table.Symbol(next).Scope).Name)
	assert.Nil(t, table.MembersOf("Missing"))
}

func TestClosureScope(t *testing.T) {
	src := `void f() {
    function g = function(int q) { return q; /*Q*/ };
}
`
	table := build(t, src)
	q := lookup(t, table, "q", offset(t, src, "/*Q*/"))
	assert.Equal(t, symbols.SymbolParameter, q.Kind)
	assert.Equal(t, "function:<closure>", table.Scope(q.Scope).Name)
	assert.Equal(t, "function", lookup(t, table, "g", offset(t, src, "/*Q*/")).Type)
}

func TestInherits(t *testing.T) {
	src := `inherit "/std/room";
inherit ROOM;
inherit DIR "base";
inherit "/std/room";
`
	table := build(t, src)
	require.Len(t, table.Inherits, 4)
	assert.Equal(t, []symbols.InheritPart{{Text: "/std/room"}}, table.Inherits[0].Parts)
	assert.Equal(t, []symbols.InheritPart{{Macro: true, Text: "DIR"}, {Text: "base"}}, table.Inherits[2].Parts)
	assert.Equal(t, []string{`"/std/room"`, "ROOM", `DIR "base"`}, table.InheritedFiles())

	sym := table.Symbol(table.Inherits[1].Symbol)
	assert.Equal(t, symbols.SymbolInherit, sym.Kind)
	assert.Equal(t, table.Root, sym.Scope)

	assert.True(t, table.IsInheriting("room"))
	assert.True(t, table.IsInheriting("std/room.c"))
	assert.False(t, table.IsInheriting("broom"))
}

func TestPrototypeDoesNotHideDefinition(t *testing.T) {
	src := `void f();
void f() { }
void g() { }
void g();
`
	table := build(t, src)
	f, ok := table.Function("f")
	require.True(t, ok)
	assert.False(t, table.Symbol(f).Prototype)
	g, ok := table.Function("g")
	require.True(t, ok)
	assert.False(t, table.Symbol(g).Prototype)
}

func TestDocAndSignature(t *testing.T) {
	src := `/** Adds numbers. */
varargs int add(int a, mixed *rest...) { return a; }
string *names;
`
	table := build(t, src)
	add, ok := table.Function("add")
	require.True(t, ok)
	assert.Equal(t, "Adds numbers.", table.Symbol(add).Doc)
	assert.Equal(t, "varargs int add(int a, mixed *rest...)", table.Signature(add))

	names, ok := table.Lookup("names", 0)
	require.True(t, ok)
	assert.Equal(t, "string *names", table.Signature(names))
}

func TestMalformedInputStillBuilds(t *testing.T) {
	for _, src := range []string{
		"void f( { int x = ; }",
		"class { int a; }",
		"inherit ;",
		"foreach",
		"void f() { foreach (in) { y = 1; } }",
		"struct P { int; };",
	} {
		file, _ := parser.ParseFile(source.NewText([]byte(src)))
		table := symbols.Build(file, symbols.BuildOptions{})
		require.NoError(t, table.Validate(), "input %q", src)
	}
}

func TestUsesBindToDeclarations(t *testing.T) {
	src := `int x;
void f(int x) {
    x = x + y;
    ob->x;
    ::x();
}
int g() { return x; }
`
	table := build(t, src)
	file, _ := parser.ParseFile(source.NewText([]byte(src)))

	param := lookup(t, table, "x", offset(t, src, "x = x"))
	require.Equal(t, symbols.SymbolParameter, param.Kind)
	global := lookup(t, table, "x", 0)

	var got []string
	for _, u := range table.Uses(file) {
		kind := "unbound"
		if sym := table.Symbol(u.Symbol); sym != nil {
			kind = sym.Kind.String()
		}
		got = append(got, u.Name+":"+kind)
	}
	assert.Equal(t, []string{
		"x:parameter", "x:parameter", "y:unbound", "ob:unbound", "x:variable",
	}, got)
	assert.Equal(t, symbols.SymbolVariable, global.Kind)
}
