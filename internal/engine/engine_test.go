package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lpcls/internal/symbols"
)

type macroMap map[string]string

func (m macroMap) Macro(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

type workspace struct {
	t    *testing.T
	root string
	eng  *Engine
}

func newWorkspace(t *testing.T, files map[string]string) *workspace {
	t.Helper()
	return newSizedWorkspace(t, files, 0)
}

func newSizedWorkspace(t *testing.T, files map[string]string, cacheSize int) *workspace {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	eng, err := New(Options{Root: root, Macros: macroMap{"ROOM": `"/std/room"`}, CacheSize: cacheSize})
	require.NoError(t, err)
	return &workspace{t: t, root: root, eng: eng}
}

func (w *workspace) path(name string) string {
	return filepath.Join(w.root, filepath.FromSlash(name))
}

// open analyzes src as document name and returns the offset of marker in it.
func (w *workspace) open(name, src, marker string) uint32 {
	w.t.Helper()
	_, err := w.eng.GetScopeTree(w.path(name), 1, []byte(src))
	require.NoError(w.t, err)
	if marker == "" {
		return 0
	}
	i := strings.Index(src, marker)
	require.GreaterOrEqual(w.t, i, 0)
	return uint32(i)
}

func names(ms []Match) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Symbol.Name)
	}
	return out
}

const roomSrc = `/** Light level. */
int light;
private int secret;
class Exit { string dir; object dest; }
class Exit *exits;
string query_short() { return "room"; }
`

func TestBumpScenario(t *testing.T) {
	w := newWorkspace(t, nil)
	src := `int g_count;
void bump(int by) {
    int total = g_count + by;
    return total;
}
`
	at := w.open("bump.c", src, "return")
	got := names(w.eng.SymbolsVisible(w.path("bump.c"), at))
	assert.Subset(t, got, []string{"g_count", "by", "total", "bump"})
	assert.Len(t, got, 4)

	m, ok := w.eng.Resolve(w.path("bump.c"), "by", at)
	require.True(t, ok)
	assert.Equal(t, symbols.SymbolParameter, m.Symbol.Kind)
	assert.False(t, m.Inherited)
}

func TestResolveFallsBackToInheritChain(t *testing.T) {
	w := newWorkspace(t, map[string]string{
		"std/room.c": roomSrc,
		"std/base.c": "int light;\nint base_only;",
		"d/shop.c":   "inherit ROOM;\ninherit \"/std/base\";\nint stock;",
	})
	src := "inherit \"shop\";\nvoid create() { int local; /*HERE*/ }\n"
	at := w.open("d/inn.c", src, "/*HERE*/")
	doc := w.path("d/inn.c")

	m, ok := w.eng.Resolve(doc, "light", at)
	require.True(t, ok)
	assert.True(t, m.Inherited)
	assert.Equal(t, w.path("std/room.c"), m.Path, "first file in depth-first order wins")
	assert.Equal(t, "Light level.", m.Symbol.Doc)

	m, ok = w.eng.Resolve(doc, "base_only", at)
	require.True(t, ok)
	assert.Equal(t, w.path("std/base.c"), m.Path)

	_, ok = w.eng.Resolve(doc, "secret", at)
	assert.False(t, ok, "private globals are not inherited")
	_, ok = w.eng.Resolve(doc, "nothing", at)
	assert.False(t, ok)

	visible := names(w.eng.SymbolsVisible(doc, at))
	assert.Subset(t, visible, []string{"local", "create", "stock", "light", "exits", "query_short", "base_only"})
	assert.NotContains(t, visible, "secret")

	assert.Equal(t, []string{`"shop"`}, w.eng.InheritedFiles(doc))
	assert.Equal(t, []string{w.path("d/shop.c"), w.path("std/room.c"), w.path("std/base.c")},
		w.eng.InheritanceChain(doc))
	assert.True(t, w.eng.IsInheriting(doc, "shop.c"))
}

func TestMutualInheritance(t *testing.T) {
	w := newWorkspace(t, map[string]string{
		"b.c": "inherit \"a\";\nint in_b;",
	})
	src := "inherit \"b\";\nint in_a;\n"
	w.open("a.c", src, "")
	require.NoError(t, os.WriteFile(w.path("a.c"), []byte(src), 0o644))
	doc := w.path("a.c")

	assert.Equal(t, []string{`"b"`}, w.eng.InheritedFiles(doc))
	assert.Equal(t, []string{w.path("b.c")}, w.eng.InheritanceChain(doc))
	m, ok := w.eng.Resolve(doc, "in_b", 0)
	require.True(t, ok)
	assert.Equal(t, w.path("b.c"), m.Path)
}

func TestMembersAndChains(t *testing.T) {
	w := newWorkspace(t, map[string]string{"std/room.c": roomSrc})
	src := `inherit ROOM;
struct Point { int x, y; };
struct Point origin;
void f() {
    class Exit e;
    e->dir;
    exits[0]->dest;
    origin.x;
    ::query_short();
    room::query_short();
}
`
	w.open("r.c", src, "")
	doc := w.path("r.c")

	assert.Equal(t, []string{"x", "y"}, names(w.eng.MembersOf(doc, "struct Point")))
	exitMembers := w.eng.MembersOf(doc, "class Exit*")
	require.Equal(t, []string{"dir", "dest"}, names(exitMembers))
	assert.True(t, exitMembers[0].Inherited)
	assert.Empty(t, w.eng.MembersOf(doc, "Missing"))

	m, ok := w.eng.ResolveChain(doc, []string{"origin", "y"}, 0)
	require.True(t, ok)
	assert.Equal(t, symbols.SymbolMember, m.Symbol.Kind)
	_, ok = w.eng.ResolveChain(doc, []string{"origin", "z"}, 0)
	assert.False(t, ok)
	_, ok = w.eng.ResolveChain(doc, []string{"nobody", "x"}, 0)
	assert.False(t, ok)
	_, ok = w.eng.ResolveChain(doc, nil, 0)
	assert.False(t, ok)

	def := func(marker string, shift int) (Match, bool) {
		i := strings.Index(src, marker)
		require.GreaterOrEqual(t, i, 0, marker)
		return w.eng.Definition(doc, uint32(i+shift))
	}

	m, ok = def("e->dir", 3)
	require.True(t, ok)
	assert.Equal(t, "dir", m.Symbol.Name)
	assert.Equal(t, w.path("std/room.c"), m.Path)

	m, ok = def("exits[0]->dest", 10)
	require.True(t, ok)
	assert.Equal(t, "dest", m.Symbol.Name)

	m, ok = def("origin.x", 7)
	require.True(t, ok)
	assert.Equal(t, "x", m.Symbol.Name)
	assert.False(t, m.Inherited)

	m, ok = def("::query_short", 2)
	require.True(t, ok)
	assert.Equal(t, "query_short", m.Symbol.Name)
	assert.True(t, m.Inherited)

	m, ok = def("room::query_short", 6)
	require.True(t, ok)
	assert.Equal(t, w.path("std/room.c"), m.Path)

	m, ok = def("ROOM", 1)
	require.True(t, ok)
	assert.False(t, m.Found())
	assert.Equal(t, w.path("std/room.c"), m.Path)

	m, ok = def("origin;", 2)
	require.True(t, ok)
	assert.Equal(t, "struct Point", m.Symbol.Type)
	assert.Equal(t, "struct Point origin", m.Signature())
}

func TestSuggest(t *testing.T) {
	w := newWorkspace(t, nil)
	src := "int counter;\nint count_all;\nstring name;\nvoid f() { /*HERE*/ }\n"
	at := w.open("s.c", src, "/*HERE*/")
	got := w.eng.Suggest(w.path("s.c"), "countr", at, 2)
	require.NotEmpty(t, got)
	assert.Equal(t, "counter", got[0])
	assert.NotContains(t, got, "name")
	assert.Nil(t, w.eng.Suggest(w.path("s.c"), "", at, 2))
}

func TestVersionsAndInvalidation(t *testing.T) {
	w := newWorkspace(t, map[string]string{"lib.c": "int old_name;"})
	doc := w.path("main.c")

	first, err := w.eng.GetScopeTree(doc, 1, []byte("inherit \"lib\";"))
	require.NoError(t, err)
	same, err := w.eng.GetScopeTree(doc, 1, []byte("ignored"))
	require.NoError(t, err)
	assert.Same(t, first, same)

	_, ok := w.eng.Resolve(doc, "old_name", 0)
	assert.True(t, ok)

	require.NoError(t, os.WriteFile(w.path("lib.c"), []byte("int new_name;"), 0o644))
	w.eng.FileChanged(w.path("lib.c"))
	_, ok = w.eng.Resolve(doc, "new_name", 0)
	assert.True(t, ok)

	// an open buffer of lib.c wins over its disk content
	_, err = w.eng.GetScopeTree(w.path("lib.c"), 7, []byte("int buffered;"))
	require.NoError(t, err)
	_, ok = w.eng.Resolve(doc, "buffered", 0)
	assert.True(t, ok)

	w.eng.Invalidate(doc)
	_, err = w.eng.Result(doc)
	assert.ErrorIs(t, err, ErrNotAnalyzed)
	assert.Nil(t, w.eng.SymbolsVisible(doc, 0))
	_, ok = w.eng.Resolve(doc, "buffered", 0)
	assert.False(t, ok)

	res, err := w.eng.Open(w.path("lib.c"))
	require.NoError(t, err)
	assert.NotNil(t, res)
	w.eng.InvalidateAll()
	_, err = w.eng.Result(w.path("lib.c"))
	assert.ErrorIs(t, err, ErrNotAnalyzed)
}

func TestQueriesNeverPanic(t *testing.T) {
	w := newWorkspace(t, nil)
	inputs := []string{"", "}", "inherit", "void f( {", "x->->y", "::", "class { int a; }", "\x00\xff"}
	for i, src := range inputs {
		name := filepath.Join("junk", string(rune('a'+i))+".c")
		w.open(name, src, "")
		doc := w.path(name)
		for off := uint32(0); off <= uint32(len(src))+1; off++ {
			w.eng.SymbolsVisible(doc, off)
			w.eng.Definition(doc, off)
			w.eng.Resolve(doc, "x", off)
			w.eng.Suggest(doc, "x", off, 3)
		}
		w.eng.MembersOf(doc, "")
		w.eng.InheritanceChain(doc)
	}
}

func TestInheritedLoadsKeepDocumentCached(t *testing.T) {
	w := newSizedWorkspace(t, map[string]string{
		"b.c": "int from_b;",
		"c.c": "inherit \"a\";\nint from_c;",
		"a.c": "inherit \"b\";\ninherit \"c\";\nint mine;",
	}, 2)
	src := "inherit \"b\";\ninherit \"c\";\nint mine;\n"
	at := w.open("a.c", src, "int mine")
	doc := w.path("a.c")

	first := names(w.eng.SymbolsVisible(doc, at))
	second := names(w.eng.SymbolsVisible(doc, at))
	assert.Equal(t, first, second)
	assert.Subset(t, first, []string{"mine", "from_b", "from_c"})

	_, ok := w.eng.Resolve(doc, "mine", at)
	assert.True(t, ok)
	_, ok = w.eng.Resolve(doc, "from_c", at)
	assert.True(t, ok)
	assert.Equal(t, []string{`"b"`, `"c"`}, w.eng.InheritedFiles(doc))
}
