package inherit

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lpcls/internal/analysis"
	"lpcls/internal/symbols"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func analyze(t *testing.T, src string) *symbols.Table {
	t.Helper()
	res, err := analysis.Analyze([]byte(src), analysis.Options{})
	require.NoError(t, err)
	return res.Table
}

func newResolver(t *testing.T, opts Options) *Resolver {
	t.Helper()
	r, err := NewResolver(opts)
	require.NoError(t, err)
	return r
}

func TestLoadCandidates(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"std/room.c":       "int room_light;",
		"d/town/shop.c":    "int shop_open;",
		"d/town/square.c":  `inherit "shop";`,
		"std/plain":        "int no_ext;",
		"d/town/dir.c/x.c": "",
	})
	r := newResolver(t, Options{Root: root, Macros: macroMap{"ROOM": `"/std/room"`}})
	from := filepath.Join(root, "d", "town", "square.c")

	unit, err := r.Load(`"/std/room"`, from)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "std", "room.c"), unit.Path)
	_, ok := unit.Table.Lookup("room_light", 0)
	assert.True(t, ok)

	unit, err = r.Load("ROOM", from)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "std", "room.c"), unit.Path)

	unit, err = r.Load(`"shop"`, from)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "d", "town", "shop.c"), unit.Path)

	unit, err = r.Load(`"std/plain"`, from)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "std", "plain"), unit.Path)

	_, err = r.Load(`"nowhere"`, from)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.Load("UNDEFINED", from)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.Load(`"dir.c"`, from)
	assert.ErrorIs(t, err, ErrNotFound, "directories are not candidates")

	_, ok = r.ResolveInherited(`"nowhere"`, from)
	assert.False(t, ok)
}

func TestMutualInheritanceTerminates(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.c": "inherit \"b\";\nint in_a;",
		"b.c": "inherit \"a\";\nint in_b;",
	})
	r := newResolver(t, Options{Root: root})
	aPath := filepath.Join(root, "a.c")
	table := analyze(t, "inherit \"b\";\nint in_a;")

	chain := r.Chain(aPath, table)
	require.Len(t, chain, 1)
	assert.Equal(t, filepath.Join(root, "b.c"), chain[0].Path)
	assert.Equal(t, []string{`"b"`}, table.InheritedFiles())
}

func TestChainOrderIsDepthFirst(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"base.c":  "int base_var;",
		"left.c":  "inherit \"base\";\ninherit \"leaf\";",
		"leaf.c":  "int leaf_var;",
		"right.c": "inherit \"base\";",
	})
	r := newResolver(t, Options{Root: root})
	table := analyze(t, "inherit \"left\";\ninherit \"right\";\ninherit \"missing\";")

	var names []string
	for _, u := range r.Chain(filepath.Join(root, "obj.c"), table) {
		names = append(names, filepath.Base(u.Path))
	}
	assert.Equal(t, []string{"left.c", "base.c", "leaf.c", "right.c"}, names)
}

func TestReloadAfterChange(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"lib.c": "int old_name;"})
	reg := prometheus.NewRegistry()
	r := newResolver(t, Options{Root: root, Registerer: reg})
	path := filepath.Join(root, "lib.c")

	first, err := r.LoadPath(path)
	require.NoError(t, err)
	again, err := r.LoadPath(path)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.InDelta(t, 1, testutil.ToFloat64(r.metrics.loads.WithLabelValues(sourceMemory)), 0)

	// edits are picked up once the file is invalidated
	writeFiles(t, root, map[string]string{"lib.c": "int new_name;"})
	stale, err := r.LoadPath(path)
	require.NoError(t, err)
	assert.Same(t, first, stale)

	r.Invalidate(path)
	assert.False(t, r.Loaded(path))
	changed, err := r.LoadPath(path)
	require.NoError(t, err)
	_, ok := changed.Table.Lookup("new_name", 0)
	assert.True(t, ok)
	assert.True(t, r.Loaded(path))

	r.InvalidateAll()
	assert.False(t, r.Loaded(path))
}

type countingOS struct {
	OS
	mu    sync.Mutex
	reads map[string]int
	stats int
}

func (c *countingOS) Content(path string) ([]byte, error) {
	c.mu.Lock()
	c.reads[filepath.Base(path)]++
	c.mu.Unlock()
	return c.OS.Content(path)
}

func (c *countingOS) Stat(path string) (os.FileInfo, error) {
	c.mu.Lock()
	c.stats++
	c.mu.Unlock()
	return c.OS.Stat(path)
}

func TestRepeatedChainsReuseLoadedFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"b.c": "inherit \"c\";\nint from_b;",
		"c.c": "int from_c;",
	})
	fs := &countingOS{reads: map[string]int{}}
	r := newResolver(t, Options{Root: root, FS: fs, Content: fs})
	from := filepath.Join(root, "a.c")
	table := analyze(t, "inherit \"b\";")

	for range 10 {
		require.Len(t, r.Chain(from, table), 2)
	}
	assert.Equal(t, map[string]int{"b.c": 1, "c.c": 1}, fs.reads)
	stats := fs.stats

	for range 10 {
		r.Chain(from, table)
	}
	assert.Equal(t, stats, fs.stats, "located references are not stat'ed again")

	r.Invalidate(filepath.Join(root, "c.c"))
	require.Len(t, r.Chain(from, table), 2)
	assert.Equal(t, map[string]int{"b.c": 1, "c.c": 2}, fs.reads)
}

func TestDiskCacheWarmStart(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"lib.c": `inherit "base";
/** Greets. */
varargs string greet(string who, mixed *rest...) { return who; }
class Item { string name; int weight; }
int counter;
`,
		"base.c": "int base_var;",
	})
	disk, err := OpenDiskCache(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	path := filepath.Join(root, "lib.c")

	cold := newResolver(t, Options{Root: root, Disk: disk})
	unit, err := cold.LoadPath(path)
	require.NoError(t, err)
	require.False(t, unit.FromDisk)

	warm := newResolver(t, Options{Root: root, Disk: disk})
	restored, err := warm.LoadPath(path)
	require.NoError(t, err)
	require.True(t, restored.FromDisk)
	require.NoError(t, restored.Table.Validate())

	tbl := restored.Table
	greet, ok := tbl.Function("greet")
	require.True(t, ok)
	assert.Equal(t, "Greets.", tbl.Symbol(greet).Doc)
	assert.Equal(t, unit.Table.Signature(mustFunc(t, unit.Table, "greet")), tbl.Signature(greet))

	var members []string
	for _, m := range tbl.MembersOf("class Item") {
		members = append(members, tbl.Symbol(m).Name)
	}
	assert.Equal(t, []string{"name", "weight"}, members)
	assert.Equal(t, []string{`"base"`}, tbl.InheritedFiles())

	chain := warm.Chain(path, tbl)
	require.Len(t, chain, 1)
	assert.Equal(t, filepath.Join(root, "base.c"), chain[0].Path)

	require.NoError(t, disk.DropAll())
	_, ok, err = disk.Get(path, restored.Hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func mustFunc(t *testing.T, tbl *symbols.Table, name string) symbols.SymbolID {
	t.Helper()
	id, ok := tbl.Function(name)
	require.True(t, ok)
	return id
}

func TestConcurrentLoadsShareUnit(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"lib.c": "int x;"})
	r := newResolver(t, Options{Root: root})

	var wg sync.WaitGroup
	units := make([]*Unit, 16)
	for i := range units {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, err := r.Load(`"lib"`, filepath.Join(root, "obj.c"))
			assert.NoError(t, err)
			units[i] = u
		}()
	}
	wg.Wait()
	for _, u := range units[1:] {
		assert.Same(t, units[0], u)
	}
}
