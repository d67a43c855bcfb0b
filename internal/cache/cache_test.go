package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameVersionReturnsSameResult(t *testing.T) {
	c := New(Options{})
	first, err := c.Get("a.c", 1, []byte("int x;"))
	require.NoError(t, err)
	second, err := c.Get("a.c", 1, []byte("ignored because the version matches"))
	require.NoError(t, err)
	assert.Same(t, first, second)

	third, err := c.Get("a.c", 2, []byte("int x; int y;"))
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Len(t, third.Table.Globals(), 2)
	assert.Equal(t, 1, c.Len())
}

func TestEvictsOldestInserted(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(Options{Size: 2, Registerer: reg})
	for _, id := range []string{"a", "b", "c"} {
		_, err := c.Get(id, 1, []byte("int x;"))
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"b", "c"}, c.IDs())
	_, _, ok := c.Peek("a")
	assert.False(t, ok)

	// a newer version of b moves it to the back
	_, err := c.Get("b", 2, nil)
	require.NoError(t, err)
	_, err = c.Get("d", 1, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d"}, c.IDs())

	assert.InDelta(t, 2, testutil.ToFloat64(c.metrics.evictions), 0)
	assert.InDelta(t, 5, testutil.ToFloat64(c.metrics.misses), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(c.metrics.hits), 0)
}

func TestInvalidate(t *testing.T) {
	c := New(Options{})
	_, err := c.Get("a", 1, []byte("int x;"))
	require.NoError(t, err)
	_, err = c.Get("b", 1, []byte("int y;"))
	require.NoError(t, err)

	c.Invalidate("a")
	c.Invalidate("missing")
	assert.Equal(t, 1, c.Len())

	res, version, ok := c.Peek("b")
	require.True(t, ok)
	assert.Equal(t, int32(1), version)
	assert.NotNil(t, res)

	c.InvalidateAll()
	assert.Zero(t, c.Len())
	assert.Empty(t, c.IDs())
}

func TestConcurrentGets(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(Options{Size: 8, Registerer: reg})
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("doc%d.c", i%4)
			res, err := c.Get(id, 1, []byte("void f() { int a; }"))
			assert.NoError(t, err)
			assert.NotNil(t, res)
		}()
	}
	wg.Wait()
	assert.Equal(t, 4, c.Len())
	total := testutil.ToFloat64(c.metrics.hits) + testutil.ToFloat64(c.metrics.misses)
	assert.LessOrEqual(t, total, 32.0)
}

func TestOlderVersionDoesNotReplaceNewer(t *testing.T) {
	c := New(Options{})
	newer, err := c.Get("a.c", 2, []byte("int x; int y;"))
	require.NoError(t, err)

	older, err := c.Get("a.c", 1, []byte("int x;"))
	require.NoError(t, err)
	assert.Len(t, older.Table.Globals(), 1)

	res, version, ok := c.Peek("a.c")
	require.True(t, ok)
	assert.Equal(t, int32(2), version)
	assert.Same(t, newer, res)
	assert.Equal(t, []string{"a.c"}, c.IDs())
}

func TestNamedCachesShareARegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	docs := New(Options{Registerer: reg})
	inherited := New(Options{Name: "inherited", Registerer: reg})

	_, err := docs.Get("a.c", 1, []byte("int x;"))
	require.NoError(t, err)
	_, err = inherited.Get("b.c", 1, []byte("int y;"))
	require.NoError(t, err)
	_, err = inherited.Get("b.c", 1, nil)
	require.NoError(t, err)

	assert.InDelta(t, 0, testutil.ToFloat64(docs.metrics.hits), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(inherited.metrics.hits), 0)
	n, err := testutil.GatherAndCount(reg, "lpcls_analysis_cache_misses_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
