package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lpcls/internal/diag"
)

func TestCheckReportsMissingInherits(t *testing.T) {
	w := newWorkspace(t, map[string]string{"std/room.c": roomSrc})
	src := "inherit ROOM;\ninherit \"/std/missing\";\nint x;\n"
	w.open("d/hall.c", src, "")
	doc := w.path("d/hall.c")

	res, diags, err := w.eng.Check(doc)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.SemaInheritNotFound, diags[0].Code)
	assert.Equal(t, diag.SevWarning, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "/std/missing")

	assert.Equal(t, diags, w.eng.InheritDiagnostics(doc))

	_, _, err = w.eng.Check(w.path("nowhere.c"))
	assert.Error(t, err)
}

func TestResolvedInheritsSkipsMissingFiles(t *testing.T) {
	w := newWorkspace(t, map[string]string{"std/room.c": roomSrc})
	w.open("d/hall.c", "inherit ROOM;\ninherit \"/std/missing\";\n", "")
	doc := w.path("d/hall.c")

	edges := w.eng.ResolvedInherits(doc)
	require.Len(t, edges, 1)
	assert.Equal(t, w.path("std/room.c"), edges[0].Path)
	assert.Equal(t, uint32(8), edges[0].Span.Start)

	assert.Nil(t, w.eng.ResolvedInherits(w.path("nowhere.c")))
}

func TestCheckReportsUnusedLocalsAndParameters(t *testing.T) {
	w := newWorkspace(t, nil)
	src := `int g_unused;
void f(int used_p, int unused_p) {
    int a = used_p;
    int b;
    write(a);
    foreach (string s in ({})) { }
}
void proto(int x);
`
	w.open("u.c", src, "")
	_, diags, err := w.eng.Check(w.path("u.c"))
	require.NoError(t, err)

	var got []string
	for _, d := range diags {
		assert.Equal(t, diag.SevInfo, d.Severity)
		got = append(got, d.Code.ID()+" "+src[d.Primary.Start:d.Primary.End])
	}
	assert.Equal(t, []string{"SEM3006 unused_p", "SEM3005 b", "SEM3005 s"}, got)
}

func TestReferences(t *testing.T) {
	w := newWorkspace(t, map[string]string{"std/room.c": roomSrc})
	src := `inherit ROOM;
int count;
void f(int n) {
    count = n + light;
    write(count);
}
int g() { return light + count; }
`
	at := w.open("d/hall.c", src, "count = ")
	doc := w.path("d/hall.c")

	refs := w.eng.References(doc, at, true)
	require.Len(t, refs, 4)
	assert.True(t, refs[0].Decl)
	assert.Equal(t, uint32(strings.Index(src, "count;")), refs[0].Span.Start)
	for _, r := range refs {
		assert.Equal(t, doc, r.Path)
		assert.Equal(t, "count", src[r.Span.Start:r.Span.End])
	}
	assert.Equal(t, refs[1:], w.eng.References(doc, uint32(strings.LastIndex(src, "count")), false))

	light := w.eng.References(doc, uint32(strings.Index(src, "light")), true)
	require.Len(t, light, 3)
	assert.Equal(t, w.path("std/room.c"), light[0].Path)
	for _, r := range light[1:] {
		assert.Equal(t, doc, r.Path)
		assert.Equal(t, "light", src[r.Span.Start:r.Span.End])
	}

	assert.Nil(t, w.eng.References(doc, uint32(strings.Index(src, "write")), true))
	assert.Nil(t, w.eng.References(w.path("nowhere.c"), 0, true))
}
