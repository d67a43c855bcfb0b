package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lpcls/internal/analysis"
	"lpcls/internal/diag"
	"lpcls/internal/source"
)

func sampleDoc() Document {
	text := source.NewText([]byte("int x;\nstring s = \"héllo\"; bad\n"))
	start := uint32(strings.Index(string(text.Content), "bad"))
	return Document{
		Path: "/mud/std/room.c",
		Text: text,
		Diagnostics: []diag.Diagnostic{
			diag.NewError(diag.SynExpectSemicolon, source.Span{Start: start, End: start + 3}, "expected ';'").
				WithNote(source.Span{Start: 0, End: 3}, "declared here"),
		},
	}
}

func TestPretty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, sampleDoc(), PrettyOpts{PathMode: PathModeRelative, BaseDir: "/mud", ShowNotes: true}))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "std/room.c:2:"), lines[0])
	assert.Contains(t, lines[0], "ERROR")
	assert.Contains(t, lines[0], "expected ';'")
	assert.Equal(t, `2 | string s = "héllo"; bad`, lines[1])
	// é is one column wide although it takes two bytes
	assert.Equal(t, "  | "+strings.Repeat(" ", 21)+"^~~", lines[2])
	assert.Contains(t, lines[3], "note:")
	assert.Equal(t, "  | ^~~", lines[5])
}

func TestPrettyContextAndBasename(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, sampleDoc(), PrettyOpts{PathMode: PathModeBasename, Context: 1}))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "room.c:2:"))
	assert.Contains(t, out, "1 | int x;")
	assert.NotContains(t, out, "note:")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, []Document{sampleDoc()}, JSONOpts{IncludePositions: true, IncludeNotes: true, PathMode: PathModeBasename}))
	var out DiagnosticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, 1, out.Count)
	d := out.Diagnostics[0]
	assert.Equal(t, "ERROR", d.Severity)
	assert.Equal(t, "room.c", d.Location.File)
	assert.Equal(t, uint32(2), d.Location.StartLine)
	require.Len(t, d.Notes, 1)
	assert.Equal(t, uint32(1), d.Notes[0].Location.StartLine)

	empty := BuildDiagnosticsOutput([]Document{sampleDoc()}, JSONOpts{Max: -1})
	assert.Equal(t, 1, empty.Count)
	capped := BuildDiagnosticsOutput([]Document{sampleDoc(), sampleDoc()}, JSONOpts{Max: 1})
	assert.Equal(t, 1, capped.Count)
}

func TestScopeTree(t *testing.T) {
	res, err := analysis.Analyze([]byte("int g;\nvoid f(int a) {\n  int b;\n}\n"), analysis.Options{})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, ScopeTree(&buf, res.Table, res.Text, TreeOpts{Symbols: true}))
	want := `global [1:1-5:1]
├─ variable int g @1:5
├─ function void f(int a) @2:6
└─ function:f [2:1-4:2]
   ├─ parameter int a @2:12
   └─ block [2:15-4:2]
      └─ variable int b @3:7
`
	assert.Equal(t, want, buf.String())
}

func TestParsePathMode(t *testing.T) {
	assert.Equal(t, PathModeAbsolute, ParsePathMode("absolute"))
	assert.Equal(t, PathModeAuto, ParsePathMode("whatever"))
}
