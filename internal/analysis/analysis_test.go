package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lpcls/internal/diag"
)

func TestAnalyzeBuildsTable(t *testing.T) {
	res, err := Analyze([]byte("int x;\nvoid f() { int y; }\n"), Options{Validate: true})
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)
	assert.False(t, res.HasErrors())
	assert.Equal(t, res.Table.Root, res.Root())
	assert.Len(t, res.Table.Globals(), 2)
	assert.NoError(t, res.Table.Validate())
}

func TestAnalyzePassesParseErrorsThrough(t *testing.T) {
	res, err := Analyze([]byte("int x\nvoid f() { int y; }\n"), Options{})
	require.NoError(t, err)
	require.NotEmpty(t, res.Diagnostics)
	assert.True(t, res.HasErrors())
	assert.Equal(t, diag.SynExpectSemicolon, res.Diagnostics[0].Code)

	_, ok := res.Table.Function("f")
	assert.True(t, ok, "declarations after the error are still built")
}

func TestAnalyzeBoundsDiagnostics(t *testing.T) {
	res, err := Analyze([]byte("@ @ @ @ @ @"), Options{MaxDiagnostics: 2})
	require.NoError(t, err)
	assert.Len(t, res.Diagnostics, 2)
}

func TestNilResultRoot(t *testing.T) {
	var res *Result
	assert.False(t, res.Root().IsValid())
}
