package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lpcls/internal/analysis"
	"lpcls/internal/diag"
	"lpcls/internal/lexer"
	"lpcls/internal/source"
	"lpcls/internal/token"
)

func TestSarif(t *testing.T) {
	doc := sampleDoc()
	doc.Diagnostics = append(doc.Diagnostics,
		diag.New(diag.SevWarning, diag.SemaInheritNotFound, source.Span{Start: 0, End: 3}, "cannot find inherited file"))

	var buf bytes.Buffer
	require.NoError(t, Sarif(&buf, []Document{doc}, SarifRunMeta{ToolName: "lpcls", ToolVersion: "1.0.0", PathMode: PathModeRelative, BaseDir: "/mud"}))

	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				Level     string `json:"level"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
						Region struct {
							StartLine uint32 `json:"startLine"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
				RelatedLocations []json.RawMessage `json:"relatedLocations"`
			} `json:"results"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &log))
	assert.Equal(t, "2.1.0", log.Version)
	require.Len(t, log.Runs, 1)
	run := log.Runs[0]
	assert.Equal(t, "lpcls", run.Tool.Driver.Name)
	require.Len(t, run.Tool.Driver.Rules, 2)
	assert.Equal(t, "SEM3003", run.Tool.Driver.Rules[0].ID)
	assert.Equal(t, "SYN2002", run.Tool.Driver.Rules[1].ID)

	require.Len(t, run.Results, 2)
	first := run.Results[0]
	assert.Equal(t, "SYN2002", first.RuleID)
	assert.Equal(t, "error", first.Level)
	assert.Equal(t, "std/room.c", first.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, uint32(2), first.Locations[0].PhysicalLocation.Region.StartLine)
	assert.Len(t, first.RelatedLocations, 1)
	assert.Equal(t, "warning", run.Results[1].Level)
}

func lexAll(text *source.Text) []token.Token {
	lx := lexer.New(text, lexer.Options{})
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func TestTokens(t *testing.T) {
	text := source.NewText([]byte("// hi\nint x;"))
	tokens := lexAll(text)

	var pretty bytes.Buffer
	require.NoError(t, FormatTokensPretty(&pretty, tokens, text))
	assert.Contains(t, pretty.String(), `"x" at 2:5-2:6 (leading: space)`)
	assert.Contains(t, pretty.String(), "(leading: line_comment, newline)")

	var raw bytes.Buffer
	require.NoError(t, FormatTokensJSON(&raw, tokens))
	var out []TokenOutput
	require.NoError(t, json.Unmarshal(raw.Bytes(), &out))
	require.Len(t, out, len(tokens))
	assert.Equal(t, "x", out[1].Text)
	assert.Equal(t, []string{"space"}, out[1].Leading)
	assert.Nil(t, out[2].Leading)
}

func TestSemanticsJSON(t *testing.T) {
	res, err := analysis.Analyze([]byte("inherit \"/std/room\";\n/** Count. */\nint g;\nvoid f(int a) { b = 1; }\n"), analysis.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, SemanticsJSON(&buf, "room.c", res.Table))
	var out SemanticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "room.c", out.Path)
	require.NotEmpty(t, out.Scopes)
	assert.Equal(t, "global", out.Scopes[0].Kind)
	require.Len(t, out.Inherits, 1)
	assert.Equal(t, `"/std/room"`, out.Inherits[0].Raw)

	byName := make(map[string]SymbolJSON)
	for _, s := range out.Symbols {
		byName[s.Name] = s
	}
	assert.Equal(t, "Count.", byName["g"].Doc)
	assert.Equal(t, "void f(int a)", byName["f"].Signature)
	assert.Equal(t, []string{"inferred"}, byName["b"].Flags)

	empty, err := BuildSemanticsOutput("", nil)
	require.NoError(t, err)
	assert.Empty(t, empty.Symbols)
}
