package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lpcls/internal/parser"
	"lpcls/internal/source"
	"lpcls/internal/testkit"
)

func TestSpanInvariants(t *testing.T) {
	sources := map[string]string{
		"empty":     "",
		"globals":   "int x, *y = ({});\nstring s = \"a\" + \"b\";\n",
		"functions": "varargs int add(int a, int *rest...) { foreach (int v in rest) a += v; return a; }\n",
		"types":     "struct P { int x; };\nclass Exit { string dir; }\nclass Exit *exits;\n",
		"inherits":  "inherit \"/std/room\";\ninherit ROOM \"/base\";\n",
		"broken":    "int x\nvoid f( {\n  y = \n",
		"unclosed":  "void f() { if (1) { while (x",
	}
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			text := source.NewText([]byte(src))
			file, _ := parser.ParseFile(text)
			require.NoError(t, testkit.CheckSpanInvariants(file, text))
		})
	}
}
