package fuzztests

import (
	"testing"
)

const (
	maxSeedBytes = 64 << 10
	maxFuzzInput = 1 << 16
)

var languageSeeds = []string{
	"",
	"int x;\n",
	"inherit \"/std/room\";\ninherit ROOM;\n",
	"int bump(int by) { int total = g_count + by; return total; }\n",
	"varargs void f(int a, mixed *rest...) { foreach (int v in rest) a += v; }\n",
	"struct Point { int x; int y; };\nclass Exit { string dir; object dest; }\n",
	"void f() { mapping m = ([ \"a\": 1 ]); foreach (string k, mixed v in m) write(k); }\n",
	"void f(string s) { sscanf(s, \"%s %d\", a, b); }\n",
	"void f() { function g = function(int x) { return x * 2; }; g(1); }\n",
	"void f() { object o = new(class Node); o->next->value = ::query(); }\n",
	"int *arr = ({ 1, 2, 3 });\nint y = arr[<1] + arr[1..2][0];\n",
	"void f() { for (int i = 0; i < 10; i++) { if (i) continue; } }\n",
	"void f() { switch (x) { case 1..2: break; default: return; } }\n",
	"/** doc */\nprivate static int secret() { return 'x'; }\n",
	// malformed
	"int x\nvoid f() {\n",
	"void f( { ",
	"inherit ;\nstruct { int;\n",
	"void f() { (: foo, 1 ",
	"void f() { \"unterminated\n }",
	"/* open comment",
	"void f() { { { { } } } }",
	"@ # ` \x00 \xff",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add(clampSeed([]byte(s)))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
