package lexer_test

import (
	"testing"

	"lpcls/internal/diag"
	"lpcls/internal/lexer"
	"lpcls/internal/source"
	"lpcls/internal/token"
)

func lexAll(t *testing.T, input string) ([]token.Token, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(100)
	lx := lexer.New(source.NewText([]byte(input)), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx.All(), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	toks, bag := lexAll(t, input)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %+v", input, bag.Items())
	}
	want = append(want, token.EOF)
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("lex %q: got %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("lex %q: token %d is %v, want %v (all: %v)", input, i, got[i], want[i], got)
		}
	}
	return toks
}

func TestDeclaration(t *testing.T) {
	toks := expectKinds(t, "string *names = ({});",
		token.KwString, token.Star, token.Ident, token.Assign,
		token.LParen, token.LBrace, token.RBrace, token.RParen, token.Semicolon)
	if toks[2].Text != "names" || toks[2].Span != (source.Span{Start: 8, End: 13}) {
		t.Fatalf("unexpected ident token %+v", toks[2])
	}
}

func TestInheritWithMacroConcat(t *testing.T) {
	expectKinds(t, `inherit DIR "/room";`,
		token.KwInherit, token.Ident, token.StringLit, token.Semicolon)
}

func TestOperatorsGreedy(t *testing.T) {
	expectKinds(t, "a->b(); ::create(); x <<= 1; y >>= 2; i++ ... ..",
		token.Ident, token.Arrow, token.Ident, token.LParen, token.RParen, token.Semicolon,
		token.ColonColon, token.Ident, token.LParen, token.RParen, token.Semicolon,
		token.Ident, token.ShlAssign, token.IntLit, token.Semicolon,
		token.Ident, token.ShrAssign, token.IntLit, token.Semicolon,
		token.Ident, token.Inc, token.Ellipsis, token.DotDot)
}

func TestFunctionPointer(t *testing.T) {
	expectKinds(t, "f = (: foo, 1 :);",
		token.Ident, token.Assign, token.FuncPtrOpen, token.Ident, token.Comma, token.IntLit,
		token.FuncPtrClose, token.Semicolon)
	// "(::" must stay a paren followed by a scope operator
	expectKinds(t, "(::create())",
		token.LParen, token.ColonColon, token.Ident, token.LParen, token.RParen, token.RParen)
}

func TestNumbers(t *testing.T) {
	toks := expectKinds(t, "1 0x1F 3.25 .5 1e3 1..3",
		token.IntLit, token.IntLit, token.FloatLit, token.FloatLit, token.FloatLit,
		token.IntLit, token.DotDot, token.IntLit)
	if toks[5].Text != "1" {
		t.Fatalf("range start lexed as %q", toks[5].Text)
	}
}

func TestCharAndString(t *testing.T) {
	toks := expectKinds(t, `'a' '\n' "say \"hi\""`, token.CharLit, token.CharLit, token.StringLit)
	if toks[2].Text != `"say \"hi\""` {
		t.Fatalf("unexpected string text %q", toks[2].Text)
	}
}

func TestDirectivesAreTrivia(t *testing.T) {
	src := "#include <std.h>\n#define X \\\n  1\nint x;"
	toks := expectKinds(t, src, token.KwInt, token.Ident, token.Semicolon)
	var directives []string
	for _, tr := range toks[0].Leading {
		if tr.Kind == token.TriviaDirective {
			directives = append(directives, tr.Text)
		}
	}
	if len(directives) != 2 || directives[1] != "#define X \\\n  1" {
		t.Fatalf("unexpected directives %q", directives)
	}
}

func TestHashInsideLineIsNotDirective(t *testing.T) {
	toks, bag := lexAll(t, "x = 1 # 2;")
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
	if toks[3].Kind != token.Invalid {
		t.Fatalf("expected invalid token for '#', got %v", toks[3].Kind)
	}
}

func TestDocCommentAttachesToNextToken(t *testing.T) {
	toks := expectKinds(t, "/** Says hello. */\nvoid hello() {}",
		token.KwVoid, token.Ident, token.LParen, token.RParen, token.LBrace, token.RBrace)
	if got := toks[0].DocComment(); got != "Says hello." {
		t.Fatalf("DocComment = %q", got)
	}
	plain := expectKinds(t, "/* note */ int x;", token.KwInt, token.Ident, token.Semicolon)
	if plain[0].DocComment() != "" {
		t.Fatalf("plain block comment must not be a doc comment")
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"unterminated string", `"abc`, diag.LexUnterminatedString},
		{"newline in string", "\"abc\nx", diag.LexUnterminatedString},
		{"unterminated comment", "/* abc", diag.LexUnterminatedBlockComment},
		{"bad number", "12abc", diag.LexBadNumber},
		{"unterminated char", "'ab", diag.LexUnterminatedChar},
		{"unknown char", "int $x;", diag.LexUnknownChar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := lexAll(t, tt.input)
			items := bag.Items()
			if len(items) == 0 {
				t.Fatalf("expected diagnostic %v", tt.code)
			}
			if items[0].Code != tt.code {
				t.Fatalf("got %v, want %v", items[0].Code, tt.code)
			}
		})
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx := lexer.New(source.NewText([]byte("a b")), lexer.Options{})
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("Peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("Next after Peek = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("second Next = %q", n.Text)
	}
	for range 3 {
		if lx.Next().Kind != token.EOF {
			t.Fatalf("expected sticky EOF")
		}
	}
}

func TestPlaceholderIsIdent(t *testing.T) {
	toks := expectKinds(t, "(: $1 + $2 :)",
		token.FuncPtrOpen, token.Ident, token.Plus, token.Ident, token.FuncPtrClose)
	if toks[1].Text != "$1" {
		t.Fatalf("unexpected placeholder text %q", toks[1].Text)
	}
}
