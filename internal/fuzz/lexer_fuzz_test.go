package fuzztests

import (
	"testing"

	"lpcls/internal/diag"
	"lpcls/internal/lexer"
	"lpcls/internal/source"
	"lpcls/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		text := source.NewText(clampInput(input))
		bag := diag.NewBag(64)
		lx := lexer.New(text, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

		var prevEnd uint32
		for i := 0; ; i++ {
			tok := lx.Next()
			if tok.Span.Start < prevEnd || tok.Span.End > text.Len() {
				t.Fatalf("token %d %v: span %v out of order (prev end %d, len %d)", i, tok.Kind, tok.Span, prevEnd, text.Len())
			}
			prevEnd = tok.Span.End
			if tok.Kind == token.EOF {
				break
			}
			if i > int(text.Len())+1 {
				t.Fatalf("lexer does not advance: %d tokens for %d bytes", i, text.Len())
			}
		}
	})
}
