package fuzztests

import (
	"testing"
	"time"

	"lpcls/internal/analysis"
	"lpcls/internal/parser"
	"lpcls/internal/source"
	"lpcls/internal/testkit"
)

// parseTimeout is the maximum time allowed for one input; longer means a
// recovery loop that does not advance.
const parseTimeout = 5 * time.Second

func FuzzParserSpans(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		text := source.NewText(clampInput(input))
		file, _ := parser.ParseFile(text)
		if err := testkit.CheckSpanInvariants(file, text); err != nil {
			t.Fatalf("span invariants: %v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

// FuzzAnalyzeNoHang runs the whole pipeline under a deadline and checks the
// resulting scope table.
func FuzzAnalyzeNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("void f() { for (;;) { while (1) do ; while (0); } }"))
	f.Add([]byte("class A { class B { int c; } }"))
	f.Add([]byte("int f(,,,) { return; } int g("))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		type outcome struct {
			res *analysis.Result
			err error
		}
		done := make(chan outcome, 1)
		go func() {
			res, err := analysis.Analyze(input, analysis.Options{Validate: true})
			done <- outcome{res, err}
		}()

		select {
		case out := <-done:
			if out.err != nil {
				t.Fatalf("analyze: %v", out.err)
			}
			if err := testkit.CheckTable(out.res.Table, out.res.Text); err != nil {
				t.Fatalf("table invariants: %v\ninput: %q", err, truncateForLog(input, 200))
			}
		case <-time.After(parseTimeout):
			t.Fatalf("analysis hang detected after %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
