// Package analysis runs the per-document pipeline: lex, parse and scope build.
package analysis

import (
	"fmt"

	"fortio.org/safecast"

	"lpcls/internal/ast"
	"lpcls/internal/diag"
	"lpcls/internal/parser"
	"lpcls/internal/source"
	"lpcls/internal/symbols"
)

// DefaultMaxDiagnostics bounds the diagnostics kept per document.
const DefaultMaxDiagnostics = 100

// Options configures one analysis run. The zero value is usable.
type Options struct {
	MaxDiagnostics int
	ScanFunctions  []symbols.ScanFunction
	Hints          symbols.Hints
	Validate       bool
}

// Result is the immutable outcome of analyzing one document version.
type Result struct {
	Text        *source.Text
	File        *ast.File
	Table       *symbols.Table
	Diagnostics []diag.Diagnostic
}

// Root returns the global scope of the result.
func (r *Result) Root() symbols.ScopeID {
	if r == nil || r.Table == nil {
		return symbols.NoScopeID
	}
	return r.Table.Root
}

// HasErrors reports whether any diagnostic is an error.
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity >= diag.SevError {
			return true
		}
	}
	return false
}

// Analyze parses content and builds its scope tree. It never fails for any
// input; the error is reserved for invalid options.
func Analyze(content []byte, opts Options) (*Result, error) {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = DefaultMaxDiagnostics
	}
	maxErrors, err := safecast.Conv[uint](opts.MaxDiagnostics)
	if err != nil {
		return nil, fmt.Errorf("max diagnostics: %w", err)
	}

	text := source.NewText(content)
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	file := parser.Parse(text, parser.Options{MaxErrors: maxErrors, Reporter: reporter})
	table := symbols.Build(file, symbols.BuildOptions{
		Hints:         opts.Hints,
		Reporter:      reporter,
		ScanFunctions: opts.ScanFunctions,
		Validate:      opts.Validate,
	})
	bag.Sort()

	return &Result{
		Text:        text,
		File:        file,
		Table:       table,
		Diagnostics: bag.Items(),
	}, nil
}
