package parser

import (
	"slices"

	"lpcls/internal/ast"
	"lpcls/internal/diag"
	"lpcls/internal/lexer"
	"lpcls/internal/source"
	"lpcls/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is exhausted.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Parser holds the state for one document.
type Parser struct {
	text    *source.Text
	toks    []token.Token
	pos     int
	opts    Options
	prevEnd uint32 // end offset of the last consumed token
}

// ParseFile lexes and parses text, collecting lexer and parser diagnostics.
// It never fails: unparseable regions become Bad* nodes.
func ParseFile(text *source.Text) (*ast.File, []diag.Diagnostic) {
	bag := diag.NewBag(100)
	file := Parse(text, Options{MaxErrors: 100, Reporter: diag.BagReporter{Bag: bag}})
	bag.Sort()
	return file, bag.Items()
}

// Parse runs the parser with explicit options.
func Parse(text *source.Text, opts Options) *ast.File {
	lx := lexer.New(text, lexer.Options{Reporter: opts.Reporter})
	p := Parser{
		text: text,
		toks: lx.All(),
		opts: opts,
	}
	return p.parseFile()
}

func (p *Parser) parseFile() *ast.File {
	file := &ast.File{Sp: source.Span{Start: 0, End: p.text.Len()}}
	for !p.at(token.EOF) {
		before := p.pos
		d := p.parseDecl()
		if d != nil {
			file.Decls = append(file.Decls, d)
		}
		if p.pos == before {
			p.advance()
		}
	}
	return file
}

func (p *Parser) peek() token.Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		p.prevEnd = tok.Span.End
	}
	return tok
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect consumes k or reports code at the current position without consuming.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, msg)
	return token.Token{Kind: token.Invalid, Span: p.diagSpan()}, false
}

// diagSpan points at the offending token, or just past the previous one at EOF.
func (p *Parser) diagSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return source.Span{Start: p.prevEnd, End: p.prevEnd}
	}
	return tok.Span
}

func (p *Parser) spanFrom(start uint32) source.Span {
	end := max(p.prevEnd, start)
	return source.Span{Start: start, End: end}
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.diagSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if p.opts.Reporter == nil {
		return
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Enough() {
		return
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
}

// resyncTop skips to the end of the current top-level construct: a ';' or the '}'
// closing the outermost brace opened while skipping.
func (p *Parser) resyncTop() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.advance().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth <= 0 {
				return
			}
		case token.Semicolon:
			if depth == 0 {
				return
			}
		}
	}
}

// resyncStmt skips to the next ';' or stops before a '}' of the enclosing block.
func (p *Parser) resyncStmt() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}

func (p *Parser) ident(tok token.Token) *ast.Ident {
	return &ast.Ident{Name: tok.Text, Sp: tok.Span}
}
