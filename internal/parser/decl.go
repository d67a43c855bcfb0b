package parser

import (
	"lpcls/internal/ast"
	"lpcls/internal/diag"
	"lpcls/internal/source"
	"lpcls/internal/token"
)

// parseDecl parses one top-level construct. It returns nil for stray semicolons.
func (p *Parser) parseDecl() ast.Decl {
	first := p.peek()
	start := first.Span.Start
	doc := first.DocComment()

	if p.eat(token.Semicolon) {
		return nil
	}

	mods := p.parseModifiers()
	switch {
	case p.at(token.KwInherit):
		return p.parseInherit(start, mods)
	case p.atStructDef():
		return p.parseStructDef(start, doc)
	}

	typ := p.parseType()
	stars := p.parseStars()

	if p.at(token.Ident) && p.peekAt(1).Kind == token.LParen {
		return p.parseFunc(start, mods, typ, stars, doc)
	}
	if typ == nil {
		p.err(diag.SynUnexpectedTopLevel, "unexpected "+p.peek().Kind.String()+" at top level")
		p.resyncTop()
		return &ast.BadDecl{Sp: p.spanFrom(start)}
	}

	decl := p.parseVarDeclTail(start, mods, typ, stars, doc)
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after variable declaration")
	decl.Sp = p.spanFrom(start)
	return decl
}

func (p *Parser) parseModifiers() []string {
	var mods []string
	for p.peek().Kind.IsModifier() {
		mods = append(mods, p.advance().Text)
	}
	return mods
}

func (p *Parser) atStructDef() bool {
	if !p.atOr(token.KwStruct, token.KwClass) {
		return false
	}
	return p.peekAt(1).Kind == token.Ident && p.peekAt(2).Kind == token.LBrace
}

// atTypeStart reports whether a type begins at the current token.
func (p *Parser) atTypeStart() bool {
	k := p.peek().Kind
	if k.IsType() {
		return true
	}
	return (k == token.KwStruct || k == token.KwClass) && p.peekAt(1).Kind == token.Ident
}

// parseType parses a base type name (`int`, `struct Point`). Array markers are left to
// the caller because they bind to each declarator. Returns nil when no type is present.
func (p *Parser) parseType() *ast.TypeRef {
	tok := p.peek()
	switch {
	case tok.Kind.IsType():
		p.advance()
		return &ast.TypeRef{Name: tok.Text, Sp: tok.Span}
	case tok.Kind == token.KwStruct || tok.Kind == token.KwClass:
		p.advance()
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected "+tok.Text+" name")
		if !ok {
			return &ast.TypeRef{Name: tok.Text, Sp: tok.Span}
		}
		return &ast.TypeRef{Name: tok.Text + " " + name.Text, Sp: tok.Span.Cover(name.Span)}
	}
	return nil
}

func (p *Parser) parseStars() int {
	n := 0
	for p.eat(token.Star) {
		n++
	}
	return n
}

// parseInherit parses `inherit REF;` keeping the reference text verbatim.
func (p *Parser) parseInherit(start uint32, mods []string) ast.Decl {
	p.advance() // inherit
	d := &ast.InheritDecl{Modifiers: mods}
	for !p.atOr(token.Semicolon, token.EOF, token.LBrace, token.RBrace) {
		tok := p.peek()
		switch tok.Kind {
		case token.StringLit:
			d.Parts = append(d.Parts, &ast.BasicLit{Sp: tok.Span, Kind: tok.Kind, Value: tok.Text})
		case token.Ident:
			d.Parts = append(d.Parts, p.ident(tok))
		case token.Plus:
		default:
			p.err(diag.SynBadInherit, "unexpected "+tok.Kind.String()+" in inherit")
			p.resyncTop()
			return &ast.BadDecl{Sp: p.spanFrom(start)}
		}
		d.RawSp = d.RawSp.Cover(tok.Span)
		p.advance()
	}
	if len(d.Parts) == 0 {
		p.err(diag.SynBadInherit, "expected inherit path")
		p.resyncTop()
		return &ast.BadDecl{Sp: p.spanFrom(start)}
	}
	d.Raw = p.text.Slice(d.RawSp)
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after inherit")
	d.Sp = p.spanFrom(start)
	return d
}

// parseVarDeclTail parses declarators after the base type and the first declarator's
// stars. The terminating ';' is left to the caller.
func (p *Parser) parseVarDeclTail(start uint32, mods []string, typ *ast.TypeRef, stars int, doc string) *ast.VarDecl {
	decl := &ast.VarDecl{Modifiers: mods, Type: typ, Doc: doc}
	for {
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected variable name")
		if !ok {
			break
		}
		d := &ast.Declarator{Name: p.ident(nameTok), Stars: stars}
		for p.at(token.LBracket) && p.peekAt(1).Kind == token.RBracket {
			p.advance()
			p.advance()
			d.Stars++
		}
		if p.eat(token.Assign) {
			d.Init = p.parseAssign()
		}
		d.Sp = p.spanFrom(nameTok.Span.Start)
		decl.Vars = append(decl.Vars, d)
		if !p.eat(token.Comma) {
			break
		}
		stars = p.parseStars()
	}
	decl.Sp = p.spanFrom(start)
	return decl
}

// parseLocalDecl parses `mods type declarators` without the trailing ';'.
func (p *Parser) parseLocalDecl() *ast.VarDecl {
	first := p.peek()
	start := first.Span.Start
	mods := p.parseModifiers()
	typ := p.parseType()
	if typ == nil {
		p.err(diag.SynExpectType, "expected type")
		typ = &ast.TypeRef{Name: "mixed", Sp: p.diagSpan()}
	}
	stars := p.parseStars()
	return p.parseVarDeclTail(start, mods, typ, stars, first.DocComment())
}

func (p *Parser) parseFunc(start uint32, mods []string, typ *ast.TypeRef, stars int, doc string) ast.Decl {
	fn := &ast.FuncDecl{
		Modifiers: mods,
		Type:      typ,
		Stars:     stars,
		Name:      p.ident(p.advance()),
		Doc:       doc,
	}
	fn.Params, fn.Varargs = p.parseParams()
	switch {
	case p.at(token.LBrace):
		fn.Body = p.parseBlock()
	case p.eat(token.Semicolon):
	default:
		p.err(diag.SynUnexpectedToken, "expected function body or ';'")
		p.resyncTop()
	}
	fn.Sp = p.spanFrom(start)
	return fn
}

// parseParams parses `( params )`. A lone `void` means no parameters.
func (p *Parser) parseParams() ([]*ast.Param, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('"); !ok {
		return nil, false
	}
	if p.at(token.KwVoid) && p.peekAt(1).Kind == token.RParen {
		p.advance()
	}
	var params []*ast.Param
	varargs := false
	for !p.atOr(token.RParen, token.EOF, token.LBrace, token.Semicolon) {
		prm := p.parseParam()
		if prm != nil {
			params = append(params, prm)
			varargs = varargs || prm.Varargs
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameters")
	return params, varargs
}

func (p *Parser) parseParam() *ast.Param {
	start := p.peek().Span.Start
	prm := &ast.Param{}
	for _, m := range p.parseModifiers() {
		if m == "varargs" {
			prm.Varargs = true
		}
	}
	p.eat(token.KwRef)
	prm.Type = p.parseType()
	if prm.Type == nil && p.at(token.Ident) && p.peekAt(1).Kind == token.Ident {
		// user type name without struct/class keyword
		tok := p.advance()
		prm.Type = &ast.TypeRef{Name: tok.Text, Sp: tok.Span}
	}
	prm.Stars = p.parseStars()
	if p.at(token.Ident) {
		prm.Name = p.ident(p.advance())
	} else if prm.Type == nil {
		p.err(diag.SynExpectIdentifier, "expected parameter")
		return nil
	}
	if p.eat(token.Ellipsis) {
		prm.Varargs = true
	}
	if p.eat(token.Colon) || p.eat(token.Assign) {
		prm.Default = p.parseAssign()
	}
	prm.Sp = p.spanFrom(start)
	return prm
}

// parseStructDef parses `struct NAME { fields };` or `class NAME { fields }`.
func (p *Parser) parseStructDef(start uint32, doc string) *ast.StructDecl {
	kw := p.advance()
	d := &ast.StructDecl{
		Keyword: kw.Text,
		Name:    p.ident(p.advance()),
		Doc:     doc,
	}
	open := p.advance() // {
	for !p.atOr(token.RBrace, token.EOF) {
		before := p.pos
		if !p.atTypeStart() {
			p.err(diag.SynExpectType, "expected member type")
			p.resyncStmt()
		} else {
			f := p.parseLocalDecl()
			p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after member")
			f.Sp = p.spanFrom(f.Sp.Start)
			d.Fields = append(d.Fields, f)
		}
		if p.pos == before {
			p.advance()
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close "+kw.Text)
	d.Body = source.Span{Start: open.Span.Start, End: p.prevEnd}
	p.eat(token.Semicolon)
	d.Sp = p.spanFrom(start)
	return d
}
