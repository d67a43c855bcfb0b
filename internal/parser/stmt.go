package parser

import (
	"lpcls/internal/ast"
	"lpcls/internal/diag"
	"lpcls/internal/token"
)

func (p *Parser) parseBlock() *ast.Block {
	open, _ := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	b := &ast.Block{}
	for !p.atOr(token.RBrace, token.EOF) {
		before := p.pos
		if s := p.parseStmt(); s != nil {
			b.Stmts = append(b.Stmts, s)
		}
		if p.pos == before {
			p.advance()
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}'")
	b.Sp = p.spanFrom(open.Span.Start)
	return b
}

// atDeclStart reports whether a local variable declaration begins here.
func (p *Parser) atDeclStart() bool {
	k := p.peek().Kind
	switch {
	case k.IsModifier():
		return true
	case k == token.KwFunction:
		return p.peekAt(1).Kind != token.LParen
	case k.IsType():
		return true
	case k == token.KwStruct || k == token.KwClass:
		return p.peekAt(1).Kind == token.Ident
	}
	return false
}

func (p *Parser) parseStmt() ast.Stmt {
	tok := p.peek()
	start := tok.Span.Start
	switch tok.Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		p.advance()
		return &ast.EmptyStmt{Sp: tok.Span}
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		p.advance()
		s := &ast.WhileStmt{}
		s.Cond = p.parseParenCond()
		s.Body = p.parseBody()
		s.Sp = p.spanFrom(start)
		return s
	case token.KwDo:
		p.advance()
		s := &ast.DoStmt{}
		s.Body = p.parseBody()
		p.expect(token.KwWhile, diag.SynUnexpectedToken, "expected 'while' after do body")
		s.Cond = p.parseParenCond()
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after do-while")
		s.Sp = p.spanFrom(start)
		return s
	case token.KwFor:
		return p.parseFor()
	case token.KwForeach:
		return p.parseForeach()
	case token.KwSwitch:
		p.advance()
		s := &ast.SwitchStmt{}
		s.Tag = p.parseParenCond()
		s.Body = p.parseBlock()
		s.Sp = p.spanFrom(start)
		return s
	case token.KwCase:
		p.advance()
		c := &ast.CaseClause{}
		if !p.at(token.DotDot) {
			c.Value = p.parseBinary(precLogicalOr)
		}
		if p.eat(token.DotDot) && !p.at(token.Colon) {
			c.Hi = p.parseBinary(precLogicalOr)
		}
		p.expect(token.Colon, diag.SynExpectColon, "expected ':' after case")
		c.Sp = p.spanFrom(start)
		return c
	case token.KwDefault:
		p.advance()
		p.expect(token.Colon, diag.SynExpectColon, "expected ':' after default")
		return &ast.DefaultClause{Sp: p.spanFrom(start)}
	case token.KwReturn:
		p.advance()
		s := &ast.ReturnStmt{}
		if !p.at(token.Semicolon) {
			s.Result = p.parseComma()
		}
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after return")
		s.Sp = p.spanFrom(start)
		return s
	case token.KwBreak:
		p.advance()
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after break")
		return &ast.BreakStmt{Sp: p.spanFrom(start)}
	case token.KwContinue:
		p.advance()
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after continue")
		return &ast.ContinueStmt{Sp: p.spanFrom(start)}
	}

	if p.atStructDef() {
		return p.parseStructDef(start, tok.DocComment())
	}
	if p.atDeclStart() {
		d := p.parseLocalDecl()
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after variable declaration")
		d.Sp = p.spanFrom(start)
		return d
	}

	x := p.parseComma()
	if _, bad := x.(*ast.BadExpr); bad {
		p.resyncStmt()
		return &ast.BadStmt{Sp: p.spanFrom(start)}
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after expression")
	return &ast.ExprStmt{X: x}
}

// parseBody parses a loop or branch body; a missing body yields a BadStmt.
func (p *Parser) parseBody() ast.Stmt {
	if p.atOr(token.EOF, token.RBrace) {
		p.err(diag.SynUnexpectedToken, "expected statement")
		return &ast.BadStmt{Sp: p.diagSpan()}
	}
	return p.parseStmt()
}

func (p *Parser) parseParenCond() ast.Expr {
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('")
	x := p.parseComma()
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
	return x
}

func (p *Parser) parseIf() ast.Stmt {
	start := p.advance().Span.Start
	s := &ast.IfStmt{}
	s.Cond = p.parseParenCond()
	s.Then = p.parseBody()
	if p.eat(token.KwElse) {
		s.Else = p.parseBody()
	}
	s.Sp = p.spanFrom(start)
	return s
}

func (p *Parser) parseFor() ast.Stmt {
	start := p.advance().Span.Start
	s := &ast.ForStmt{}
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after for")
	if !p.at(token.Semicolon) {
		if p.atDeclStart() {
			s.Init = p.parseLocalDecl()
		} else {
			s.Init = &ast.ExprStmt{X: p.parseComma()}
		}
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' in for header")
	if !p.at(token.Semicolon) {
		s.Cond = p.parseComma()
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' in for header")
	if !p.at(token.RParen) {
		s.Post = p.parseComma()
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after for header")
	s.Body = p.parseBody()
	s.Sp = p.spanFrom(start)
	return s
}

// parseForeach parses `foreach (vars in coll) body`; ':' is accepted in place of `in`.
func (p *Parser) parseForeach() ast.Stmt {
	start := p.advance().Span.Start
	s := &ast.ForeachStmt{}
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after foreach")
	for {
		p.eat(token.KwRef)
		v := &ast.ForeachVar{Type: p.parseType()}
		v.Stars = p.parseStars()
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected loop variable")
		if !ok {
			break
		}
		v.Name = p.ident(nameTok)
		s.Vars = append(s.Vars, v)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.eat(token.KwIn) && !p.eat(token.Colon) {
		p.err(diag.SynForeachMissingIn, "expected 'in' in foreach")
	}
	if !p.at(token.RParen) {
		s.Coll = p.parseComma()
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after foreach header")
	s.Body = p.parseBody()
	s.Sp = p.spanFrom(start)
	return s
}
