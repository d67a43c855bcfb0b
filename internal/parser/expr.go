package parser

import (
	"lpcls/internal/ast"
	"lpcls/internal/diag"
	"lpcls/internal/token"
)

// parseComma parses `a, b, c`; a single element is returned unwrapped.
func (p *Parser) parseComma() ast.Expr {
	x := p.parseAssign()
	if !p.at(token.Comma) {
		return x
	}
	list := &ast.CommaExpr{Elems: []ast.Expr{x}}
	for p.eat(token.Comma) {
		list.Elems = append(list.Elems, p.parseAssign())
	}
	list.Sp = p.spanFrom(x.Span().Start)
	return list
}

func (p *Parser) parseAssign() ast.Expr {
	lhs := p.parseTernary()
	if !p.peek().IsAssign() {
		return lhs
	}
	op := p.advance().Kind
	rhs := p.parseAssign()
	return &ast.AssignExpr{Op: op, Lhs: lhs, Rhs: rhs, Sp: p.spanFrom(lhs.Span().Start)}
}

func (p *Parser) parseTernary() ast.Expr {
	cond := p.parseBinary(precLogicalOr)
	if !p.eat(token.Question) {
		return cond
	}
	then := p.parseAssign()
	p.expect(token.Colon, diag.SynExpectColon, "expected ':' in conditional expression")
	els := p.parseAssign()
	return &ast.CondExpr{Cond: cond, Then: then, Else: els, Sp: p.spanFrom(cond.Span().Start)}
}

// parseBinary is precedence climbing over left-associative operators.
func (p *Parser) parseBinary(minPrec int) ast.Expr {
	x := p.parseUnary()
	for {
		prec := binaryPrec(p.peek().Kind)
		if prec < minPrec {
			return x
		}
		op := p.advance().Kind
		y := p.parseBinary(prec + 1)
		x = &ast.BinaryExpr{Op: op, X: x, Y: y, Sp: p.spanFrom(x.Span().Start)}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	tok := p.peek()
	start := tok.Span.Start
	switch tok.Kind {
	case token.Bang, token.Tilde, token.Minus, token.Plus, token.Inc, token.Dec:
		p.advance()
		x := p.parseUnary()
		return &ast.UnaryExpr{Op: tok.Kind, X: x, Sp: p.spanFrom(start)}
	case token.Amp, token.KwRef:
		p.advance()
		x := p.parseUnary()
		return &ast.RefExpr{X: x, Sp: p.spanFrom(start)}
	case token.LParen:
		if p.castLen() > 0 {
			p.advance()
			typ := p.parseType()
			typ.Stars = p.parseStars()
			p.advance() // )
			x := p.parseUnary()
			return &ast.CastExpr{Type: typ, X: x, Sp: p.spanFrom(start)}
		}
	}
	return p.parsePostfix(p.parsePrimary())
}

// castLen reports the token length of a `(type *)` prefix, or 0 if none starts here.
func (p *Parser) castLen() int {
	i := 1
	k := p.peekAt(i).Kind
	switch {
	case k.IsType():
		i++
	case k == token.KwStruct || k == token.KwClass:
		if p.peekAt(i+1).Kind != token.Ident {
			return 0
		}
		i += 2
	default:
		return 0
	}
	for p.peekAt(i).Kind == token.Star {
		i++
	}
	if p.peekAt(i).Kind != token.RParen {
		return 0
	}
	return i + 1
}

func (p *Parser) parsePostfix(x ast.Expr) ast.Expr {
	start := x.Span().Start
	for {
		switch p.peek().Kind {
		case token.LParen:
			p.advance()
			args := p.parseArgs(token.RParen)
			p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after arguments")
			x = &ast.CallExpr{Fun: x, Args: args, Sp: p.spanFrom(start)}
		case token.LBracket:
			x = p.parseIndex(x, start)
		case token.Arrow, token.Dot:
			op := p.advance().Kind
			sel := p.peek()
			if sel.Kind != token.Ident && !sel.Kind.IsKeyword() {
				p.err(diag.SynExpectIdentifier, "expected member name")
				return &ast.MemberExpr{X: x, Op: op, Sp: p.spanFrom(start)}
			}
			p.advance()
			x = &ast.MemberExpr{X: x, Op: op, Sel: p.ident(sel), Sp: p.spanFrom(start)}
		case token.Inc, token.Dec:
			op := p.advance().Kind
			x = &ast.UnaryExpr{Op: op, X: x, Postfix: true, Sp: p.spanFrom(start)}
		default:
			return x
		}
	}
}

// parseArgs parses a comma-separated list up to (not including) end. Trailing commas
// and `arg...` spreads are accepted.
func (p *Parser) parseArgs(end token.Kind) []ast.Expr {
	var args []ast.Expr
	for !p.atOr(end, token.EOF, token.Semicolon) {
		a := p.parseAssign()
		if p.at(token.Ellipsis) {
			p.advance()
			a = &ast.SpreadExpr{X: a, Sp: p.spanFrom(a.Span().Start)}
		}
		args = append(args, a)
		if _, bad := a.(*ast.BadExpr); bad {
			break
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	return args
}

func (p *Parser) parseIndex(x ast.Expr, start uint32) ast.Expr {
	p.advance() // [
	ix := &ast.IndexExpr{X: x}
	ix.FromEnd = p.eat(token.Lt)
	if !p.at(token.DotDot) {
		ix.Index = p.parseComma()
	}
	if p.eat(token.DotDot) {
		ix.IsRange = true
		p.eat(token.Lt)
		if !p.at(token.RBracket) {
			ix.Hi = p.parseComma()
		}
	}
	p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'")
	ix.Sp = p.spanFrom(start)
	return ix
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	start := tok.Span.Start
	switch tok.Kind {
	case token.Ident:
		p.advance()
		if p.at(token.ColonColon) {
			p.advance()
			return p.parseScoped(start, tok.Text)
		}
		return p.ident(tok)
	case token.ColonColon:
		p.advance()
		return p.parseScoped(start, "")
	case token.KwEfun:
		p.advance()
		if p.eat(token.ColonColon) {
			return p.parseScoped(start, "efun")
		}
		return p.ident(tok)
	case token.IntLit, token.FloatLit, token.CharLit:
		p.advance()
		return &ast.BasicLit{Kind: tok.Kind, Value: tok.Text, Sp: tok.Span}
	case token.StringLit:
		p.advance()
		lit := &ast.BasicLit{Kind: tok.Kind, Value: tok.Text, Sp: tok.Span}
		for p.at(token.StringLit) {
			next := p.advance()
			lit.Value += " " + next.Text
			lit.Sp = lit.Sp.Cover(next.Span)
		}
		return lit
	case token.LParen:
		switch p.peekAt(1).Kind {
		case token.LBrace:
			return p.parseArrayLit()
		case token.LBracket:
			return p.parseMappingLit()
		}
		p.advance()
		x := p.parseComma()
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		return &ast.ParenExpr{X: x, Sp: p.spanFrom(start)}
	case token.FuncPtrOpen:
		p.advance()
		fp := &ast.FuncPtrLit{Exprs: p.parseArgs(token.FuncPtrClose)}
		p.expect(token.FuncPtrClose, diag.SynUnclosedFunctionPtr, "expected ':)'")
		fp.Sp = p.spanFrom(start)
		return fp
	case token.KwFunction:
		if p.peekAt(1).Kind == token.LParen {
			return p.parseClosure()
		}
	case token.KwCatch:
		p.advance()
		c := &ast.CatchExpr{}
		if p.at(token.LBrace) {
			c.Block = p.parseBlock()
		} else {
			p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after catch")
			c.X = p.parseComma()
			p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		}
		c.Sp = p.spanFrom(start)
		return c
	case token.KwNew:
		return p.parseNew()
	}

	p.err(diag.SynExpectExpression, "expected expression, got "+tok.Kind.String())
	if !p.atOr(token.Semicolon, token.RParen, token.RBrace, token.RBracket, token.Comma, token.EOF, token.FuncPtrClose) {
		p.advance()
	}
	return &ast.BadExpr{Sp: p.spanFrom(start)}
}

func (p *Parser) parseScoped(start uint32, qualifier string) ast.Expr {
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name after '::'")
	s := &ast.ScopedIdent{Qualifier: qualifier}
	if ok {
		s.Name = p.ident(nameTok)
	}
	s.Sp = p.spanFrom(start)
	return s
}

func (p *Parser) parseArrayLit() ast.Expr {
	start := p.advance().Span.Start // (
	p.advance()                     // {
	lit := &ast.ArrayLit{Elems: p.parseArgs(token.RBrace)}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '})' to close array")
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close array")
	lit.Sp = p.spanFrom(start)
	return lit
}

func (p *Parser) parseMappingLit() ast.Expr {
	start := p.advance().Span.Start // (
	p.advance()                     // [
	lit := &ast.MappingLit{}
	for !p.atOr(token.RBracket, token.EOF, token.Semicolon) {
		key := p.parseAssign()
		kv := ast.KeyValue{Key: key}
		if p.eat(token.Colon) {
			kv.Value = p.parseAssign()
			// multi-value mappings: k: v1; v2
			for p.at(token.Semicolon) && p.peekAt(1).Kind != token.RBracket {
				p.advance()
				p.parseAssign()
			}
		}
		lit.Entries = append(lit.Entries, kv)
		if _, bad := key.(*ast.BadExpr); bad {
			break
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBracket, diag.SynUnclosedBracket, "expected '])' to close mapping")
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close mapping")
	lit.Sp = p.spanFrom(start)
	return lit
}

func (p *Parser) parseClosure() ast.Expr {
	start := p.advance().Span.Start // function
	c := &ast.Closure{}
	c.Params, _ = p.parseParams()
	if p.at(token.LBrace) {
		c.Body = p.parseBlock()
	} else {
		p.err(diag.SynUnexpectedToken, "expected closure body")
	}
	c.Sp = p.spanFrom(start)
	return c
}

// parseNew parses `new(class X)`, `new(class X, field: value)` and `new(path)`.
func (p *Parser) parseNew() ast.Expr {
	start := p.advance().Span.Start
	n := &ast.NewExpr{}
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after new")
	if p.atOr(token.KwClass, token.KwStruct) {
		n.Type = p.parseType()
		if !p.eat(token.Comma) {
			p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
			n.Sp = p.spanFrom(start)
			return n
		}
	}
	for !p.atOr(token.RParen, token.EOF, token.Semicolon) {
		a := p.parseAssign()
		if p.eat(token.Colon) {
			a = p.parseAssign()
		}
		n.Args = append(n.Args, a)
		if _, bad := a.(*ast.BadExpr); bad || !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
	n.Sp = p.spanFrom(start)
	return n
}
