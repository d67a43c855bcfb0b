package lexer

import (
	"lpcls/internal/diag"
	"lpcls/internal/token"
)

// scanNumber handles 123, 0x1F, 0b101, 1.5, .5, 1e3 and 1_000. A '.' followed by
// another '.' ends the integer so that "1..3" lexes as a range.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			lx.cursor.Off += 2
			n := lx.eatWhile(func(b byte) bool { return isHex(b) || b == '_' })
			return lx.finishNumber(start, kind, n == 0)
		case 'b', 'B':
			lx.cursor.Off += 2
			n := lx.eatWhile(func(b byte) bool { return b == '0' || b == '1' || b == '_' })
			return lx.finishNumber(start, kind, n == 0)
		}
	}

	lx.eatDigits()
	if lx.cursor.Peek() == '.' && lx.cursor.PeekAt(1) != '.' {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.eatDigits()
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		m := lx.cursor.Mark()
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if lx.eatDigits() == 0 {
			lx.cursor.Reset(m)
		} else {
			kind = token.FloatLit
		}
	}
	return lx.finishNumber(start, kind, false)
}

func (lx *Lexer) finishNumber(start Mark, kind token.Kind, bad bool) token.Token {
	sp := lx.cursor.SpanFrom(start)
	if bad || isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp = lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "invalid numeric literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.slice(sp)}
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.slice(sp)}
}

func (lx *Lexer) eatDigits() int {
	return lx.eatWhile(func(b byte) bool { return isDec(b) || b == '_' })
}

func (lx *Lexer) eatWhile(pred func(byte) bool) int {
	n := 0
	for !lx.cursor.EOF() && pred(lx.cursor.Peek()) {
		lx.cursor.Bump()
		n++
	}
	return n
}
