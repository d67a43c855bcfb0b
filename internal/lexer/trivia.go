package lexer

import (
	"lpcls/internal/diag"
	"lpcls/internal/token"
)

// collectLeadingTrivia gathers whitespace, comments and preprocessor lines
// preceding the next significant token.
//   - runs of ' ', '\t', '\r', '\f' coalesce into one TriviaSpace
//   - runs of '\n' coalesce into one TriviaNewline
//   - '#' at line start runs to the end of line, honoring '\' continuations
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case isSpace(b):
			for isSpace(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue
		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
			continue
		case b == '#' && lx.cursor.AtLineStart():
			lx.scanDirective()
			lx.pushTrivia(token.TriviaDirective, start)
			continue
		case b == '/':
			if lx.scanComment() {
				continue
			}
		}
		break
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\f'
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.slice(sp)})
}

func (lx *Lexer) scanDirective() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\\' && lx.cursor.PeekAt(1) == '\n' {
			lx.cursor.Off += 2
			continue
		}
		if b == '\n' {
			return
		}
		lx.cursor.Bump()
	}
}

// scanComment consumes // and /* */ comments. Block comments do not nest.
func (lx *Lexer) scanComment() bool {
	start := lx.cursor.Mark()
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' {
		return false
	}
	switch b1 {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.pushTrivia(token.TriviaLineComment, start)
		return true
	case '*':
		lx.cursor.Off += 2
		kind := token.TriviaBlockComment
		// "/**/" is an empty block, not a doc comment
		if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) != '/' {
			kind = token.TriviaDocBlock
		}
		closed := false
		for !lx.cursor.EOF() {
			if lx.try2('*', '/') {
				closed = true
				break
			}
			lx.cursor.Bump()
		}
		if !closed {
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		}
		lx.pushTrivia(kind, start)
		return true
	}
	return false
}
