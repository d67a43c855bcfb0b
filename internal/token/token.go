package token

import (
	"lpcls/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, character or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, CharLit:
		return true
	default:
		return false
	}
}

// IsTypeKeyword reports whether the token names a built-in type.
func (t Token) IsTypeKeyword() bool {
	return t.Kind.IsType()
}

// IsModifier reports whether the token is a declaration modifier.
func (t Token) IsModifier() bool {
	return t.Kind.IsModifier()
}

// IsAssign reports whether the token is '=' or a compound assignment.
func (t Token) IsAssign() bool {
	return t.Kind >= Assign && t.Kind <= ShrAssign
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsType reports whether k is a built-in type keyword (struct/class excluded).
func (k Kind) IsType() bool {
	return k >= KwInt && k <= KwStatus
}

// IsModifier reports whether k is a declaration modifier.
func (k Kind) IsModifier() bool {
	return k >= KwPrivate && k <= KwNosave
}

// IsKeyword reports whether k is any reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwInt && k <= KwEfun
}

// DocComment returns the text of the last /** ... */ block in the leading trivia,
// stripped of comment markers and leading asterisks.
func (t Token) DocComment() string {
	for i := len(t.Leading) - 1; i >= 0; i-- {
		tr := t.Leading[i]
		switch tr.Kind {
		case TriviaSpace, TriviaNewline:
			continue
		case TriviaDocBlock:
			return cleanDocBlock(tr.Text)
		}
		return ""
	}
	return ""
}
