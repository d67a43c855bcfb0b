package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	IntLit
	FloatLit
	StringLit
	CharLit

	// type keywords
	KwInt
	KwFloat
	KwString
	KwObject
	KwMapping
	KwMixed
	KwVoid
	KwBuffer
	KwFunction
	KwStatus
	KwStruct
	KwClass

	// modifiers
	KwPrivate
	KwProtected
	KwPublic
	KwStatic
	KwNomask
	KwVarargs
	KwNosave

	// statements and misc keywords
	KwInherit
	KwIf
	KwElse
	KwWhile
	KwDo
	KwFor
	KwForeach
	KwIn
	KwSwitch
	KwCase
	KwDefault
	KwBreak
	KwContinue
	KwReturn
	KwCatch
	KwNew
	KwRef
	KwEfun

	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	FuncPtrOpen  // (:
	FuncPtrClose // :)
	Semicolon
	Comma
	Colon
	ColonColon
	Dot
	DotDot
	Ellipsis
	Arrow
	Question

	Assign
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	AmpAssign
	PipeAssign
	CaretAssign
	ShlAssign
	ShrAssign

	Plus
	Minus
	Star
	Slash
	Percent
	Inc
	Dec
	EqEq
	BangEq
	Lt
	LtEq
	Gt
	GtEq
	AndAnd
	OrOr
	Bang
	Tilde
	Amp
	Pipe
	Caret
	Shl
	Shr
)

var kindNames = [...]string{
	Invalid:       "invalid",
	EOF:           "end of file",
	Ident:         "identifier",
	IntLit:        "integer literal",
	FloatLit:      "float literal",
	StringLit:     "string literal",
	CharLit:       "character literal",
	KwInt:         "int",
	KwFloat:       "float",
	KwString:      "string",
	KwObject:      "object",
	KwMapping:     "mapping",
	KwMixed:       "mixed",
	KwVoid:        "void",
	KwBuffer:      "buffer",
	KwFunction:    "function",
	KwStatus:      "status",
	KwStruct:      "struct",
	KwClass:       "class",
	KwPrivate:     "private",
	KwProtected:   "protected",
	KwPublic:      "public",
	KwStatic:      "static",
	KwNomask:      "nomask",
	KwVarargs:     "varargs",
	KwNosave:      "nosave",
	KwInherit:     "inherit",
	KwIf:          "if",
	KwElse:        "else",
	KwWhile:       "while",
	KwDo:          "do",
	KwFor:         "for",
	KwForeach:     "foreach",
	KwIn:          "in",
	KwSwitch:      "switch",
	KwCase:        "case",
	KwDefault:     "default",
	KwBreak:       "break",
	KwContinue:    "continue",
	KwReturn:      "return",
	KwCatch:       "catch",
	KwNew:         "new",
	KwRef:         "ref",
	KwEfun:        "efun",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
	FuncPtrOpen:   "(:",
	FuncPtrClose:  ":)",
	Semicolon:     ";",
	Comma:         ",",
	Colon:         ":",
	ColonColon:    "::",
	Dot:           ".",
	DotDot:        "..",
	Ellipsis:      "...",
	Arrow:         "->",
	Question:      "?",
	Assign:        "=",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	AmpAssign:     "&=",
	PipeAssign:    "|=",
	CaretAssign:   "^=",
	ShlAssign:     "<<=",
	ShrAssign:     ">>=",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Inc:           "++",
	Dec:           "--",
	EqEq:          "==",
	BangEq:        "!=",
	Lt:            "<",
	LtEq:          "<=",
	Gt:            ">",
	GtEq:          ">=",
	AndAnd:        "&&",
	OrOr:          "||",
	Bang:          "!",
	Tilde:         "~",
	Amp:           "&",
	Pipe:          "|",
	Caret:         "^",
	Shl:           "<<",
	Shr:           ">>",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}
