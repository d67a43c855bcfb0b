package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005

	// syntax
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynExpectSemicolon     Code = 2002
	SynExpectIdentifier    Code = 2003
	SynExpectType          Code = 2004
	SynExpectExpression    Code = 2005
	SynUnclosedParen       Code = 2006
	SynUnclosedBrace       Code = 2007
	SynUnclosedBracket     Code = 2008
	SynExpectColon         Code = 2009
	SynForeachMissingIn    Code = 2010
	SynBadInherit          Code = 2011
	SynUnexpectedTopLevel  Code = 2012
	SynUnclosedFunctionPtr Code = 2013

	// semantic
	SemaInfo            Code = 3000
	SemaError           Code = 3001
	SemaScopeMismatch   Code = 3002
	SemaInheritNotFound Code = 3003
	SemaInheritCycle    Code = 3004
	SemaUnusedVariable  Code = 3005
	SemaUnusedParameter Code = 3006
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Invalid numeric literal",
		LexUnterminatedChar:         "Unterminated character literal",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynExpectSemicolon:          "Expected ';'",
		SynExpectIdentifier:         "Expected identifier",
		SynExpectType:               "Expected type",
		SynExpectExpression:         "Expected expression",
		SynUnclosedParen:            "Unclosed parenthesis",
		SynUnclosedBrace:            "Unclosed brace",
		SynUnclosedBracket:          "Unclosed bracket",
		SynExpectColon:              "Expected ':'",
		SynForeachMissingIn:         "Expected 'in' in foreach header",
		SynBadInherit:               "Malformed inherit statement",
		SynUnexpectedTopLevel:       "Unexpected token at top level",
		SynUnclosedFunctionPtr:      "Unclosed function pointer literal",
		SemaInfo:                    "Semantic information",
		SemaError:                   "Semantic error",
		SemaScopeMismatch:           "Scope stack mismatch",
		SemaInheritNotFound:         "Inherited file not found",
		SemaInheritCycle:            "Inheritance cycle",
		SemaUnusedVariable:          "Unused local variable",
		SemaUnusedParameter:         "Unused parameter",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
