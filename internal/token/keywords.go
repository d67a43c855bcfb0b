package token

var keywords = map[string]Kind{
	"int":       KwInt,
	"float":     KwFloat,
	"string":    KwString,
	"object":    KwObject,
	"mapping":   KwMapping,
	"mixed":     KwMixed,
	"void":      KwVoid,
	"buffer":    KwBuffer,
	"function":  KwFunction,
	"status":    KwStatus,
	"struct":    KwStruct,
	"class":     KwClass,
	"private":   KwPrivate,
	"protected": KwProtected,
	"public":    KwPublic,
	"static":    KwStatic,
	"nomask":    KwNomask,
	"varargs":   KwVarargs,
	"nosave":    KwNosave,
	"inherit":   KwInherit,
	"if":        KwIf,
	"else":      KwElse,
	"while":     KwWhile,
	"do":        KwDo,
	"for":       KwFor,
	"foreach":   KwForeach,
	"in":        KwIn,
	"switch":    KwSwitch,
	"case":      KwCase,
	"default":   KwDefault,
	"break":     KwBreak,
	"continue":  KwContinue,
	"return":    KwReturn,
	"catch":     KwCatch,
	"new":       KwNew,
	"ref":       KwRef,
	"efun":      KwEfun,
}

// LookupKeyword reports the keyword kind for ident. Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
