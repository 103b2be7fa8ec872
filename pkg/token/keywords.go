package token

var keywords = map[string]Kind{
	"const":      Const,
	"let":        Let,
	"var":        Var,
	"function":   Function,
	"return":     Return,
	"yield":      Yield,
	"if":         If,
	"else":       Else,
	"switch":     Switch,
	"case":       Case,
	"break":      Break,
	"continue":   Continue,
	"default":    Default,
	"for":        For,
	"while":      While,
	"do":         Do,
	"try":        Try,
	"catch":      Catch,
	"finally":    Finally,
	"throw":      Throw,
	"class":      Class,
	"extends":    Extends,
	"super":      Super,
	"this":       This,
	"new":        New,
	"import":     Import,
	"export":     Export,
	"from":       From,
	"as":         As,
	"async":      Async,
	"await":      Await,
	"with":       With,
	"in":         In,
	"of":         Of,
	"instanceof": InstanceOf,
	"typeof":     Typeof,
	"delete":     Delete,
	"void":       Void,
	"true":       True,
	"false":      False,
	"null":       Null,
	"undefined":  Undefined,
}

// LookupIdent maps an identifier lexeme to its keyword kind, or Identifier.
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return Identifier
}

// IsKeyword reports whether the lexeme is reserved.
func IsKeyword(ident string) bool {
	_, ok := keywords[ident]
	return ok
}
