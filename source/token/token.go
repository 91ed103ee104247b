package token

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Structure
	DOT       = "."
	COMMA     = ","
	SEMICOLON = ";"

	LPAREN = "("
	RPAREN = ")"
	LBRACE = "{"
	RBRACE = "}"
	LBRACK = "["
	RBRACK = "]"

	// Literals. The numeric token types are spelled the way the suffixes are, so that
	// the lexer can use them directly.
	TOP = "T"

	I8   = "i8"
	U8   = "u8"
	I16  = "i16"
	U16  = "u16"
	I32  = "i32"
	U32  = "u32"
	I64  = "i64"
	U64  = "u64"
	I128 = "i128"
	U128 = "u128"
	F32  = "f32"
	F64  = "f64"

	STRING   = "string"
	SYMBOL   = "symbol"
	ARGUMENT = "ARGUMENT" // #0, #1, ...
	LABEL    = "LABEL"    // anything else: variable names and verbs
)

// The numeric suffixes, longest first so that suffix matching is unambiguous.
var NUMERIC_SUFFIXES = []TokenType{I128, U128, I16, U16, I32, U32, I64, U64, F32, F64, I8, U8}

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	ChStart int
	ChEnd   int
	Source  string
}

func (t Token) String() string {
	switch t.Type {
	case STRING:
		return "\"" + t.Literal + "\""
	case SYMBOL:
		return "'" + t.Literal
	case ARGUMENT:
		return "#" + t.Literal
	}
	if TokenTypeIsNumeric(t.Type) && t.Type != I32 {
		return t.Literal + string(t.Type)
	}
	return t.Literal
}

func TokenTypeIsNumeric(t TokenType) bool {
	for _, ty := range NUMERIC_SUFFIXES {
		if t == ty {
			return true
		}
	}
	return false
}

// Returns the matching closing delimiter, or "" if t doesn't open a group.
func Closer(t TokenType) TokenType {
	switch t {
	case LPAREN:
		return RPAREN
	case LBRACE:
		return RBRACE
	case LBRACK:
		return RBRACK
	}
	return ""
}
