package values

import (
	"strings"
)

type Kind uint8

const (
	ANY Kind = iota // Only ever an expected parameter type, never the type of a value.
	BOOL
	I8_T
	U8_T
	I16_T
	U16_T
	I32_T
	U32_T
	I64_T
	U64_T
	I128_T
	U128_T
	F32_T
	F64_T
	STRING_T
	SYMBOL_T
	ARRAY_T
	LAZY_T
	FUNCTION_T // Params holds the signature.
	USER_T     // Name holds the name of the type.
)

var kindNames = map[Kind]string{
	ANY: "_", BOOL: "bool", I8_T: "i8", U8_T: "u8", I16_T: "i16", U16_T: "u16", I32_T: "i32",
	U32_T: "u32", I64_T: "i64", U64_T: "u64", I128_T: "i128", U128_T: "u128", F32_T: "f32",
	F64_T: "f64", STRING_T: "string", SYMBOL_T: "symbol", ARRAY_T: "[]", LAZY_T: "{}",
}

// A TypeId identifies a type. Equality is structural: two function types are the same if
// their signatures are.
type TypeId struct {
	Kind   Kind
	Name   string
	Params []TypeId
}

var (
	ANY_TYPE    = TypeId{Kind: ANY}
	BOOL_TYPE   = TypeId{Kind: BOOL}
	I8_TYPE     = TypeId{Kind: I8_T}
	U8_TYPE     = TypeId{Kind: U8_T}
	I16_TYPE    = TypeId{Kind: I16_T}
	U16_TYPE    = TypeId{Kind: U16_T}
	I32_TYPE    = TypeId{Kind: I32_T}
	U32_TYPE    = TypeId{Kind: U32_T}
	I64_TYPE    = TypeId{Kind: I64_T}
	U64_TYPE    = TypeId{Kind: U64_T}
	I128_TYPE   = TypeId{Kind: I128_T}
	U128_TYPE   = TypeId{Kind: U128_T}
	F32_TYPE    = TypeId{Kind: F32_T}
	F64_TYPE    = TypeId{Kind: F64_T}
	STRING_TYPE = TypeId{Kind: STRING_T}
	SYMBOL_TYPE = TypeId{Kind: SYMBOL_T}
	ARRAY_TYPE  = TypeId{Kind: ARRAY_T}
	LAZY_TYPE   = TypeId{Kind: LAZY_T}
)

var NUMERIC_TYPES = []TypeId{I8_TYPE, U8_TYPE, I16_TYPE, U16_TYPE, I32_TYPE, U32_TYPE, I64_TYPE,
	U64_TYPE, I128_TYPE, U128_TYPE, F32_TYPE, F64_TYPE}

var INTEGER_TYPES = NUMERIC_TYPES[:10]

// The types with a builtin table of their own.
var PRIMITIVE_TYPES = append(append([]TypeId{BOOL_TYPE}, NUMERIC_TYPES...), STRING_TYPE, SYMBOL_TYPE,
	ARRAY_TYPE, LAZY_TYPE)

func FunctionType(params []TypeId) TypeId {
	return TypeId{Kind: FUNCTION_T, Params: params}
}

func UserType(name string) TypeId {
	return TypeId{Kind: USER_T, Name: name}
}

func (t TypeId) String() string {
	switch t.Kind {
	case FUNCTION_T:
		names := make([]string, len(t.Params))
		for i, p := range t.Params {
			names[i] = p.String()
		}
		return "fn[" + strings.Join(names, " ") + "]"
	case USER_T:
		return t.Name
	}
	return kindNames[t.Kind]
}

// The key the type's verbs are filed under. A user type can't share a key with a builtin
// type, whatever it's called.
func (t TypeId) Key() string {
	if t.Kind == USER_T {
		return "&" + t.Name
	}
	return t.String()
}

func (t TypeId) Equal(u TypeId) bool {
	if t.Kind != u.Kind || t.Name != u.Name || len(t.Params) != len(u.Params) {
		return false
	}
	for i := range t.Params {
		if !t.Params[i].Equal(u.Params[i]) {
			return false
		}
	}
	return true
}

// Whether a value of type u can be supplied where t is expected.
func (t TypeId) Accepts(u TypeId) bool {
	return t.Kind == ANY || t.Equal(u)
}

func (t TypeId) IsNumeric() bool {
	return I8_T <= t.Kind && t.Kind <= F64_T
}

// Finds the builtin type with the given name, including the wildcard _.
func PrimitiveTypeNamed(name string) (TypeId, bool) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return TypeId{Kind: kind}, true
		}
	}
	return TypeId{}, false
}
