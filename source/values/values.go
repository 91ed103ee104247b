package values

import (
	"github.com/parlance-lang/parlance/source/token"

	"src.elv.sh/pkg/persistent/vector"
)

type ValueType uint32

const (
	UNDEFINED_VALUE ValueType = iota // For debugging purposes, it is useful to have the zero value something it should never actually be.
	LABEL                            // An identifier the evaluator hasn't resolved yet. Never a runtime value.
	NIL
	TOP
	I8
	U8
	I16
	U16
	I32
	U32
	I64
	U64
	I128
	U128
	F32
	F64
	STRING
	SYMBOL
	ARRAY
	LAZY
	FUNCTION
	USER_TYPE
)

// The V field holds, according to T: nothing for NIL and TOP; the Go integer or float of
// the same width for the numeric types, except that I128 holds an Int128 and U128 a
// uint128.Uint128; a string for STRING, SYMBOL and LABEL; a vector.Vector of Values for
// ARRAY; a Lazy, Function or *Instance for the rest.
type Value struct {
	T ValueType
	V any
}

// An unevaluated block. The tokens are shared and must never be modified.
type Lazy struct {
	Tokens []token.Token
}

type Function struct {
	Type TypeId // Always of kind FUNCTION_T.
	Body Lazy
}

type Instance struct {
	Name   string
	Fields Fields
}

type Field struct {
	Private bool
	Mutable bool
	Value   Value
}

var (
	NIL_VALUE = Value{T: NIL}
	TOP_VALUE = Value{T: TOP}
)

func Bool(b bool) Value {
	if b {
		return TOP_VALUE
	}
	return NIL_VALUE
}

func String(s string) Value {
	return Value{STRING, s}
}

func Symbol(s string) Value {
	return Value{SYMBOL, s}
}

func Array(elements ...Value) Value {
	vec := vector.Empty
	for _, e := range elements {
		vec = vec.Conj(e)
	}
	return Value{ARRAY, vec}
}

func U32Value(u uint32) Value {
	return Value{U32, u}
}

func I32Value(i int32) Value {
	return Value{I32, i}
}

func (v Value) IsNil() bool {
	return v.T == NIL
}

func (v Value) Elements() []Value {
	vec := v.V.(vector.Vector)
	result := make([]Value, 0, vec.Len())
	for it := vec.Iterator(); it.HasElem(); it.Next() {
		result = append(result, it.Elem().(Value))
	}
	return result
}

var typeIdOfValueType = map[ValueType]TypeId{
	NIL: BOOL_TYPE, TOP: BOOL_TYPE, I8: I8_TYPE, U8: U8_TYPE, I16: I16_TYPE, U16: U16_TYPE,
	I32: I32_TYPE, U32: U32_TYPE, I64: I64_TYPE, U64: U64_TYPE, I128: I128_TYPE, U128: U128_TYPE,
	F32: F32_TYPE, F64: F64_TYPE, STRING: STRING_TYPE, SYMBOL: SYMBOL_TYPE, ARRAY: ARRAY_TYPE,
	LAZY: LAZY_TYPE,
}

// The type that the value's verbs are looked up under.
func (v Value) TypeId() TypeId {
	switch v.T {
	case LABEL:
		panic("tried to get the type of label " + v.V.(string) + ".")
	case FUNCTION:
		return v.V.(Function).Type
	case USER_TYPE:
		return UserType(v.V.(*Instance).Name)
	}
	ty, ok := typeIdOfValueType[v.T]
	if !ok {
		panic("tried to get the type of an undefined value.")
	}
	return ty
}

// Converts a literal token to the value it denotes. The lexer has already checked that
// numeric literals are in range.
func FromToken(tok token.Token) Value {
	lit := tok.Literal
	switch tok.Type {
	case token.TOP:
		return TOP_VALUE
	case token.STRING:
		return String(lit)
	case token.SYMBOL:
		return Symbol(lit)
	case token.LABEL:
		return Value{LABEL, lit}
	}
	if token.TokenTypeIsNumeric(tok.Type) {
		v, e := ParseNumber(lit, tok.Type)
		if e != nil {
			panic("the lexer passed an unparsable number " + lit + ".")
		}
		return v
	}
	panic("tried to make a value from a " + string(tok.Type) + " token.")
}
