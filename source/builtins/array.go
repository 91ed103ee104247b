package builtins

import (
	"src.elv.sh/pkg/persistent/vector"

	"github.com/parlance-lang/parlance/source/environment"
	"github.com/parlance-lang/parlance/source/token"
	"github.com/parlance-lang/parlance/source/values"
)

// Arrays are persistent: every operation that changes one returns a new array and
// leaves the subject as it was. An index out of range gives Nil.
var ARRAY_BUILTINS = map[string]builtin{
	"#":   {nil, btArrayLength},
	"@":   {params(values.I32_TYPE), btArrayIndex},
	"@@":  {params(values.I32_TYPE, values.ANY_TYPE), btArrayReplace},
	"@<":  {params(values.I32_TYPE, values.ANY_TYPE), btArrayInsert},
	"@-":  {params(values.I32_TYPE), btArrayRemove},
	"^":   {nil, btArrayFirst},
	"$":   {nil, btArrayLast},
	"$>":  {params(values.ANY_TYPE), btArrayPush},
	"$-":  {nil, btArrayPop},
	"=>>": {params(values.SYMBOL_TYPE), btDefineType(false)},
	"->>": {params(values.SYMBOL_TYPE), btDefineType(true)},
	":":   {params(values.SYMBOL_TYPE), btCastToUserType},
}

func vec(v values.Value) vector.Vector {
	return v.V.(vector.Vector)
}

func btArrayLength(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	return values.U32Value(uint32(vec(s).Len())), nil
}

func btArrayIndex(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	return elementAt(s, args[0].V.(int32)), nil
}

func btArrayReplace(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	n, ok := index(args[0].V.(int32), vec(s).Len())
	if !ok {
		return values.NIL_VALUE, nil
	}
	return values.Value{T: values.ARRAY, V: vec(s).Assoc(n, args[1])}, nil
}

// Inserts before the element at the index. The length of the array is also allowed, and
// appends.
func btArrayInsert(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	elements := s.Elements()
	n, ok := index(args[0].V.(int32), len(elements)+1)
	if args[0].V.(int32) < 0 {
		n, ok = index(args[0].V.(int32), len(elements))
	}
	if !ok {
		return values.NIL_VALUE, nil
	}
	result := append(append(append([]values.Value{}, elements[:n]...), args[1]), elements[n:]...)
	return values.Array(result...), nil
}

func btArrayRemove(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	elements := s.Elements()
	n, ok := index(args[0].V.(int32), len(elements))
	if !ok {
		return values.NIL_VALUE, nil
	}
	return values.Array(append(elements[:n:n], elements[n+1:]...)...), nil
}

func btArrayFirst(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	return elementAt(s, 0), nil
}

func btArrayLast(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	return elementAt(s, -1), nil
}

func btArrayPush(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	return values.Value{T: values.ARRAY, V: vec(s).Conj(args[0])}, nil
}

// Popping an empty array gives an empty array.
func btArrayPop(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	if vec(s).Len() == 0 {
		return s, nil
	}
	return values.Value{T: values.ARRAY, V: vec(s).Pop()}, nil
}

func elementAt(s values.Value, i int32) values.Value {
	n, ok := index(i, vec(s).Len())
	if !ok {
		return values.NIL_VALUE
	}
	v, _ := vec(s).Index(n)
	return v.(values.Value)
}
