package builtins

import (
	"github.com/parlance-lang/parlance/source/environment"
	"github.com/parlance-lang/parlance/source/err"
	"github.com/parlance-lang/parlance/source/token"
	"github.com/parlance-lang/parlance/source/values"
)

// Arithmetic takes two numbers of the same type and gives one of that type. There is no
// widening: to add an i32 to a u8, cast one of them first.
func numericBuiltins(ty values.TypeId) map[string]builtin {
	return map[string]builtin{
		"+": {params(ty), btArith("+")},
		"-": {params(ty), btArith("-")},
		"*": {params(ty), btArith("*")},
		"/": {params(ty), btArith("/")},
		":": {params(values.SYMBOL_TYPE), btCastNumber},
	}
}

func btArith(op string) environment.Builtin {
	return func(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
		result, ok := values.Arith(op, s, args[0])
		if !ok {
			return values.Value{}, err.CreateErr("num/div", tok)
		}
		return result, nil
	}
}

func btCastNumber(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	name := args[0].V.(string)
	target, ok := values.PrimitiveTypeNamed(name)
	if !ok || !target.IsNumeric() {
		return values.Value{}, err.CreateErr("num/cast", tok, s.String(), name)
	}
	return values.Cast(s, target), nil
}
