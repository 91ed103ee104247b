package builtins

import (
	"fmt"
	"io"

	"github.com/parlance-lang/parlance/source/environment"
	"github.com/parlance-lang/parlance/source/token"
	"github.com/parlance-lang/parlance/source/values"
)

// A builtin verb: the types of its parameters and the Go function that implements it.
// The dispatcher checks the arguments against the types before calling the function, so
// the functions can take the types for granted.
type builtin struct {
	types []values.TypeId
	f     environment.Builtin
}

func params(types ...values.TypeId) []values.TypeId {
	return types
}

// The types with an ordering.
var ORDERED_TYPES = append(append([]values.TypeId{values.BOOL_TYPE}, values.NUMERIC_TYPES...),
	values.STRING_TYPE, values.SYMBOL_TYPE)

// Makes an environment with all the builtin verbs of the builtin types. The verbs of
// function types and user types are added as the types come into being.
func NewEnvironment(out io.Writer) *environment.Environment {
	env := environment.New(out)
	for _, ty := range values.PRIMITIVE_TYPES {
		install(env, ty, commonBuiltins(ty))
	}
	for _, ty := range ORDERED_TYPES {
		install(env, ty, comparisonBuiltins(ty))
	}
	for _, ty := range values.NUMERIC_TYPES {
		install(env, ty, numericBuiltins(ty))
	}
	for _, ty := range values.INTEGER_TYPES {
		install(env, ty, map[string]builtin{"%": {params(ty), btArith("%")}})
	}
	install(env, values.BOOL_TYPE, BOOL_BUILTINS)
	install(env, values.STRING_TYPE, STRING_BUILTINS)
	install(env, values.SYMBOL_TYPE, SYMBOL_BUILTINS)
	install(env, values.ARRAY_TYPE, ARRAY_BUILTINS)
	install(env, values.LAZY_TYPE, LAZY_BUILTINS)
	return env
}

func install(env *environment.Environment, ty values.TypeId, table map[string]builtin) {
	for verb, b := range table {
		env.Functions.InsertBuiltin(ty, verb, &environment.Function{Types: b.types, Builtin: b.f})
	}
}

// Every type can be printed, bound to a name, and compared for equality.
func commonBuiltins(ty values.TypeId) map[string]builtin {
	return map[string]builtin{
		"!":  {nil, btPrint},
		"!!": {nil, btPrintLine},
		"->": {params(values.SYMBOL_TYPE), btBind(true)},
		"=>": {params(values.SYMBOL_TYPE), btBind(false)},
		"==": {params(ty), btEqual},
		"!=": {params(ty), btNotEqual},
	}
}

func comparisonBuiltins(ty values.TypeId) map[string]builtin {
	return map[string]builtin{
		"<":  {params(ty), btLess},
		">":  {params(ty), btGreater},
		"<=": {params(ty), btLessOrEqual},
		">=": {params(ty), btGreaterOrEqual},
	}
}

func btPrint(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	fmt.Fprint(env.Out, s.String())
	return s, nil
}

func btPrintLine(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	fmt.Fprintln(env.Out, s.String())
	return s, nil
}

func btBind(mutable bool) environment.Builtin {
	return func(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
		if e := env.SetVariable(tok, args[0].V.(string), s, mutable); e != nil {
			return values.Value{}, e
		}
		return values.NIL_VALUE, nil
	}
}

func btEqual(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	return values.Bool(values.Equal(s, args[0])), nil
}

func btNotEqual(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	return values.Bool(!values.Equal(s, args[0])), nil
}

func btLess(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	return values.Bool(values.Less(s, args[0])), nil
}

func btGreater(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	return values.Bool(values.Less(args[0], s)), nil
}

func btLessOrEqual(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	return values.Bool(!values.Less(args[0], s)), nil
}

func btGreaterOrEqual(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	return values.Bool(!values.Less(s, args[0])), nil
}
