package builtins

import (
	"github.com/parlance-lang/parlance/source/environment"
	"github.com/parlance-lang/parlance/source/evaluator"
	"github.com/parlance-lang/parlance/source/token"
	"github.com/parlance-lang/parlance/source/values"
)

// Nil is false and T is true.
var BOOL_BUILTINS = map[string]builtin{
	"~":  {nil, btNot},
	"&&": {params(values.BOOL_TYPE), btAnd},
	"||": {params(values.BOOL_TYPE), btOr},
	">>": {params(values.LAZY_TYPE), btThen},
	"!>": {params(values.LAZY_TYPE), btElse},
}

func btNot(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	return values.Bool(s.IsNil()), nil
}

func btAnd(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	return values.Bool(!s.IsNil() && !args[0].IsNil()), nil
}

func btOr(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	return values.Bool(!s.IsNil() || !args[0].IsNil()), nil
}

// The conditionals return their subject, so that a then and an else can be chained:
// x == 0 >> { "zero" !! } !> { "nonzero" !! }.
func btThen(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	if !s.IsNil() {
		if _, e := evalLazy(env, args[0], nil); e != nil {
			return values.Value{}, e
		}
	}
	return s, nil
}

func btElse(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	if s.IsNil() {
		if _, e := evalLazy(env, args[0], nil); e != nil {
			return values.Value{}, e
		}
	}
	return s, nil
}

// Evaluates a lazy block in a fresh scope with the given arguments, and returns its last value.
func evalLazy(env *environment.Environment, lazy values.Value, args []values.Value) (values.Value, error) {
	return evalBody(env, lazy.V.(values.Lazy), environment.WithArgs(args))
}

func evalBody(env *environment.Environment, body values.Lazy, params environment.BlockParams) (values.Value, error) {
	results, e := evaluator.EvalBlock(env, token.NewCodeChunk(body.Tokens), params)
	if e != nil {
		return values.Value{}, e
	}
	return evaluator.Last(results), nil
}
