package builtins

import (
	"github.com/rs/zerolog/log"

	"github.com/parlance-lang/parlance/source/environment"
	"github.com/parlance-lang/parlance/source/settings"
	"github.com/parlance-lang/parlance/source/token"
	"github.com/parlance-lang/parlance/source/values"
)

var LAZY_BUILTINS = map[string]builtin{
	"@":  {nil, btEvalLazy},
	":":  {params(values.ARRAY_TYPE), btMakeFunction},
	"@*": {params(values.LAZY_TYPE), btLoop},
}

func btEvalLazy(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	return evalLazy(env, s, nil)
}

// While the subject evaluates to something other than Nil, evaluate the body, with the
// value of the subject as #0.
func btLoop(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	for {
		condition, e := evalLazy(env, s, nil)
		if e != nil {
			return values.Value{}, e
		}
		if condition.IsNil() {
			return values.NIL_VALUE, nil
		}
		if _, e := evalLazy(env, args[0], []values.Value{condition}); e != nil {
			return values.Value{}, e
		}
	}
}

// {body} : [types] makes a function. The first time a signature is seen, its function
// type gets its verbs.
func btMakeFunction(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	types, e := env.ResolveTypes(tok, args[0].Elements())
	if e != nil {
		return values.Value{}, e
	}
	ty := values.FunctionType(types)
	if !env.Functions.HasType(ty) {
		if settings.SHOW_REGISTRY {
			log.Trace().Stringer("type", ty).Msg("new function type")
		}
		install(env, ty, commonBuiltins(ty))
		install(env, ty, functionBuiltins(ty))
	}
	return values.Value{T: values.FUNCTION, V: values.Function{Type: ty, Body: s.V.(values.Lazy)}}, nil
}
