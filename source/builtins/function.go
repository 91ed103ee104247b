package builtins

import (
	"strings"

	"github.com/parlance-lang/parlance/source/environment"
	"github.com/parlance-lang/parlance/source/err"
	"github.com/parlance-lang/parlance/source/token"
	"github.com/parlance-lang/parlance/source/values"
)

// A function of type fn[t1 t2 ...] is called with @ and arguments of those types, and can
// be made into a method of any type with ~> or ~>>.
func functionBuiltins(ty values.TypeId) map[string]builtin {
	return map[string]builtin{
		"@":   {ty.Params, btCall},
		"~>":  {params(values.SYMBOL_TYPE, values.SYMBOL_TYPE), btDefineMethod(true)},
		"~>>": {params(values.SYMBOL_TYPE, values.SYMBOL_TYPE), btDefineMethod(false)},
	}
}

func btCall(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	return evalBody(env, s.V.(values.Function).Body, environment.WithArgs(args))
}

// f ~> 'verb 'type makes the function a verb of the type. In the body, ## is the subject
// the verb is applied to, and #0, #1 ... are its arguments. A verb named '::verb is
// private, and can only be used in the methods of its own type.
func btDefineMethod(mutable bool) environment.Builtin {
	return func(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
		verb := args[0].V.(string)
		private := false
		if name, ok := strings.CutPrefix(verb, "::"); ok && name != "" {
			verb, private = name, true
		}
		if verb == "" || strings.ContainsAny(verb, " \t") {
			return values.Value{}, err.CreateErr("fn/method/verb", tok, args[0].V.(string))
		}
		owner, e := env.ResolveType(tok, args[1])
		if e != nil {
			return values.Value{}, e
		}
		fn := s.V.(values.Function)
		method := &environment.Function{Types: fn.Type.Params, Body: fn.Body, Private: private, Mutable: mutable}
		if e := env.Functions.InsertUserDefined(tok, owner, verb, method); e != nil {
			return values.Value{}, e
		}
		return values.NIL_VALUE, nil
	}
}
