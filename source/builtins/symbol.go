package builtins

import (
	"github.com/parlance-lang/parlance/source/environment"
	"github.com/parlance-lang/parlance/source/evaluator"
	"github.com/parlance-lang/parlance/source/token"
	"github.com/parlance-lang/parlance/source/values"
)

var SYMBOL_BUILTINS = map[string]builtin{
	evaluator.DEREFERENCE: {nil, btDereference},
}

// The evaluator dereferences symbols itself; the entry is here so that % is known as a
// verb of symbols everywhere verbs are listed.
func btDereference(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	return env.GetVariable(tok, s.V.(string))
}
