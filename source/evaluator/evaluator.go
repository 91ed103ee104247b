package evaluator

// There is no parse tree. The evaluator reads tokens off a TokenizedCodeChunk and decides what
// they are doing as it goes: whether a label is a verb depends on the type of the value
// that came before it, and how many arguments a verb takes depends on its signature.

import (
	"github.com/parlance-lang/parlance/source/environment"
	"github.com/parlance-lang/parlance/source/token"
	"github.com/parlance-lang/parlance/source/values"
)

// Evaluates a block in a scope of its own, which is discarded afterwards even when there's
// an error. Returns the values of its sentences.
func EvalBlock(env *environment.Environment, chunk *token.TokenizedCodeChunk, params environment.BlockParams) ([]values.Value, error) {
	env.EnterBlock(params)
	defer env.ExitBlock(params)
	return EvalBlockDirectly(env, chunk)
}

// Evaluates the sentences of a block in whatever scope we're in: this is how the REPL
// keeps its bindings from one line to the next.
//
// On success the chunk has been used up. If the last sentence ends with a '.', there's a
// Nil on the end of the results.
func EvalBlockDirectly(env *environment.Environment, chunk *token.TokenizedCodeChunk) ([]values.Value, error) {
	be := &blockEvaluator{env: env, chunk: chunk}
	results := []values.Value{}
	dotted := false
	for !chunk.IsEmpty() || len(be.caches) > 0 {
		v, ok, e := be.evalSentence(true)
		if e != nil {
			return nil, e
		}
		if !ok {
			v = values.NIL_VALUE
		}
		results = append(results, v)
		dotted = be.eatDot()
	}
	if dotted {
		results = append(results, values.NIL_VALUE)
	}
	return results, nil
}

// The last value of a block, which is what a block evaluates to when only one is wanted.
func Last(results []values.Value) values.Value {
	if len(results) == 0 {
		return values.NIL_VALUE
	}
	return results[len(results)-1]
}

// Scripts get their command-line arguments as strings.
func ConvertCommandLineArgs(args []string) []values.Value {
	result := make([]values.Value, 0, len(args))
	for _, arg := range args {
		result = append(result, values.String(arg))
	}
	return result
}
