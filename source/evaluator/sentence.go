package evaluator

import (
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/parlance-lang/parlance/source/environment"
	"github.com/parlance-lang/parlance/source/err"
	"github.com/parlance-lang/parlance/source/settings"
	"github.com/parlance-lang/parlance/source/token"
	"github.com/parlance-lang/parlance/source/values"
)

// The symbol type's dereferencing verb. It's handled here rather than as a builtin
// because it has to know the self-type of the caller.
const DEREFERENCE = "%"

// The state of the evaluation of one block. The caches hold values that have been
// evaluated but not yet claimed: the result of a clause waiting to be the subject of the
// next one, for example.
type blockEvaluator struct {
	env    *environment.Environment
	chunk  *token.TokenizedCodeChunk
	caches []values.Value
}

func (be *blockEvaluator) pushCache(v values.Value) {
	be.caches = append(be.caches, v)
}

func (be *blockEvaluator) popCache() (values.Value, bool) {
	if len(be.caches) == 0 {
		return values.Value{}, false
	}
	v := be.caches[len(be.caches)-1]
	be.caches = be.caches[:len(be.caches)-1]
	return v, true
}

func (be *blockEvaluator) eatDot() bool {
	if be.chunk.PeekToken().Type == token.DOT {
		be.chunk.NextToken()
		return true
	}
	return false
}

// A sentence is clauses joined by commas, and at the top level by semicolons. Inside an
// argument a comma or semicolon ends the argument. The boolean result is false if there
// was nothing to evaluate.
//
// After each clause, if the next label is a verb of the clause's result, the result
// becomes the subject of that verb, so 2 * 3 + 4 is 2 * (3 + 4) but 2 * 3, + 4 is
// (2 * 3) + 4.
func (be *blockEvaluator) evalSentence(isTopLevel bool) (values.Value, bool, error) {
	s, ok := be.popCache()
	first := true
	for {
		if ok {
			be.pushCache(s)
		} else if !first {
			be.pushCache(values.NIL_VALUE)
		}
		var e error
		s, ok, e = be.evalClause()
		if e != nil {
			return values.Value{}, false, e
		}
		first = false

		if be.chunk.PeekToken().Type == token.COMMA {
			be.chunk.NextToken()
			if !isTopLevel {
				break
			}
		}
		if be.chunk.PeekToken().Type == token.SEMICOLON {
			if !isTopLevel {
				break
			}
			be.chunk.NextToken()
		}
		if be.sentenceEnded() {
			break
		}
		ty := values.BOOL_TYPE // The type of Nil, if the clause was empty.
		if ok {
			ty = s.TypeId()
		}
		if _, isVerb := be.peekVerb(ty); !isVerb {
			break
		}
	}
	return s, ok, nil
}

func (be *blockEvaluator) sentenceEnded() bool {
	switch be.chunk.PeekToken().Type {
	case token.EOF, token.DOT:
		return len(be.caches) == 0
	}
	return false
}

func (be *blockEvaluator) clauseEnded() bool {
	switch be.chunk.PeekToken().Type {
	case token.EOF, token.DOT, token.COMMA, token.SEMICOLON:
		return len(be.caches) == 0
	}
	return false
}

// A clause is a subject, and optionally a verb of the subject's type followed by as many
// arguments as the verb takes.
func (be *blockEvaluator) evalClause() (values.Value, bool, error) {
	if be.clauseEnded() {
		return values.Value{}, false, nil
	}
	s, e := be.subject()
	if e != nil {
		return values.Value{}, false, e
	}
	if be.clauseEnded() {
		return s, true, nil
	}
	ty := s.TypeId()
	verb, ok := be.peekVerb(ty)
	if !ok {
		return s, true, nil
	}
	be.chunk.NextToken()
	if settings.SHOW_EVALUATOR {
		log.Trace().Stringer("type", ty).Str("verb", verb.Literal).Int("line", verb.Line).Msg("verb")
	}
	args, e := be.collectArgs(&verb, ty)
	if e != nil {
		return values.Value{}, false, e
	}
	result, e := be.applicate(&verb, s, ty, args)
	if e != nil {
		return values.Value{}, false, e
	}
	return result, true, nil
}

// The subject is whatever's in the cache, or else the next element. A label in subject
// position is the name of a variable.
func (be *blockEvaluator) subject() (values.Value, error) {
	if v, ok := be.popCache(); ok {
		return v, nil
	}
	tok := be.chunk.PeekToken()
	v, e := be.evalElement()
	if e != nil {
		return values.Value{}, e
	}
	if v.T == values.LABEL {
		return be.env.GetVariable(&tok, v.V.(string))
	}
	return v, nil
}

// Returns the next token without consuming it if it is a label naming a verb of ty that
// we're allowed to use here.
func (be *blockEvaluator) peekVerb(ty values.TypeId) (token.Token, bool) {
	tok := be.chunk.PeekToken()
	if tok.Type != token.LABEL {
		return tok, false
	}
	if isDereference(ty, tok.Literal) || be.env.Functions.IsDefined(be.env.SelfType(), ty, tok.Literal) {
		return tok, true
	}
	return tok, false
}

func isDereference(ty values.TypeId, verb string) bool {
	return ty.Equal(values.SYMBOL_TYPE) && verb == DEREFERENCE
}

// Collects arguments, in order, until the verb's signature is satisfied. A type error is
// reported as soon as it happens.
func (be *blockEvaluator) collectArgs(verb *token.Token, ty values.TypeId) ([]values.Value, error) {
	args := []values.Value{}
	if isDereference(ty, verb.Literal) {
		return args, nil
	}
	for {
		check, e := be.env.Functions.CheckTypes(verb, ty, verb.Literal, args)
		if e != nil {
			return nil, e
		}
		if check == environment.TYPES_OK {
			return args, nil
		}
		if v, ok := be.popCache(); ok {
			args = append(args, v)
			continue
		}
		v, ok, e := be.evalSentence(false)
		if e != nil {
			return nil, e
		}
		if !ok {
			return nil, err.CreateErr("eval/args/few", verb, verb.Literal, ty.String())
		}
		args = append(args, v)
	}
}

func (be *blockEvaluator) applicate(verb *token.Token, s values.Value, ty values.TypeId, args []values.Value) (values.Value, error) {
	if isDereference(ty, verb.Literal) {
		return be.env.GetVariable(verb, s.V.(string))
	}
	fn := be.env.Functions.GetCode(ty, verb.Literal)
	if fn.IsBuiltin() {
		return fn.Builtin(be.env, verb, s, args)
	}
	results, e := EvalBlock(be.env, token.NewCodeChunk(fn.Body.Tokens),
		environment.BlockParams{Self: &s, Args: args, PushArgs: true})
	if e != nil {
		if ue, ok := e.(*err.Error); ok {
			ue.AddToTrace(verb)
		}
		return values.Value{}, e
	}
	return Last(results), nil
}

// Evaluates one element: a literal, an argument, or a group. Labels are returned as they
// are, for the caller to decide what they mean.
func (be *blockEvaluator) evalElement() (values.Value, error) {
	tok := be.chunk.NextToken()
	switch tok.Type {
	case token.LPAREN, token.LBRACE, token.LBRACK:
		group, ok := be.chunk.ExtractGroup(tok)
		if !ok {
			return values.Value{}, err.CreateErr("parse/unmatched", &tok)
		}
		switch tok.Type {
		case token.LPAREN:
			results, e := EvalBlock(be.env, group, environment.BlockParams{})
			if e != nil {
				return values.Value{}, e
			}
			return Last(results), nil
		case token.LBRACE:
			return values.Value{T: values.LAZY, V: values.Lazy{Tokens: group.Tokens()}}, nil
		default:
			results, e := EvalBlock(be.env, group, environment.BlockParams{})
			if e != nil {
				return values.Value{}, e
			}
			return values.Array(results...), nil
		}
	case token.RPAREN, token.RBRACE, token.RBRACK:
		return values.Value{}, err.CreateErr("parse/closer", &tok)
	case token.ARGUMENT:
		i, _ := strconv.Atoi(tok.Literal)
		v, ok := be.env.Argument(i)
		if !ok {
			return values.Value{}, err.CreateErr("eval/arg/index", &tok, i, be.env.ArgumentCount())
		}
		return v, nil
	case token.EOF, token.DOT, token.COMMA, token.SEMICOLON, token.ILLEGAL:
		panic("tried to evaluate a " + string(tok.Type) + " token as an element.")
	}
	return values.FromToken(tok), nil
}
