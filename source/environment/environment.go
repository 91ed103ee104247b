package environment

import (
	"io"

	"github.com/rs/zerolog/log"

	"github.com/parlance-lang/parlance/source/err"
	"github.com/parlance-lang/parlance/source/set"
	"github.com/parlance-lang/parlance/source/settings"
	"github.com/parlance-lang/parlance/source/token"
	"github.com/parlance-lang/parlance/source/values"
)

// The Environment is the whole state of a running program: the three registries, the
// stack of argument lists, and where the print verbs write to. Everything that evaluates
// code is handed one explicitly.
type Environment struct {
	Functions *FunctionMapStack
	Variables *VariableMapStack
	UserTypes *UserTypeMapStack
	Out       io.Writer
	args      [][]values.Value
}

// An Environment with no builtins. The builtins package makes the usable ones.
func New(out io.Writer) *Environment {
	return &Environment{
		Functions: NewFunctionMapStack(),
		Variables: NewVariableMapStack(),
		UserTypes: NewUserTypeMapStack(),
		Out:       out,
	}
}

// What a block gets on entry besides its own scope: a receiver, if it's the body of a
// method, and a new argument list, if it's a lazy block or a method body. Parenthesized
// groups and arrays get neither.
type BlockParams struct {
	Self     *values.Value
	Args     []values.Value
	PushArgs bool
}

func WithArgs(args []values.Value) BlockParams {
	return BlockParams{Args: args, PushArgs: true}
}

func (env *Environment) EnterBlock(params BlockParams) {
	env.Functions.Push()
	env.Variables.Push()
	env.UserTypes.Push()
	if params.PushArgs {
		env.args = append(env.args, params.Args)
	}
	if params.Self != nil {
		env.Variables.BindSelf(*params.Self)
	}
	if settings.SHOW_EVALUATOR {
		log.Trace().Int("depth", env.Depth()).Int("args", len(params.Args)).Bool("self", params.Self != nil).Msg("enter block")
	}
}

// Undoes EnterBlock with the same params.
func (env *Environment) ExitBlock(params BlockParams) {
	if settings.SHOW_EVALUATOR {
		log.Trace().Int("depth", env.Depth()).Msg("exit block")
	}
	env.Functions.Pop()
	env.Variables.Pop()
	env.UserTypes.Pop()
	if params.PushArgs {
		env.args = env.args[:len(env.args)-1]
	}
}

// How many blocks deep we are.
func (env *Environment) Depth() int {
	return len(env.Variables.layers) - 1
}

// The argument of the current block at position i.
func (env *Environment) Argument(i int) (values.Value, bool) {
	if len(env.args) == 0 {
		return values.Value{}, false
	}
	args := env.args[len(env.args)-1]
	if i < 0 || i >= len(args) {
		return values.Value{}, false
	}
	return args[i], true
}

func (env *Environment) ArgumentCount() int {
	if len(env.args) == 0 {
		return 0
	}
	return len(env.args[len(env.args)-1])
}

func (env *Environment) SelfType() *values.TypeId {
	return env.Variables.SelfType()
}

func (env *Environment) GetVariable(tok *token.Token, name string) (values.Value, error) {
	return env.Variables.Get(tok, env.SelfType(), name)
}

func (env *Environment) SetVariable(tok *token.Token, name string, v values.Value, mutable bool) error {
	return env.Variables.Insert(tok, env.SelfType(), name, Variable{Value: v, Mutable: mutable})
}

// Turns a description of a type into the type: a symbol naming a builtin or user type, or
// an array of such descriptions, which is the signature of a function type.
func (env *Environment) ResolveType(tok *token.Token, v values.Value) (values.TypeId, error) {
	switch v.T {
	case values.SYMBOL:
		name := v.V.(string)
		if ty, ok := values.PrimitiveTypeNamed(name); ok {
			return ty, nil
		}
		if _, ok := env.UserTypes.Get(name); ok {
			return values.UserType(name), nil
		}
		return values.TypeId{}, err.CreateErr("type/name", tok, name)
	case values.ARRAY:
		params, e := env.ResolveTypes(tok, v.Elements())
		if e != nil {
			return values.TypeId{}, e
		}
		return values.FunctionType(params), nil
	}
	return values.TypeId{}, err.CreateErr("type/sig", tok, v.String())
}

func (env *Environment) ResolveTypes(tok *token.Token, vs []values.Value) ([]values.TypeId, error) {
	result := make([]values.TypeId, 0, len(vs))
	for _, v := range vs {
		ty, e := env.ResolveType(tok, v)
		if e != nil {
			return nil, e
		}
		result = append(result, ty)
	}
	return result, nil
}

// The value as the REPL shows it. A symbol that names a variable is shown with the
// variable's value, and with <- or <= according as it's mutable or not.
func (env *Environment) FormatInDetail(v values.Value) string {
	return env.formatInDetail(v, set.Set[string]{})
}

func (env *Environment) formatInDetail(v values.Value, seen set.Set[string]) string {
	if v.T != values.SYMBOL || seen.Contains(v.V.(string)) {
		return v.Describe()
	}
	name := v.V.(string)
	bound, ok := env.Variables.GetMut(name)
	if !ok {
		return v.Describe()
	}
	seen.Add(name)
	arrow := "<="
	if bound.Mutable {
		arrow = "<-"
	}
	return name + " " + arrow + " " + env.formatInDetail(bound.Value, seen)
}

// Reads a field of an instance by the : or :: verb.
func (env *Environment) Member(tok *token.Token, inst *values.Instance, field string, private bool) (values.Value, error) {
	f, e := accessField(tok, env.SelfType(), inst, qualifiedName{field: field, private: private})
	if e != nil {
		return values.Value{}, e
	}
	return f.Value, nil
}
