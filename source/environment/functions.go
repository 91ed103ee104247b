package environment

import (
	"github.com/rs/zerolog/log"

	"github.com/parlance-lang/parlance/source/err"
	"github.com/parlance-lang/parlance/source/settings"
	"github.com/parlance-lang/parlance/source/token"
	"github.com/parlance-lang/parlance/source/values"
)

// The signature of a builtin verb. tok is the verb's token, for error messages.
type Builtin func(env *Environment, tok *token.Token, subject values.Value, args []values.Value) (values.Value, error)

// An entry in the function registry: either a builtin or a body of user code, which is
// evaluated with the subject bound as ## and the arguments as #0, #1, ...
type Function struct {
	Types   []values.TypeId
	Builtin Builtin
	Body    values.Lazy
	Private bool // Only usable where the self-type is the type the verb belongs to.
	Mutable bool // Whether a later definition may replace it.
}

func (f *Function) IsBuiltin() bool {
	return f.Builtin != nil
}

// Verb tables, filed by the key of the type they belong to.
type functionMap map[string]map[string]*Function

// The function registry. Builtins live in their own tier, which is never pushed or
// popped and is always consulted first, so they can't be shadowed. User definitions go
// in a stack of layers, innermost last.
type FunctionMapStack struct {
	builtins functionMap
	layers   []functionMap
}

func NewFunctionMapStack() *FunctionMapStack {
	return &FunctionMapStack{builtins: functionMap{}, layers: []functionMap{{}}}
}

func (fs *FunctionMapStack) Push() {
	fs.layers = append(fs.layers, functionMap{})
}

func (fs *FunctionMapStack) Pop() {
	if len(fs.layers) == 1 {
		panic("tried to pop the outermost layer of the function registry.")
	}
	fs.layers = fs.layers[:len(fs.layers)-1]
}

func (fs *FunctionMapStack) InsertBuiltin(ty values.TypeId, verb string, fn *Function) {
	table, ok := fs.builtins[ty.Key()]
	if !ok {
		table = map[string]*Function{}
		fs.builtins[ty.Key()] = table
	}
	table[verb] = fn
}

// Whether any tier has a verb table for the type.
func (fs *FunctionMapStack) HasType(ty values.TypeId) bool {
	if _, ok := fs.builtins[ty.Key()]; ok {
		return true
	}
	for i := len(fs.layers) - 1; i >= 0; i-- {
		if _, ok := fs.layers[i][ty.Key()]; ok {
			return true
		}
	}
	return false
}

// Makes an empty verb table for the type in the innermost layer, if it doesn't have one
// anywhere. Returns whether it made one.
func (fs *FunctionMapStack) InsertNewType(ty values.TypeId) bool {
	if fs.HasType(ty) {
		return false
	}
	fs.layers[len(fs.layers)-1][ty.Key()] = map[string]*Function{}
	if settings.SHOW_REGISTRY {
		log.Trace().Stringer("type", ty).Int("layer", len(fs.layers)-1).Msg("new type")
	}
	return true
}

// Finds the entry for the verb on the type, builtins first, then the layers from the
// innermost out.
func (fs *FunctionMapStack) Get(ty values.TypeId, verb string) (*Function, bool) {
	if fn, ok := fs.builtins[ty.Key()][verb]; ok {
		return fn, true
	}
	for i := len(fs.layers) - 1; i >= 0; i-- {
		if fn, ok := fs.layers[i][ty.Key()][verb]; ok {
			return fn, true
		}
	}
	return nil, false
}

// Whether verb is a verb of ty that can be used where the self-type is selfType, which
// is nil outside of any method.
func (fs *FunctionMapStack) IsDefined(selfType *values.TypeId, ty values.TypeId, verb string) bool {
	fn, ok := fs.Get(ty, verb)
	if !ok {
		return false
	}
	return !fn.Private || (selfType != nil && selfType.Equal(ty))
}

type TypesCheck int

const (
	TYPES_UNDECIDED TypesCheck = iota // More arguments are needed.
	TYPES_OK
	TYPES_ERR
)

// Checks the arguments supplied so far against the verb's parameter types.
func (fs *FunctionMapStack) CheckTypes(tok *token.Token, ty values.TypeId, verb string, supplied []values.Value) (TypesCheck, error) {
	fn := fs.GetCode(ty, verb)
	if len(supplied) > len(fn.Types) {
		return TYPES_ERR, err.CreateErr("eval/args/many", tok, verb, ty.String(), len(fn.Types), len(supplied))
	}
	for i, arg := range supplied {
		if !fn.Types[i].Accepts(arg.TypeId()) {
			return TYPES_ERR, err.CreateErr("eval/args/type", tok, verb, ty.String(), fn.Types[i].String(), i, arg.TypeId().String())
		}
	}
	if len(supplied) < len(fn.Types) {
		return TYPES_UNDECIDED, nil
	}
	return TYPES_OK, nil
}

// The entry for a verb that the caller knows to be defined.
func (fs *FunctionMapStack) GetCode(ty values.TypeId, verb string) *Function {
	fn, ok := fs.Get(ty, verb)
	if !ok {
		panic("tried to get the code of undefined verb " + verb + " on " + ty.String() + ".")
	}
	return fn
}

// Defines a verb on a type. An existing immutable definition, or any builtin, can't be
// replaced; an existing mutable one is replaced in whichever layer holds it; otherwise
// the verb goes in the innermost layer.
func (fs *FunctionMapStack) InsertUserDefined(tok *token.Token, ty values.TypeId, verb string, fn *Function) error {
	if _, ok := fs.builtins[ty.Key()][verb]; ok {
		return err.CreateErr("fn/builtin", tok, verb, ty.String())
	}
	if !fs.HasType(ty) {
		return err.CreateErr("fn/method/type", tok, ty.String())
	}
	if settings.SHOW_REGISTRY {
		log.Trace().Stringer("type", ty).Str("verb", verb).Bool("mutable", fn.Mutable).Msg("define verb")
	}
	for i := len(fs.layers) - 1; i >= 0; i-- {
		if old, ok := fs.layers[i][ty.Key()][verb]; ok {
			if !old.Mutable {
				return err.CreateErr("fn/redefine", tok, verb, ty.String())
			}
			fs.layers[i][ty.Key()][verb] = fn
			return nil
		}
	}
	innermost := fs.layers[len(fs.layers)-1]
	table, ok := innermost[ty.Key()]
	if !ok {
		table = map[string]*Function{}
		innermost[ty.Key()] = table
	}
	table[verb] = fn
	return nil
}
