package builtins

import (
	"strings"

	"github.com/parlance-lang/parlance/source/environment"
	"github.com/parlance-lang/parlance/source/err"
	"github.com/parlance-lang/parlance/source/set"
	"github.com/parlance-lang/parlance/source/token"
	"github.com/parlance-lang/parlance/source/values"
)

// The verbs a user type gets when it's defined, besides the ones every type has.
func userTypeBuiltins() map[string]builtin {
	return map[string]builtin{
		":":  {params(values.SYMBOL_TYPE), btMember(false)},
		"::": {params(values.SYMBOL_TYPE), btMember(true)},
	}
}

// [[T ':x 'i32] [() '::y 'string]] =>> 'point defines a type point with a mutable public
// field x and an immutable private field y. A type defined with ->> may be defined again.
func btDefineType(mutable bool) environment.Builtin {
	return func(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
		name := args[0].V.(string)
		if _, ok := values.PrimitiveTypeNamed(name); ok || name == environment.TOP_NAME {
			return values.Value{}, err.CreateErr("type/reserved", tok, name)
		}
		ut := &environment.UserType{Name: name, Mutable: mutable}
		fieldNames := set.Set[string]{}
		for _, decl := range s.Elements() {
			field, e := parseFieldDeclaration(env, tok, name, decl)
			if e != nil {
				return values.Value{}, e
			}
			if !fieldNames.Insert(field.Name) {
				return values.Value{}, err.CreateErr("type/schema/duplicate", tok, name, field.Name)
			}
			ut.Fields = append(ut.Fields, field)
		}
		if e := env.UserTypes.Insert(tok, ut); e != nil {
			return values.Value{}, e
		}
		ty := values.UserType(name)
		if env.Functions.InsertNewType(ty) {
			for verb, b := range commonBuiltins(ty) {
				userTypeVerb(env, tok, ty, verb, b)
			}
			for verb, b := range userTypeBuiltins() {
				userTypeVerb(env, tok, ty, verb, b)
			}
		}
		return values.NIL_VALUE, nil
	}
}

// User types live in the scope they're defined in, and so do their verbs.
func userTypeVerb(env *environment.Environment, tok *token.Token, ty values.TypeId, verb string, b builtin) {
	fn := &environment.Function{Types: b.types, Builtin: b.f}
	if e := env.Functions.InsertUserDefined(tok, ty, verb, fn); e != nil {
		panic("failed to install verb " + verb + " of new type " + ty.String() + ": " + e.Error())
	}
}

func parseFieldDeclaration(env *environment.Environment, tok *token.Token, typeName string, decl values.Value) (environment.UserTypeField, error) {
	malformed := err.CreateErr("type/schema/field", tok, typeName, decl.String())
	if decl.T != values.ARRAY {
		return environment.UserTypeField{}, malformed
	}
	parts := decl.Elements()
	if len(parts) != 3 || (parts[0].T != values.NIL && parts[0].T != values.TOP) || parts[1].T != values.SYMBOL {
		return environment.UserTypeField{}, malformed
	}
	fieldName, private, ok := splitFieldName(parts[1].V.(string))
	if !ok {
		return environment.UserTypeField{}, malformed
	}
	ty, e := env.ResolveType(tok, parts[2])
	if e != nil {
		return environment.UserTypeField{}, e
	}
	return environment.UserTypeField{Name: fieldName, Private: private, Mutable: parts[0].T == values.TOP, Type: ty}, nil
}

// Field names are written :name for public fields and ::name for private ones.
func splitFieldName(s string) (string, bool, bool) {
	if name, ok := strings.CutPrefix(s, "::"); ok {
		return name, true, name != "" && !strings.Contains(name, ":")
	}
	if name, ok := strings.CutPrefix(s, ":"); ok {
		return name, false, name != "" && !strings.Contains(name, ":")
	}
	return "", false, false
}

// [':x 1 '::y "a"] : 'point makes a point. Each field must be given exactly once, with
// the accessor and type it was declared with.
func btCastToUserType(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	name := args[0].V.(string)
	ut, ok := env.UserTypes.Get(name)
	if !ok {
		return values.Value{}, err.CreateErr("type/name", tok, name)
	}
	elements := s.Elements()
	if len(elements) != 2*len(ut.Fields) {
		return values.Value{}, err.CreateErr("type/cast/count", tok, name, len(ut.Fields), len(elements))
	}
	fields := values.Fields{}
	for i := 0; i < len(elements); i = i + 2 {
		key, v := elements[i], elements[i+1]
		if key.T != values.SYMBOL {
			return values.Value{}, err.CreateErr("type/cast/pair", tok, key.String())
		}
		fieldName, private, ok := splitFieldName(key.V.(string))
		if !ok {
			return values.Value{}, err.CreateErr("type/cast/pair", tok, key.String())
		}
		decl, ok := ut.Field(fieldName)
		if !ok {
			return values.Value{}, err.CreateErr("type/cast/name", tok, name, fieldName)
		}
		if _, given := fields.Get(fieldName); given {
			return values.Value{}, err.CreateErr("type/cast/duplicate", tok, name, fieldName)
		}
		if decl.Private != private {
			return values.Value{}, err.CreateErr("type/cast/privacy", tok, name, fieldName, privacy(decl.Private))
		}
		if !decl.Type.Accepts(v.TypeId()) {
			return values.Value{}, err.CreateErr("type/cast/type", tok, name, fieldName, decl.Type.String(), v.TypeId().String())
		}
		fields = fields.Set(fieldName, values.Field{Private: decl.Private, Mutable: decl.Mutable, Value: v})
	}
	return values.Value{T: values.USER_TYPE, V: &values.Instance{Name: name, Fields: fields}}, nil
}

func privacy(private bool) string {
	if private {
		return "private"
	}
	return "public"
}

func btMember(private bool) environment.Builtin {
	return func(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
		return env.Member(tok, s.V.(*values.Instance), args[0].V.(string), private)
	}
}
