package environment

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/parlance-lang/parlance/source/err"
	"github.com/parlance-lang/parlance/source/settings"
	"github.com/parlance-lang/parlance/source/token"
	"github.com/parlance-lang/parlance/source/values"
)

const (
	SELF     = "##" // The receiver of a method.
	TOP_NAME = "T"
)

type Variable struct {
	Value   values.Value
	Mutable bool
}

type VariableMapStack struct {
	layers []map[string]*Variable
}

func NewVariableMapStack() *VariableMapStack {
	return &VariableMapStack{layers: []map[string]*Variable{{}}}
}

func (vs *VariableMapStack) Push() {
	vs.layers = append(vs.layers, map[string]*Variable{})
}

func (vs *VariableMapStack) Pop() {
	if len(vs.layers) == 1 {
		panic("tried to pop the outermost layer of the variables.")
	}
	vs.layers = vs.layers[:len(vs.layers)-1]
}

// Finds the binding of an unqualified name, from the innermost layer out. The result may
// be changed in place.
func (vs *VariableMapStack) GetMut(name string) (*Variable, bool) {
	for i := len(vs.layers) - 1; i >= 0; i-- {
		if v, ok := vs.layers[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Binds the receiver of a method in the innermost layer.
func (vs *VariableMapStack) BindSelf(v values.Value) {
	vs.layers[len(vs.layers)-1][SELF] = &Variable{Value: v}
}

// The type of the nearest receiver, or nil if we're not in a method.
func (vs *VariableMapStack) SelfType() *values.TypeId {
	self, ok := vs.GetMut(SELF)
	if !ok {
		return nil
	}
	ty := self.Value.TypeId()
	return &ty
}

// A qualified name is owner:field for a public field or owner::field for a private one.
type qualifiedName struct {
	owner   string
	field   string
	private bool
}

func splitQualified(name string) (qualifiedName, bool) {
	i := strings.Index(name, ":")
	if i <= 0 {
		return qualifiedName{}, false
	}
	q := qualifiedName{owner: name[:i], field: name[i+1:]}
	if strings.HasPrefix(q.field, ":") {
		q.private = true
		q.field = q.field[1:]
	}
	if q.field == "" || strings.Contains(q.field, ":") {
		return qualifiedName{}, false
	}
	return q, true
}

// Looks up a name, which may be qualified. Private fields can only be reached where
// selfType is the type of their owner.
func (vs *VariableMapStack) Get(tok *token.Token, selfType *values.TypeId, name string) (values.Value, error) {
	if q, ok := splitQualified(name); ok {
		inst, e := vs.owner(tok, q)
		if e != nil {
			return values.Value{}, e
		}
		field, e := accessField(tok, selfType, inst, q)
		if e != nil {
			return values.Value{}, e
		}
		return field.Value, nil
	}
	if v, ok := vs.GetMut(name); ok {
		return v.Value, nil
	}
	return values.Value{}, err.CreateErr("var/undefined", tok, name)
}

func (vs *VariableMapStack) owner(tok *token.Token, q qualifiedName) (*values.Instance, error) {
	owner, ok := vs.GetMut(q.owner)
	if !ok {
		return nil, err.CreateErr("var/undefined", tok, q.owner)
	}
	if owner.Value.T != values.USER_TYPE {
		return nil, err.CreateErr("var/member/owner", tok, q.owner)
	}
	return owner.Value.V.(*values.Instance), nil
}

// Reads a field of an instance through the accessor given by q.
func accessField(tok *token.Token, selfType *values.TypeId, inst *values.Instance, q qualifiedName) (values.Field, error) {
	field, ok := inst.Fields.Get(q.field)
	if !ok {
		return values.Field{}, err.CreateErr("var/member/field", tok, inst.Name, q.field)
	}
	if field.Private && !q.private {
		return values.Field{}, err.CreateErr("var/member/private", tok, inst.Name, q.field)
	}
	if !field.Private && q.private {
		return values.Field{}, err.CreateErr("var/member/public", tok, inst.Name, q.field)
	}
	if field.Private && (selfType == nil || !selfType.Equal(values.UserType(inst.Name))) {
		return values.Field{}, err.CreateErr("var/member/self", tok, inst.Name, q.field)
	}
	return field, nil
}

// Binds a name. If there's a binding of that name anywhere it is replaced where it is,
// unless it's immutable; otherwise the binding goes in the innermost layer. Binding a
// qualified name changes a mutable field of the instance it names.
func (vs *VariableMapStack) Insert(tok *token.Token, selfType *values.TypeId, name string, v Variable) error {
	if name == SELF || name == TOP_NAME {
		return err.CreateErr("var/reserved", tok, name)
	}
	if settings.SHOW_REGISTRY {
		log.Trace().Str("name", name).Bool("mutable", v.Mutable).Msg("bind")
	}
	if q, ok := splitQualified(name); ok {
		return vs.setField(tok, selfType, q, v.Value)
	}
	if old, ok := vs.GetMut(name); ok {
		if !old.Mutable {
			return err.CreateErr("var/redefine", tok, name)
		}
		*old = v
		return nil
	}
	vs.layers[len(vs.layers)-1][name] = &v
	return nil
}

func (vs *VariableMapStack) setField(tok *token.Token, selfType *values.TypeId, q qualifiedName, v values.Value) error {
	inst, e := vs.owner(tok, q)
	if e != nil {
		return e
	}
	field, e := accessField(tok, selfType, inst, q)
	if e != nil {
		return e
	}
	if !field.Mutable {
		return err.CreateErr("var/member/immutable", tok, inst.Name, q.field)
	}
	if !field.Value.TypeId().Equal(v.TypeId()) {
		return err.CreateErr("var/member/type", tok, inst.Name, q.field, field.Value.TypeId().String(), v.TypeId().String())
	}
	field.Value = v
	owner, _ := vs.GetMut(q.owner)
	owner.Value = values.Value{T: values.USER_TYPE, V: &values.Instance{Name: inst.Name, Fields: inst.Fields.Set(q.field, field)}}
	return nil
}
