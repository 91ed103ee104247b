package environment

import (
	"github.com/parlance-lang/parlance/source/err"
	"github.com/parlance-lang/parlance/source/token"
	"github.com/parlance-lang/parlance/source/values"
)

type UserTypeField struct {
	Name    string
	Private bool
	Mutable bool
	Type    values.TypeId
}

// The schema of a user type.
type UserType struct {
	Name    string
	Mutable bool
	Fields  []UserTypeField
}

func (ut *UserType) Field(name string) (UserTypeField, bool) {
	for _, f := range ut.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return UserTypeField{}, false
}

type UserTypeMapStack struct {
	layers []map[string]*UserType
}

func NewUserTypeMapStack() *UserTypeMapStack {
	return &UserTypeMapStack{layers: []map[string]*UserType{{}}}
}

func (us *UserTypeMapStack) Push() {
	us.layers = append(us.layers, map[string]*UserType{})
}

func (us *UserTypeMapStack) Pop() {
	if len(us.layers) == 1 {
		panic("tried to pop the outermost layer of the user types.")
	}
	us.layers = us.layers[:len(us.layers)-1]
}

func (us *UserTypeMapStack) Get(name string) (*UserType, bool) {
	for i := len(us.layers) - 1; i >= 0; i-- {
		if ut, ok := us.layers[i][name]; ok {
			return ut, true
		}
	}
	return nil, false
}

// Defines a type. A type of the same name can be replaced where it is if it was defined
// as mutable.
func (us *UserTypeMapStack) Insert(tok *token.Token, ut *UserType) error {
	for i := len(us.layers) - 1; i >= 0; i-- {
		if old, ok := us.layers[i][ut.Name]; ok {
			if !old.Mutable {
				return err.CreateErr("type/redefine", tok, ut.Name)
			}
			us.layers[i][ut.Name] = ut
			return nil
		}
	}
	us.layers[len(us.layers)-1][ut.Name] = ut
	return nil
}
