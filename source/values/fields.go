package values

import (
	"sort"

	"src.elv.sh/pkg/persistent/hash"
	"src.elv.sh/pkg/persistent/hashmap"
)

// The fields of a user type instance, keyed by name. The map is persistent: setting a
// field gives a new Fields sharing structure with the old one, so an instance bound to
// one variable is never changed by an update through another. The zero value is empty.
type Fields struct {
	m hashmap.Map
}

var noFields = hashmap.New(
	func(k1, k2 any) bool { return k1.(string) == k2.(string) },
	func(k any) uint32 { return hash.String(k.(string)) },
)

func (fs Fields) fieldMap() hashmap.Map {
	if fs.m == nil {
		return noFields
	}
	return fs.m
}

func (fs Fields) Len() int {
	return fs.fieldMap().Len()
}

func (fs Fields) Get(name string) (Field, bool) {
	v, ok := fs.fieldMap().Index(name)
	if !ok {
		return Field{}, false
	}
	return v.(Field), true
}

func (fs Fields) Set(name string, f Field) Fields {
	return Fields{m: fs.fieldMap().Assoc(name, f)}
}

// Calls f on each field in order of name.
func (fs Fields) Range(f func(name string, value Field)) {
	names := make([]string, 0, fs.Len())
	for it := fs.fieldMap().Iterator(); it.HasElem(); it.Next() {
		k, _ := it.Elem()
		names = append(names, k.(string))
	}
	sort.Strings(names)
	for _, name := range names {
		field, _ := fs.Get(name)
		f(name, field)
	}
}
