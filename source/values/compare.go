package values

import (
	"src.elv.sh/pkg/persistent/vector"
	"lukechampine.com/uint128"
)

// Equal compares two values of the same type. The dispatcher only ever compares values
// whose types it has checked, so being asked to compare different types is a bug.
func Equal(a, b Value) bool {
	if !a.TypeId().Equal(b.TypeId()) {
		panic("tried to compare a " + a.TypeId().String() + " with a " + b.TypeId().String() + ".")
	}
	return equal(a, b)
}

// Like Equal, but values of different types are just unequal. Elements of arrays and
// fields of instances are compared this way.
func SameValue(a, b Value) bool {
	if a.T == LABEL || b.T == LABEL || !a.TypeId().Equal(b.TypeId()) {
		return false
	}
	return equal(a, b)
}

func equal(a, b Value) bool {
	switch a.T {
	case NIL, TOP:
		return a.T == b.T
	case ARRAY:
		x, y := a.V.(vector.Vector), b.V.(vector.Vector)
		if x.Len() != y.Len() {
			return false
		}
		for i, j := x.Iterator(), y.Iterator(); i.HasElem(); i, j = next(i), next(j) {
			if !SameValue(i.Elem().(Value), j.Elem().(Value)) {
				return false
			}
		}
		return true
	case LAZY:
		return sameTokens(a.V.(Lazy), b.V.(Lazy))
	case FUNCTION:
		return sameTokens(a.V.(Function).Body, b.V.(Function).Body)
	case USER_TYPE:
		x, y := a.V.(*Instance), b.V.(*Instance)
		if x.Fields.Len() != y.Fields.Len() {
			return false
		}
		same := true
		x.Fields.Range(func(name string, f Field) {
			g, ok := y.Fields.Get(name)
			same = same && ok && f.Private == g.Private && SameValue(f.Value, g.Value)
		})
		return same
	case I128:
		return a.V.(Int128) == b.V.(Int128)
	case U128:
		return a.V.(uint128.Uint128).Equals(b.V.(uint128.Uint128))
	}
	// Everything else is held as a comparable Go value.
	return a.V == b.V
}

func next(it vector.Iterator) vector.Iterator {
	it.Next()
	return it
}

func sameTokens(x, y Lazy) bool {
	if len(x.Tokens) != len(y.Tokens) {
		return false
	}
	for i := range x.Tokens {
		if x.Tokens[i].Type != y.Tokens[i].Type || x.Tokens[i].Literal != y.Tokens[i].Literal {
			return false
		}
	}
	return true
}

// Less orders two values of the same ordered type: the numbers, strings, symbols and
// booleans, with Nil before T.
func Less(a, b Value) bool {
	if !a.TypeId().Equal(b.TypeId()) {
		panic("tried to order a " + a.TypeId().String() + " and a " + b.TypeId().String() + ".")
	}
	switch a.T {
	case NIL, TOP:
		return a.T == NIL && b.T == TOP
	case I8:
		return a.V.(int8) < b.V.(int8)
	case U8:
		return a.V.(uint8) < b.V.(uint8)
	case I16:
		return a.V.(int16) < b.V.(int16)
	case U16:
		return a.V.(uint16) < b.V.(uint16)
	case I32:
		return a.V.(int32) < b.V.(int32)
	case U32:
		return a.V.(uint32) < b.V.(uint32)
	case I64:
		return a.V.(int64) < b.V.(int64)
	case U64:
		return a.V.(uint64) < b.V.(uint64)
	case I128:
		return a.V.(Int128).Cmp(b.V.(Int128)) < 0
	case U128:
		return a.V.(uint128.Uint128).Cmp(b.V.(uint128.Uint128)) < 0
	case F32:
		return a.V.(float32) < b.V.(float32)
	case F64:
		return a.V.(float64) < b.V.(float64)
	case STRING, SYMBOL:
		return a.V.(string) < b.V.(string)
	}
	panic("tried to order values of unordered type " + a.TypeId().String() + ".")
}
