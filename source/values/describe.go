package values

import (
	"fmt"
	"strconv"
	"strings"

	"src.elv.sh/pkg/persistent/vector"
)

// How print shows a value. Strings and symbols appear without their quotes.
func (v Value) String() string {
	switch v.T {
	case NIL:
		return "()"
	case TOP:
		return "T"
	case F32:
		return strconv.FormatFloat(float64(v.V.(float32)), 'f', -1, 32)
	case F64:
		return strconv.FormatFloat(v.V.(float64), 'f', -1, 64)
	case STRING, SYMBOL, LABEL:
		return v.V.(string)
	case ARRAY:
		var sb strings.Builder
		sb.WriteString("[")
		sep := ""
		for it := v.V.(vector.Vector).Iterator(); it.HasElem(); it.Next() {
			sb.WriteString(sep + it.Elem().(Value).String())
			sep = " "
		}
		sb.WriteString("]")
		return sb.String()
	case LAZY, FUNCTION:
		return "{}"
	case USER_TYPE:
		inst := v.V.(*Instance)
		var sb strings.Builder
		sb.WriteString(inst.Name + "[")
		sep := ""
		inst.Fields.Range(func(name string, f Field) {
			accessor := ":"
			if f.Private {
				accessor = "::"
			}
			sb.WriteString(sep + accessor + name + " " + f.Value.String())
			sep = " "
		})
		sb.WriteString("]")
		return sb.String()
	case UNDEFINED_VALUE:
		return "<undefined>"
	}
	return fmt.Sprint(v.V)
}

// The value followed by its type, as the REPL shows it. Nil, T and the values whose
// type is obvious from their appearance are shown bare.
func (v Value) Describe() string {
	switch v.T {
	case NIL, TOP, ARRAY, LAZY:
		return v.String()
	}
	return v.String() + " (" + v.TypeId().String() + ")"
}
