package builtins

import (
	"github.com/parlance-lang/parlance/source/environment"
	"github.com/parlance-lang/parlance/source/token"
	"github.com/parlance-lang/parlance/source/values"
)

// Strings are indexed by rune, not by byte.
var STRING_BUILTINS = map[string]builtin{
	"#": {nil, btStringLength},
	"^": {nil, btStringFirst},
	"$": {nil, btStringLast},
	"@": {params(values.I32_TYPE), btStringIndex},
	"+": {params(values.STRING_TYPE), btStringConcat},
}

func btStringLength(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	return values.U32Value(uint32(len([]rune(s.V.(string))))), nil
}

func btStringFirst(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	return runeAt(s, 0), nil
}

func btStringLast(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	return runeAt(s, -1), nil
}

func btStringIndex(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	return runeAt(s, args[0].V.(int32)), nil
}

func btStringConcat(env *environment.Environment, tok *token.Token, s values.Value, args []values.Value) (values.Value, error) {
	return values.String(s.V.(string) + args[0].V.(string)), nil
}

// The rune at position i as a string, or Nil if there isn't one.
func runeAt(s values.Value, i int32) values.Value {
	runes := []rune(s.V.(string))
	n, ok := index(i, len(runes))
	if !ok {
		return values.NIL_VALUE
	}
	return values.String(string(runes[n]))
}

// Negative indices count back from the end, so -1 is the last element.
func index(i int32, length int) (int, bool) {
	n := int(i)
	if n < 0 {
		n = n + length
	}
	return n, 0 <= n && n < length
}
