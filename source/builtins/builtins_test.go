package builtins_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/parlance-lang/parlance/source/builtins"
	"github.com/parlance-lang/parlance/source/test_helper"
	"github.com/parlance-lang/parlance/source/values"
)

func TestBuiltinRegistry(t *testing.T) {
	env := builtins.NewEnvironment(&bytes.Buffer{})
	defined := []struct {
		ty   values.TypeId
		verb string
	}{
		{values.I32_TYPE, "+"},
		{values.I32_TYPE, "%"},
		{values.I32_TYPE, "<"},
		{values.STRING_TYPE, "#"},
		{values.SYMBOL_TYPE, "%"},
		{values.SYMBOL_TYPE, "->"},
		{values.BOOL_TYPE, ">>"},
		{values.ARRAY_TYPE, "=>>"},
		{values.LAZY_TYPE, "@*"},
	}
	for _, d := range defined {
		if !env.Functions.IsDefined(nil, d.ty, d.verb) {
			t.Errorf("%s should be a verb of %s", d.verb, d.ty)
		}
	}
	if env.Functions.IsDefined(nil, values.F64_TYPE, "%") {
		t.Errorf("%% should not be a verb of f64")
	}
	if env.Functions.IsDefined(nil, values.STRING_TYPE, "-") {
		t.Errorf("- should not be a verb of string")
	}
}

func TestFunctionTypesGetVerbsWhenFirstSeen(t *testing.T) {
	env := builtins.NewEnvironment(&bytes.Buffer{})
	ty := values.FunctionType([]values.TypeId{values.I32_TYPE})
	if env.Functions.HasType(ty) {
		t.Fatalf("%s should not exist yet", ty)
	}
	if _, e := test_helper.Evaluate(env, `{ #0 } : ['i32].`); e != nil {
		t.Fatal(e)
	}
	for _, verb := range []string{"@", "~>", "~>>", "->", "=="} {
		if !env.Functions.IsDefined(nil, ty, verb) {
			t.Errorf("%s should be a verb of %s", verb, ty)
		}
	}
}

func TestBuiltinValues(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `2 + 3`, Want: `5 (i32)`},
		{Input: `2 * 3, + 4`, Want: `10 (i32)`},
		{Input: `2 * 3 + 4`, Want: `14 (i32)`},
		{Input: `"ab" #`, Want: `2 (u32)`},
		{Input: `'x -> 'y. y`, Want: `x (symbol)`},
		{Input: `[1 2 3] @@ 0 9, $`, Want: `3 (i32)`},
	}
	test_helper.RunTest(t, "", tests, test_helper.TestValues)
}

const pointType = `[[T ':x 'i32] [() '::y 'string]] =>> 'p. `

func TestCastErrors(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: pointType + `[':x 1 '::y "a"] : 'p`, Want: `OK`},
		{Input: pointType + `[':x 1] : 'p`, Want: `type/cast/count`},
		{Input: pointType + `[':x 1 ':x 2] : 'p`, Want: `type/cast/duplicate`},
		{Input: pointType + `[':x 1 '::z "a"] : 'p`, Want: `type/cast/name`},
		{Input: pointType + `[':x 1 ':y "a"] : 'p`, Want: `type/cast/privacy`},
	}
	test_helper.RunTest(t, "", tests, test_helper.TestErrors)
}

func TestCastErrorMessages(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{`[':x 1] : 'p`, `'p' has 2 fields, so needs 4 elements, but the array has 2`},
		{`[':x 1 ':x 2] : 'p`, `field 'x' of 'p' is given twice`},
		{`[':x 1 '::z "a"] : 'p`, `'p' has no field 'z'`},
	}
	for _, test := range tests {
		env := builtins.NewEnvironment(&bytes.Buffer{})
		if _, e := test_helper.Evaluate(env, pointType); e != nil {
			t.Fatal(e)
		}
		_, e := test_helper.Evaluate(env, test.code)
		if e == nil || !strings.Contains(e.Error(), test.want) {
			t.Fatalf("Test failed with input %s | Wanted : %s | Got : %v.", test.code, test.want, e)
		}
	}
}
