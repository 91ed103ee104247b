package evaluator_test

import (
	"bytes"
	"testing"

	"github.com/parlance-lang/parlance/source/builtins"
	"github.com/parlance-lang/parlance/source/environment"
	"github.com/parlance-lang/parlance/source/err"
	"github.com/parlance-lang/parlance/source/evaluator"
	"github.com/parlance-lang/parlance/source/lexer"
	"github.com/parlance-lang/parlance/source/settings"
	"github.com/parlance-lang/parlance/source/test_helper"
	"github.com/parlance-lang/parlance/source/token"
	"github.com/parlance-lang/parlance/source/values"
)

func TestVerbChaining(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `2 * 3 + 4`, Want: `14 (i32)`},
		{Input: `(2 * 3) + 4`, Want: `10 (i32)`},
		{Input: `2 * 3, + 4`, Want: `10 (i32)`},
		{Input: `10 - 2 - 3`, Want: `11 (i32)`},
		{Input: `(10 - 2), - 3`, Want: `5 (i32)`},
		{Input: `1 + 2; + 3`, Want: `6 (i32)`},
	}
	test_helper.RunTest(t, "", tests, test_helper.TestValues)
}

func TestSentences(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: ``, Want: `()`},
		{Input: `-- nothing but a comment`, Want: `()`},
		{Input: `12`, Want: `12 (i32)`},
		{Input: `12.`, Want: `()`},
		{Input: `1 2 3`, Want: `3 (i32)`},
		{Input: `[1 2 3]`, Want: `[1 2 3]`},
		{Input: `[]`, Want: `[]`},
		{Input: `[1. 2.]`, Want: `[1 2 ()]`},
		{Input: `[(1 + 1) [2]]`, Want: `[2 [2]]`},
		{Input: `{ 1 + }`, Want: `{}`},
		{Input: `"hello world"`, Want: `hello world (string)`},
		{Input: `'hello`, Want: `hello (symbol)`},
		{Input: `T`, Want: `T`},
		{Input: `()`, Want: `()`},
	}
	test_helper.RunTest(t, "", tests, test_helper.TestValues)
}

func TestVariables(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `twelve`, Want: `12 (i32)`},
		{Input: `'twelve`, Want: `twelve <= 12 (i32)`},
		{Input: `'five`, Want: `five <- 5 (i32)`},
		{Input: `'twelve %`, Want: `12 (i32)`},
		{Input: `'twelve % + 1`, Want: `13 (i32)`},
		{Input: `'unbound`, Want: `unbound (symbol)`},
		{Input: `12 => 'dozen. dozen`, Want: `12 (i32)`},
		{Input: `24 -> 'twelve.`, Want: `var/redefine`},
		{Input: `24 => 'twelve.`, Want: `var/redefine`},
		{Input: `6 -> 'five. five`, Want: `6 (i32)`},
		{Input: `"six" -> 'five. five`, Want: `six (string)`},
		{Input: `unbound`, Want: `var/undefined`},
		{Input: `'unbound %`, Want: `var/undefined`},
		{Input: `1 -> 'T`, Want: `var/reserved`},
		{Input: `1 -> '##`, Want: `var/reserved`},
		{Input: `'five -> 'alias. 'alias`, Want: `alias <- five <- 5 (i32)`},
		{Input: `'loop -> 'loop. 'loop`, Want: `loop <- loop (symbol)`},
	}
	test_helper.RunTest(t, "setup.par", tests, test_helper.TestValues)
}

func TestScopes(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `(5 -> 'z). z`, Want: `var/undefined`},
		{Input: `(5 -> 'z), z`, Want: `var/undefined`},
		{Input: `{ 5 -> 'z } @. z`, Want: `var/undefined`},
		{Input: `[5 -> 'z]. z`, Want: `var/undefined`},
		{Input: `{ 6 -> 'five } @. five`, Want: `6 (i32)`},
		{Input: `(6 -> 'five). five`, Want: `6 (i32)`},
		{Input: `{ 13 -> 'twelve } @`, Want: `var/redefine`},
		{Input: `(1 -> 'z. z + 1)`, Want: `2 (i32)`},
	}
	test_helper.RunTest(t, "setup.par", tests, test_helper.TestValues)
}

func TestArgumentCollection(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `1 +`, Want: `eval/args/few`},
		{Input: `1 + .`, Want: `eval/args/few`},
		{Input: `1 + , 2`, Want: `eval/args/few`},
		{Input: `1 + "a"`, Want: `eval/args/type`},
		{Input: `1 + 2i8`, Want: `eval/args/type`},
		{Input: `#0`, Want: `eval/arg/index`},
		{Input: `{ #1 } : ['i32], @ 1`, Want: `eval/arg/index`},
		{Input: `{ #0 + #1 } : ['i32 'i32], @ 3 4`, Want: `7 (i32)`},
		{Input: `{ #0 - #1 } : ['i32 'i32], @ 10 4`, Want: `6 (i32)`},
		{Input: `{ #0 } : ['_], @ "anything"`, Want: `anything (string)`},
		{Input: `{ #0 } : ['i32], @ "a"`, Want: `eval/args/type`},
	}
	test_helper.RunTest(t, "", tests, test_helper.TestValues)
}

func TestDelimiters(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `(1 + 2`, Want: `parse/unmatched`},
		{Input: `[1 2`, Want: `parse/unmatched`},
		{Input: `{ 1`, Want: `parse/unmatched`},
		{Input: `1 )`, Want: `parse/closer`},
		{Input: `]`, Want: `parse/closer`},
		{Input: `((1))`, Want: `1 (i32)`},
		{Input: `[[1] [[2]]]`, Want: `[[1] [[2]]]`},
		{Input: `"unclosed`, Want: `lex/quote`},
	}
	test_helper.RunTest(t, "", tests, test_helper.TestValues)
}

func TestPrinting(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `"a" ! , "b" !!`, Want: "ab\n"},
		{Input: `1 ! , 2 !`, Want: `12`},
		{Input: `[1 "a" 'b] !!`, Want: "[1 a b]\n"},
		{Input: `(1 !`, Want: `parse/unmatched`},
	}
	test_helper.RunTest(t, "", tests, test_helper.TestOutput)
}

func TestControlFlow(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `0 -> 'r. 1 == 1 >> { 7 -> 'r }. r`, Want: `7 (i32)`},
		{Input: `0 -> 'r. 1 == 2 >> { 7 -> 'r } !> { 8 -> 'r }. r`, Want: `8 (i32)`},
		{Input: `1 == 1 >> { 7 }`, Want: `T`},
		{Input: `0 -> 'i. { i < 3 } @* { i + 1, -> 'i }. i`, Want: `3 (i32)`},
		{Input: `0 -> 'n. { () } @* { 1 -> 'n }. n`, Want: `0 (i32)`},
		{Input: `{ () } @* { 1 }`, Want: `()`},
		{Input: `0 -> 'i. [] -> 'a. { i < 2 >> {} } @* { a $> #0, -> 'a. i + 1, -> 'i }. a`, Want: `[T T]`},
		{Input: `{ 1 + 1 } @`, Want: `2 (i32)`},
		{Input: `{} @`, Want: `()`},
	}
	test_helper.RunTest(t, "", tests, test_helper.TestValues)
}

func TestUserTypes(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `p`, Want: `point[:x 1 ::y a] (point)`},
		{Input: `p : 'x`, Want: `1 (i32)`},
		{Input: `p:x`, Want: `1 (i32)`},
		{Input: `p : 'y`, Want: `var/member/private`},
		{Input: `p :: 'x`, Want: `var/member/public`},
		{Input: `p :: 'y`, Want: `var/member/self`},
		{Input: `p::y`, Want: `var/member/self`},
		{Input: `p : 'z`, Want: `var/member/field`},
		{Input: `twelve:x`, Want: `var/member/owner`},
		{Input: `2 -> 'p:x. p:x`, Want: `2 (i32)`},
		{Input: `"s" -> 'p:x`, Want: `var/member/type`},
		{Input: `"b" -> 'p::y`, Want: `var/member/self`},
		{Input: `p == p`, Want: `T`},
		{Input: `[':x 2 '::y "a"] : 'point, == p`, Want: `()`},
		{Input: `{ ## :: 'y } : [], ~>> 'secret 'point. p secret`, Want: `a (string)`},
		{Input: `{ ## : 'x * 2 } : [], ~>> 'double 'point. p double`, Want: `2 (i32)`},
		{Input: `{ ## : 'x + #0 } : ['i32], ~>> 'plus 'point. p plus 5`, Want: `6 (i32)`},
		{Input: `{ ## : 'x } : [], ~>> '::hidden 'point. p hidden`, Want: `var/undefined`},
		{Input: `{ ## : 'x } : [], ~>> '::hidden 'point. { ## hidden + 1 } : [], ~>> 'shown 'point. p shown`, Want: `2 (i32)`},
		{Input: `{ ## :: 'y } : [], ~>> 'secret 'point. ([':x 1 '::y "z"] : 'point) secret`, Want: `z (string)`},
		{Input: `{ 1 } : [], ~>> 'one 'point. { 2 } : [], ~> 'one 'point`, Want: `fn/redefine`},
		{Input: `{ 1 } : [], ~> 'one 'point. { 2 } : [], ~> 'one 'point. p one`, Want: `2 (i32)`},
		{Input: `{ 1 } : [], ~> '+ 'i32`, Want: `fn/builtin`},
		{Input: `{ 1 } : [], ~> 'one 'nope`, Want: `type/name`},
		{Input: `{ 1 } : [], ~> ' 'point`, Want: `fn/method/verb`},
	}
	test_helper.RunTest(t, "setup.par", tests, test_helper.TestValues)
}

func TestMethodErrorsAreTraced(t *testing.T) {
	env := builtins.NewEnvironment(&bytes.Buffer{})
	if _, e := test_helper.Evaluate(env, `{ 1 + "a" } : [], ~>> 'bad 'i32.`); e != nil {
		t.Fatal(e)
	}
	_, e := test_helper.Evaluate(env, `3 bad`)
	if e == nil {
		t.Fatal("expected an error")
	}
	ue, ok := e.(*err.Error)
	if !ok || ue.ErrorId != "eval/args/type" {
		t.Fatalf("got error %v", e)
	}
	if len(ue.Trace) != 1 || ue.Trace[0].Literal != "bad" {
		t.Fatalf("got trace %v", ue.Trace)
	}
}

func TestErrorsRestoreScopeDepth(t *testing.T) {
	env := builtins.NewEnvironment(&bytes.Buffer{})
	before := env.Depth()
	for _, line := range []string{`({ (1 + "a") } @)`, `[{ [x] } @]`, `{ { #5 } @ } @`} {
		if _, e := test_helper.Evaluate(env, line); e == nil {
			t.Fatalf("expected an error from %s", line)
		}
		if env.Depth() != before {
			t.Fatalf("depth %d after %s, wanted %d", env.Depth(), line, before)
		}
	}
}

func TestEvalBlockDirectly(t *testing.T) {
	env := builtins.NewEnvironment(&bytes.Buffer{})
	tokens, e := lexer.Lex(settings.REPL_SOURCE, `12 => 'twelve. twelve`)
	if e != nil {
		t.Fatal(e)
	}
	chunk := token.NewCodeChunk(tokens)
	results, e := evaluator.EvalBlockDirectly(env, chunk)
	if e != nil {
		t.Fatal(e)
	}
	if len(results) != 2 || !results[0].IsNil() || !values.SameValue(results[1], values.I32Value(12)) {
		t.Fatalf("got %v", results)
	}
	if !chunk.IsEmpty() {
		t.Fatalf("tokens left over: %s", chunk.String())
	}
}

func TestEvalBlockWithArguments(t *testing.T) {
	env := builtins.NewEnvironment(&bytes.Buffer{})
	tokens, _ := lexer.Lex("script.par", `#1 + #0`)
	args := evaluator.ConvertCommandLineArgs([]string{"world", "hello "})
	results, e := evaluator.EvalBlock(env, token.NewCodeChunk(tokens), environment.WithArgs(args))
	if e != nil {
		t.Fatal(e)
	}
	if got := evaluator.Last(results).String(); got != "hello world" {
		t.Fatalf("got %s", got)
	}
	if env.ArgumentCount() != 0 {
		t.Fatal("arguments left on the stack")
	}
}
