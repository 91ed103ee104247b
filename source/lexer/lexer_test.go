package lexer

import (
	"strings"
	"testing"

	"github.com/parlance-lang/parlance/source/err"
	"github.com/parlance-lang/parlance/source/token"
)

// Shows the tokens as type:literal, separated by spaces.
func show(tokens []token.Token) string {
	result := []string{}
	for _, tok := range tokens {
		result = append(result, string(tok.Type)+":"+tok.Literal)
	}
	return strings.Join(result, " ")
}

func TestLex(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`2 + 2`, `i32:2 LABEL:+ i32:2`},
		{`-3`, `i32:-3`},
		{`1.5`, `f64:1.5`},
		{`1e3`, `f64:1e3`},
		{`1.5.`, `f64:1.5 .:.`},
		{`2i64 7u8 1.5f32`, `i64:2 u8:7 f32:1.5`},
		{`300u8`, `LABEL:300u8`},
		{`128i8`, `LABEL:128i8`},
		{`-1u32`, `LABEL:-1u32`},
		{`inf NaN`, `LABEL:inf LABEL:NaN`},
		{`"a b" 'sym #0 T`, `string:a b symbol:sym ARGUMENT:0 T:T`},
		{`'[] '{}`, `symbol:[] symbol:{}`},
		{`'[].`, `symbol:[] .:.`},
		{`'{},`, `symbol:{} ,:,`},
		{`[1 2]`, `[:[ i32:1 i32:2 ]:]`},
		{`(x)`, `(:( LABEL:x ):)`},
		{`x.y, z;`, `LABEL:x.y ,:, LABEL:z ;:;`},
		{`-- all comment`, ``},
		{`x--note`, `LABEL:x`},
		{`x --note`, `LABEL:x`},
		{"[1 2--note\n 3]", `[:[ i32:1 i32:2 i32:3 ]:]`},
		{"(--note\n1)", `(:( i32:1 ):)`},
		{"1\n2", `i32:1 i32:2`},
	}
	for _, test := range tests {
		tokens, e := Lex("test", test.input)
		if e != nil {
			t.Fatalf("Test failed with input %s | unexpected error : %v", test.input, e)
		}
		if got := show(tokens); got != test.want {
			t.Fatalf("Test failed with input %s | Wanted : %s | Got : %s.", test.input, test.want, got)
		}
	}
}

func TestLexPositions(t *testing.T) {
	tokens, e := Lex("test", "1 ab.\n  cd")
	if e != nil {
		t.Fatal(e)
	}
	want := []struct{ line, start, end int }{{1, 0, 1}, {1, 2, 4}, {1, 4, 5}, {2, 2, 4}}
	if len(tokens) != len(want) {
		t.Fatalf("wanted %d tokens, got %s", len(want), show(tokens))
	}
	for i, w := range want {
		tok := tokens[i]
		if tok.Line != w.line || tok.ChStart != w.start || tok.ChEnd != w.end || tok.Source != "test" {
			t.Fatalf("token %d (%s) is at %d:%d-%d in %q", i, tok.Literal, tok.Line, tok.ChStart, tok.ChEnd, tok.Source)
		}
	}
}

func TestLexUnclosedString(t *testing.T) {
	for _, input := range []string{`"abc`, "\"abc\ndef\""} {
		_, e := Lex("test", input)
		ue, ok := e.(*err.Error)
		if !ok || ue.ErrorId != "lex/quote" {
			t.Fatalf("Test failed with input %q | Wanted : lex/quote | Got : %v.", input, e)
		}
	}
}
