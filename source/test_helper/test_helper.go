package test_helper

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/parlance-lang/parlance/source/builtins"
	"github.com/parlance-lang/parlance/source/environment"
	"github.com/parlance-lang/parlance/source/err"
	"github.com/parlance-lang/parlance/source/evaluator"
	"github.com/parlance-lang/parlance/source/lexer"
	"github.com/parlance-lang/parlance/source/settings"
	"github.com/parlance-lang/parlance/source/text"
	"github.com/parlance-lang/parlance/source/token"
)

// Auxiliary types and functions for testing the evaluator and the builtins.

type TestItem struct {
	Input string
	Want  string
}

// Runs each test in a new environment, after first running the given file from the
// package's testdata directory, if there is one.
func RunTest(t *testing.T, filename string, tests []TestItem, F func(env *environment.Environment, s string) (string, error)) {
	wd, _ := os.Getwd() // The working directory is the directory containing the package being tested.
	for _, test := range tests {
		if settings.SHOW_TESTS {
			println(text.BULLET + "Running test " + text.Emph(test.Input))
		}
		env := builtins.NewEnvironment(&bytes.Buffer{})
		if filename != "" {
			if e := RunFile(env, filepath.Join(wd, "testdata", filename)); e != nil {
				t.Fatal("There were errors initializing the environment : \n" + describe(e))
			}
		}
		got, e := F(env, test.Input)
		if e != nil {
			println(text.Red(test.Input))
			println("There were errors evaluating the line: \n" + describe(e) + "\n")
		}
		if !(test.Want == got) {
			t.Fatalf(`Test failed with input %s | Wanted : %s | Got : %s.`, test.Input, test.Want, got)
		}
	}
}

func describe(e error) string {
	if ue, ok := e.(*err.Error); ok {
		return ue.Describe()
	}
	return e.Error()
}

// Evaluates the file in the environment's top scope, so its bindings are kept.
func RunFile(env *environment.Environment, path string) error {
	code, e := os.ReadFile(path)
	if e != nil {
		return e
	}
	tokens, e := lexer.Lex(path, string(code))
	if e != nil {
		return e
	}
	_, e = evaluator.EvalBlockDirectly(env, token.NewCodeChunk(tokens))
	return e
}

// Evaluates a line as the REPL does.
func Evaluate(env *environment.Environment, line string) (string, error) {
	tokens, e := lexer.Lex(settings.REPL_SOURCE, line)
	if e != nil {
		return "", e
	}
	results, e := evaluator.EvalBlockDirectly(env, token.NewCodeChunk(tokens))
	if e != nil {
		return "", e
	}
	return env.FormatInDetail(evaluator.Last(results)), nil
}

// The value of the line as the REPL shows it, or the error id if there was an error.
func TestValues(env *environment.Environment, line string) (string, error) {
	result, e := Evaluate(env, line)
	if e != nil {
		return ErrorId(e), e
	}
	return result, nil
}

// What the line prints.
func TestOutput(env *environment.Environment, line string) (string, error) {
	if _, e := Evaluate(env, line); e != nil {
		return ErrorId(e), e
	}
	return env.Out.(*bytes.Buffer).String(), nil
}

// The id of the error the line produces, or "OK" if it doesn't.
func TestErrors(env *environment.Environment, line string) (string, error) {
	if _, e := Evaluate(env, line); e != nil {
		return ErrorId(e), nil
	}
	return "OK", nil
}

func ErrorId(e error) string {
	if ue, ok := e.(*err.Error); ok {
		return ue.ErrorId
	}
	return e.Error()
}
