package repl

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/lmorg/readline"

	"github.com/parlance-lang/parlance/source/database"
	"github.com/parlance-lang/parlance/source/hub"
	"github.com/parlance-lang/parlance/source/settings"
)

func TestStartStopsAtExit(t *testing.T) {
	out := &bytes.Buffer{}
	hb := hub.New(out, settings.DefaultConfig(), database.NewInMemory())
	in := strings.NewReader("5 -> 'five\n  five + 1  \n#exit\nfive\n")
	if e := Start(hb, NewScannerReader(in)); e != nil {
		t.Fatal(e)
	}
	if out.String() != "()\n6 (i32)\n" {
		t.Fatalf("wrong output: %q", out.String())
	}
}

func TestStartStopsAtEndOfInput(t *testing.T) {
	out := &bytes.Buffer{}
	hb := hub.New(out, settings.DefaultConfig(), database.NewInMemory())
	if e := Start(hb, NewScannerReader(strings.NewReader("T ~"))); e != nil {
		t.Fatal(e)
	}
	if out.String() != "()\n" {
		t.Fatalf("wrong output: %q", out.String())
	}
}

func TestComplete(t *testing.T) {
	tests := []struct {
		typed string
		want  []string
	}{
		{"#he", []string{"lp"}},
		{"#h", []string{"elp", "istory"}},
		{"#help ty", []string{"pes"}},
		{"2 + 2", nil},
	}
	for _, test := range tests {
		line := []rune(test.typed)
		_, got, _, _ := complete(line, len(line), readline.DelayedTabContext{})
		if strings.Join(got, ",") != strings.Join(test.want, ",") {
			t.Fatalf("Test failed with input %s | Wanted : %v | Got : %v.", test.typed, test.want, got)
		}
	}
}

func TestReadlineErr(t *testing.T) {
	tests := []struct {
		in    error
		retry bool
		want  error
	}{
		{nil, false, nil},
		{errors.New(readline.ErrCtrlC), true, nil},
		{errors.New(readline.ErrEOF), false, io.EOF},
	}
	for _, test := range tests {
		retry, got := readlineErr(test.in)
		if retry != test.retry || got != test.want {
			t.Fatalf("Test failed with input %v | Wanted : %v, %v | Got : %v, %v.", test.in, test.retry, test.want, retry, got)
		}
	}
	other := errors.New("broken pipe")
	if retry, got := readlineErr(other); retry || got != other {
		t.Fatalf("other errors should be passed on, got %v, %v", retry, got)
	}
}
