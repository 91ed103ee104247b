package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parlance-lang/parlance/source/settings"
)

func TestRunExitStatus(t *testing.T) {
	t.Setenv(settings.CONFIG_ENV, "")
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	good := filepath.Join(dir, "good.par")
	if e := os.WriteFile(good, []byte("#0 == \"x\", ~ ~.\n"), 0644); e != nil {
		t.Fatal(e)
	}
	bad := filepath.Join(dir, "bad.par")
	if e := os.WriteFile(bad, []byte("(1 + 1\n"), 0644); e != nil {
		t.Fatal(e)
	}
	tests := []struct {
		args []string
		want int
	}{
		{[]string{"--version"}, 0},
		{[]string{"--no-such-flag"}, 2},
		{[]string{"--log-level", "loud", good}, 1},
		{[]string{"--config", filepath.Join(dir, "missing.yaml"), good}, 1},
		{[]string{good, "x"}, 0},
		{[]string{"--log-level", "debug", good, "--not-a-flag"}, 0},
		{[]string{bad}, 1},
		{[]string{filepath.Join(dir, "nope.par")}, 1},
	}
	for _, test := range tests {
		if got := run(test.args); got != test.want {
			t.Fatalf("Test failed with input %v | Wanted : %d | Got : %d.", test.args, test.want, got)
		}
	}
}
