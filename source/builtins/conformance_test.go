package builtins_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/parlance-lang/parlance/source/builtins"
	"github.com/parlance-lang/parlance/source/test_helper"
)

const CONFORMANCE_PATH = "testdata/conformance"

// A file of conformance cases. The setup code, if any, is run before each case in the
// same environment.
type conformanceSuite struct {
	Name  string            `yaml:"name"`
	Setup string            `yaml:"setup,omitempty"`
	Tests []conformanceCase `yaml:"tests"`
}

// A case expects either an error id, or a value as the REPL would show it and/or what
// the code prints.
type conformanceCase struct {
	Name   string  `yaml:"name"`
	Code   string  `yaml:"code"`
	Want   *string `yaml:"want,omitempty"`
	Output *string `yaml:"output,omitempty"`
	Error  string  `yaml:"error,omitempty"`
}

func loadConformanceSuites(t *testing.T) []conformanceSuite {
	paths, e := filepath.Glob(filepath.Join(CONFORMANCE_PATH, "*.yaml"))
	if e != nil {
		t.Fatal(e)
	}
	suites := []conformanceSuite{}
	for _, path := range paths {
		data, e := os.ReadFile(path)
		if e != nil {
			t.Fatal(e)
		}
		var suite conformanceSuite
		if e := yaml.Unmarshal(data, &suite); e != nil {
			t.Fatalf("can't parse %s: %v", path, e)
		}
		suites = append(suites, suite)
	}
	return suites
}

func TestConformance(t *testing.T) {
	suites := loadConformanceSuites(t)
	if len(suites) == 0 {
		t.Fatal("no conformance suites found")
	}
	for _, suite := range suites {
		t.Run(suite.Name, func(t *testing.T) {
			for _, tc := range suite.Tests {
				t.Run(tc.Name, func(t *testing.T) {
					runConformanceCase(t, suite.Setup, tc)
				})
			}
		})
	}
}

func runConformanceCase(t *testing.T, setup string, tc conformanceCase) {
	out := &bytes.Buffer{}
	env := builtins.NewEnvironment(out)
	if setup != "" {
		if _, e := test_helper.Evaluate(env, setup); e != nil {
			t.Fatalf("setup failed: %v", e)
		}
		out.Reset()
	}
	got, e := test_helper.Evaluate(env, tc.Code)
	if tc.Error != "" {
		if e == nil {
			t.Fatalf("%s: wanted error %s, got %s", tc.Code, tc.Error, got)
		}
		if id := test_helper.ErrorId(e); id != tc.Error {
			t.Fatalf("%s: wanted error %s, got %s (%v)", tc.Code, tc.Error, id, e)
		}
		return
	}
	if e != nil {
		t.Fatalf("%s: unexpected error %v", tc.Code, e)
	}
	if tc.Want != nil && got != *tc.Want {
		t.Fatalf("%s: wanted %q, got %q", tc.Code, *tc.Want, got)
	}
	if tc.Output != nil && out.String() != *tc.Output {
		t.Fatalf("%s: wanted output %q, got %q", tc.Code, *tc.Output, out.String())
	}
}
