package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseConfig(t *testing.T) {
	config, e := ParseConfig([]byte("prompt: \"? \"\nlog_level: debug\nhistory:\n  driver: none\n"))
	if e != nil {
		t.Fatalf("unexpected error: %v", e)
	}
	if config.Prompt != "? " {
		t.Fatalf("prompt wrong: got %q", config.Prompt)
	}
	if config.History.Driver != "none" || config.History.Limit != 1000 {
		t.Fatalf("history config wrong: got %+v", config.History)
	}
	level, _ := config.Level()
	if level != zerolog.DebugLevel {
		t.Fatalf("level wrong: got %v", level)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	config, e := ParseConfig(nil)
	if e != nil {
		t.Fatalf("unexpected error: %v", e)
	}
	if config.Prompt != ">> " || config.History.Driver != "sqlite" {
		t.Fatalf("defaults wrong: got %+v", config)
	}
	if filepath.Base(config.History.Dsn) != "history.db" {
		t.Fatalf("sqlite history should default to history.db, got %q", config.History.Dsn)
	}
}

func TestParseConfigBadLevel(t *testing.T) {
	if _, e := ParseConfig([]byte("log_level: loud\n")); e == nil {
		t.Fatalf("expected an error for a bad log level")
	}
}

func TestLoadConfigMissing(t *testing.T) {
	t.Setenv(CONFIG_ENV, "")
	t.Setenv("HOME", t.TempDir())
	config, e := LoadConfig("")
	if e != nil {
		t.Fatalf("a missing default config file should not be an error: %v", e)
	}
	if config.LogLevel != "warn" {
		t.Fatalf("expected defaults, got %+v", config)
	}
	if _, e := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); e == nil {
		t.Fatalf("a missing explicit config file should be an error")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if e := os.WriteFile(path, []byte("width: 60\n"), 0644); e != nil {
		t.Fatal(e)
	}
	t.Setenv(CONFIG_ENV, path)
	config, e := LoadConfig("")
	if e != nil {
		t.Fatalf("unexpected error: %v", e)
	}
	if config.Width != 60 {
		t.Fatalf("width wrong: got %d", config.Width)
	}
}

func TestTracingIsOff(t *testing.T) {
	if SHOW_LEXER || SHOW_EVALUATOR || SHOW_REGISTRY || SHOW_TESTS {
		t.Fatalf("the SHOW_ switches should all be off")
	}
}
