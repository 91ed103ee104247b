package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parlance-lang/parlance/source/settings"
)

func sqliteConfig(t *testing.T, limit int) settings.HistoryConfig {
	return settings.HistoryConfig{Driver: "sqlite", Dsn: filepath.Join(t.TempDir(), "history.db"), Limit: limit}
}

func TestSqliteHistoryPersists(t *testing.T) {
	config := sqliteConfig(t, 1000)
	h, e := Open(config)
	if e != nil {
		t.Fatalf("can't open history: %v", e)
	}
	for _, line := range []string{"2 + 2", "", "'x -> 'y", "#history"} {
		if _, e := h.Write(line); e != nil {
			t.Fatalf("can't write %q: %v", line, e)
		}
	}
	if h.Len() != 3 {
		t.Fatalf("blank lines should not be kept: got %d lines", h.Len())
	}
	if e := h.Close(); e != nil {
		t.Fatal(e)
	}

	h, e = Open(config)
	if e != nil {
		t.Fatalf("can't reopen history: %v", e)
	}
	defer h.Close()
	if h.Len() != 3 {
		t.Fatalf("wanted 3 lines, got %d", h.Len())
	}
	line, e := h.GetLine(1)
	if e != nil || line != "'x -> 'y" {
		t.Fatalf("wanted 'x -> 'y, got %q (%v)", line, e)
	}
	if last := h.Last(1); len(last) != 1 || last[0].Line != "#history" {
		t.Fatalf("wrong last line: %+v", last)
	}
}

func TestSqliteHistoryLimit(t *testing.T) {
	config := sqliteConfig(t, 2)
	h, e := Open(config)
	if e != nil {
		t.Fatal(e)
	}
	for _, line := range []string{"1", "2", "3"} {
		h.Write(line)
	}
	h.Close()
	h, e = Open(config)
	if e != nil {
		t.Fatal(e)
	}
	defer h.Close()
	if h.Len() != 2 {
		t.Fatalf("wanted 2 lines, got %d", h.Len())
	}
	if first, _ := h.GetLine(0); first != "2" {
		t.Fatalf("the oldest lines should be dropped, got %q first", first)
	}
}

func TestMemoryHistory(t *testing.T) {
	h, e := Open(settings.HistoryConfig{Driver: MEMORY})
	if e != nil {
		t.Fatal(e)
	}
	if n, _ := h.Write("1 !!\n"); n != 1 {
		t.Fatalf("wanted 1 line, got %d", n)
	}
	if line, _ := h.GetLine(0); line != "1 !!" {
		t.Fatalf("trailing newline should be trimmed, got %q", line)
	}
	if _, e := h.GetLine(1); e == nil {
		t.Fatalf("expected an error for a line out of range")
	}
	if entries, ok := h.Dump().([]Entry); !ok || len(entries) != 1 {
		t.Fatalf("bad dump: %#v", h.Dump())
	}
	if len(h.Last(5)) != 1 || len(h.Last(-1)) != 0 {
		t.Fatalf("Last should clamp its argument")
	}
}

func TestOpenOrMemoryFallsBack(t *testing.T) {
	h := OpenOrMemory(settings.HistoryConfig{Driver: "carrier-pigeon"})
	if h.Driver() != MEMORY {
		t.Fatalf("wanted a history in memory, got %s", h.Driver())
	}
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if e := os.WriteFile(blocker, nil, 0644); e != nil {
		t.Fatal(e)
	}
	h = OpenOrMemory(settings.HistoryConfig{Driver: "sqlite", Dsn: filepath.Join(blocker, "h.db")})
	if h.Driver() != MEMORY {
		t.Fatalf("wanted a history in memory for an unopenable file, got %s", h.Driver())
	}
}

func TestDefaultHistoryOnFreshHome(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	config, e := settings.ParseConfig(nil)
	if e != nil {
		t.Fatal(e)
	}
	h, e := Open(config.History)
	if e != nil {
		t.Fatalf("can't open the default history: %v", e)
	}
	defer h.Close()
	if h.Driver() != "sqlite" {
		t.Fatalf("wanted sqlite history, got %s", h.Driver())
	}
	if _, e := os.Stat(config.History.Dsn); e != nil {
		t.Fatalf("history file wasn't created: %v", e)
	}
}
