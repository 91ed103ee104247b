package database

// The REPL's line history, kept in whatever SQL database the user's config names, or in
// memory if it names none or the database can't be opened.

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/parlance-lang/parlance/source/settings"

	// SQL drivers

	_ "github.com/go-sql-driver/mysql"  // MariaDB & MySQL
	_ "github.com/lib/pq"               // Postgres
	_ "github.com/microsoft/go-mssqldb" // SQL Server
	_ "github.com/nakagami/firebirdsql" // Firebird
	_ "github.com/sijms/go-ora"         // Oracle
	_ "modernc.org/sqlite"              // SQLite
)

const MEMORY = "none"

// The names in the config file, and the names the drivers register themselves under.
var drivers = map[string]string{"firebird": "firebirdsql", "mysql": "mysql", "oracle": "oracle",
	"postgres": "postgres", "sqlite": "sqlite", "sqlserver": "sqlserver"}

// No dialect agrees with any other about auto-incrementing keys or about IF NOT EXISTS,
// so we find out whether the table exists by querying it, and create it if not.
var createTable = map[string]string{
	"firebird":  `CREATE TABLE history (id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY, line BLOB SUB_TYPE TEXT NOT NULL, entered_at BIGINT NOT NULL)`,
	"mysql":     `CREATE TABLE history (id BIGINT AUTO_INCREMENT PRIMARY KEY, line TEXT NOT NULL, entered_at BIGINT NOT NULL)`,
	"oracle":    `CREATE TABLE history (id NUMBER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY, line CLOB NOT NULL, entered_at NUMBER(19) NOT NULL)`,
	"postgres":  `CREATE TABLE history (id BIGSERIAL PRIMARY KEY, line TEXT NOT NULL, entered_at BIGINT NOT NULL)`,
	"sqlite":    `CREATE TABLE history (id INTEGER PRIMARY KEY, line TEXT NOT NULL, entered_at INTEGER NOT NULL)`,
	"sqlserver": `CREATE TABLE history (id BIGINT IDENTITY PRIMARY KEY, line NVARCHAR(MAX) NOT NULL, entered_at BIGINT NOT NULL)`,
}

type Entry struct {
	Line      string
	EnteredAt time.Time
}

// Satisfies the History interface of the readline package. Every line is cached in
// memory, and also written to the database if there is one.
type History struct {
	driver  string
	db      *sql.DB
	entries []Entry
}

func NewInMemory() *History {
	return &History{driver: MEMORY}
}

// Opens the history described by the config, loading at most config.Limit of the most
// recent lines.
func Open(config settings.HistoryConfig) (*History, error) {
	if config.Driver == MEMORY || config.Driver == "" {
		return NewInMemory(), nil
	}
	driverName, ok := drivers[config.Driver]
	if !ok {
		return nil, errors.Errorf("unknown history driver %q", config.Driver)
	}
	if config.Driver == "sqlite" && config.Dsn != ":memory:" && !strings.HasPrefix(config.Dsn, "file:") {
		if e := os.MkdirAll(filepath.Dir(config.Dsn), 0755); e != nil {
			return nil, errors.Wrap(e, "making the directory for sqlite history")
		}
	}
	db, e := sql.Open(driverName, config.Dsn)
	if e != nil {
		return nil, errors.Wrapf(e, "opening %s history", config.Driver)
	}
	if e := db.Ping(); e != nil {
		db.Close()
		return nil, errors.Wrapf(e, "connecting to %s history", config.Driver)
	}
	h := &History{driver: config.Driver, db: db}
	if e := h.ensureTable(); e != nil {
		db.Close()
		return nil, e
	}
	if e := h.load(config.Limit); e != nil {
		db.Close()
		return nil, e
	}
	log.Info().Str("driver", config.Driver).Int("lines", len(h.entries)).Msg("opened history")
	return h, nil
}

// As Open, except that failure gives a history in memory.
func OpenOrMemory(config settings.HistoryConfig) *History {
	h, e := Open(config)
	if e != nil {
		log.Warn().Err(e).Msg("keeping history in memory")
		return NewInMemory()
	}
	return h
}

func (h *History) ensureTable() error {
	if _, e := h.db.Exec(`SELECT COUNT(*) FROM history`); e == nil {
		return nil
	}
	if _, e := h.db.Exec(createTable[h.driver]); e != nil {
		return errors.Wrap(e, "creating history table")
	}
	return nil
}

func (h *History) load(limit int) error {
	rows, e := h.db.Query(`SELECT line, entered_at FROM history ORDER BY id DESC`)
	if e != nil {
		return errors.Wrap(e, "reading history")
	}
	defer rows.Close()
	newestFirst := []Entry{}
	for rows.Next() && (limit <= 0 || len(newestFirst) < limit) {
		var line string
		var nanos int64
		if e := rows.Scan(&line, &nanos); e != nil {
			return errors.Wrap(e, "reading history")
		}
		newestFirst = append(newestFirst, Entry{Line: line, EnteredAt: time.Unix(0, nanos)})
	}
	if e := rows.Err(); e != nil {
		return errors.Wrap(e, "reading history")
	}
	h.entries = make([]Entry, len(newestFirst))
	for i, entry := range newestFirst {
		h.entries[len(newestFirst)-1-i] = entry
	}
	return nil
}

func (h *History) Driver() string {
	return h.driver
}

// Adds a line, returning the new number of lines. Failing to write to the database loses
// the line from the database but not from the session.
func (h *History) Write(line string) (int, error) {
	line = strings.TrimRight(line, "\n")
	if strings.TrimSpace(line) == "" {
		return len(h.entries), nil
	}
	entry := Entry{Line: line, EnteredAt: time.Now()}
	h.entries = append(h.entries, entry)
	if h.db != nil {
		query := fmt.Sprintf(`INSERT INTO history (line, entered_at) VALUES (%s, %s)`,
			h.placeholder(1), h.placeholder(2))
		if _, e := h.db.Exec(query, entry.Line, entry.EnteredAt.UnixNano()); e != nil {
			log.Warn().Err(e).Str("driver", h.driver).Msg("couldn't save history")
			return len(h.entries), errors.Wrap(e, "saving history")
		}
	}
	return len(h.entries), nil
}

func (h *History) placeholder(i int) string {
	switch h.driver {
	case "postgres":
		return fmt.Sprintf("$%d", i)
	case "oracle":
		return fmt.Sprintf(":%d", i)
	case "sqlserver":
		return fmt.Sprintf("@p%d", i)
	}
	return "?"
}

func (h *History) GetLine(i int) (string, error) {
	if i < 0 || i >= len(h.entries) {
		return "", errors.Errorf("history has no line %d", i)
	}
	return h.entries[i].Line, nil
}

func (h *History) Len() int {
	return len(h.entries)
}

func (h *History) Dump() interface{} {
	return h.Last(len(h.entries))
}

// The last n entries, oldest first.
func (h *History) Last(n int) []Entry {
	if n > len(h.entries) {
		n = len(h.entries)
	}
	if n < 0 {
		n = 0
	}
	return append([]Entry{}, h.entries[len(h.entries)-n:]...)
}

func (h *History) Close() error {
	if h.db == nil {
		return nil
	}
	log.Info().Str("driver", h.driver).Msg("closing history")
	return h.db.Close()
}
