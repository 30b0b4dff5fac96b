package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

var pragmas = []struct {
	stmt string
	desc string
}{
	// WAL gives readers (CLI) and the TUI a consistent view while writing.
	{"PRAGMA journal_mode = WAL", "setting WAL mode"},
	{"PRAGMA foreign_keys = ON", "enabling foreign keys"},
	{"PRAGMA busy_timeout = 5000", "setting busy timeout"},
}

// OpenDB opens the restwell SQLite database at path, creating its directory
// when needed, applies connection pragmas and runs migrations.
func OpenDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == MemoryPath {
		// Each pooled connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p.desc, err)
		}
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}
