package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillCompletedAt(db); err != nil {
		return fmt.Errorf("backfilling learning completion: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS diary_entries (
		id              TEXT PRIMARY KEY,
		night_of        TEXT NOT NULL,
		bed_time        TEXT NOT NULL,
		sleep_time      TEXT NOT NULL,
		wake_time       TEXT NOT NULL,
		out_of_bed_time TEXT NOT NULL,
		night_wakeups   INTEGER NOT NULL DEFAULT 0 CHECK(night_wakeups >= 0),
		wake_minutes    INTEGER NOT NULL DEFAULT 0 CHECK(wake_minutes >= 0),
		quality         INTEGER NOT NULL CHECK(quality BETWEEN 0 AND 4),
		created_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_diary_entries_night ON diary_entries(night_of)`,

	`CREATE TABLE IF NOT EXISTS learning_progress (
		module_id    INTEGER PRIMARY KEY,
		percent      INTEGER NOT NULL DEFAULT 0 CHECK(percent BETWEEN 0 AND 100),
		updated_at   TEXT NOT NULL
	)`,

	// Free-text note on diary entries
	`ALTER TABLE diary_entries ADD COLUMN note TEXT NOT NULL DEFAULT ''`,

	// Completion stamp on learning progress
	`ALTER TABLE learning_progress ADD COLUMN completed_at TEXT`,
}

// migrateBackfillCompletedAt stamps completed_at on modules that reached
// 100% before the column existed, using their last update time.
// Idempotent: only rows with a NULL stamp are touched.
func migrateBackfillCompletedAt(db *sql.DB) error {
	ctx := context.Background()
	res, err := db.ExecContext(ctx,
		`UPDATE learning_progress SET completed_at = updated_at
		 WHERE percent = 100 AND completed_at IS NULL`)
	if err != nil {
		return fmt.Errorf("updating learning_progress: %w", err)
	}
	if _, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("counting backfilled rows: %w", err)
	}
	return nil
}
