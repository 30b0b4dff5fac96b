package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_LegacyToCurrentSchema simulates upgrading a
// database created before diary notes and completion stamps existed.
// Verifies that:
// 1. Rows inserted under the old schema survive migration
// 2. New columns are added with correct defaults
// 3. Finished modules get a completion stamp backfilled
func TestMigrate_UpgradePath_LegacyToCurrentSchema(t *testing.T) {
	db, err := sql.Open("sqlite", MemoryPath)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	legacy := []string{
		`CREATE TABLE diary_entries (
			id              TEXT PRIMARY KEY,
			night_of        TEXT NOT NULL,
			bed_time        TEXT NOT NULL,
			sleep_time      TEXT NOT NULL,
			wake_time       TEXT NOT NULL,
			out_of_bed_time TEXT NOT NULL,
			night_wakeups   INTEGER NOT NULL DEFAULT 0,
			wake_minutes    INTEGER NOT NULL DEFAULT 0,
			quality         INTEGER NOT NULL,
			created_at      TEXT NOT NULL
		)`,
		`CREATE TABLE learning_progress (
			module_id  INTEGER PRIMARY KEY,
			percent    INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT NOT NULL
		)`,
		`INSERT INTO diary_entries (id, night_of, bed_time, sleep_time, wake_time, out_of_bed_time, quality, created_at)
		 VALUES ('legacy-1', '2025-01-02', '23:00', '23:20', '06:30', '06:45', 2, '2025-01-03T07:00:00Z')`,
		`INSERT INTO learning_progress (module_id, percent, updated_at) VALUES (1, 100, '2025-01-05T10:00:00Z')`,
		`INSERT INTO learning_progress (module_id, percent, updated_at) VALUES (2, 40, '2025-01-06T10:00:00Z')`,
	}
	for _, stmt := range legacy {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(db))

	var note string
	var quality int
	err = db.QueryRow(`SELECT note, quality FROM diary_entries WHERE id = 'legacy-1'`).Scan(&note, &quality)
	require.NoError(t, err)
	assert.Equal(t, "", note)
	assert.Equal(t, 2, quality)

	var done sql.NullString
	require.NoError(t, db.QueryRow(`SELECT completed_at FROM learning_progress WHERE module_id = 1`).Scan(&done))
	assert.True(t, done.Valid)
	assert.Equal(t, "2025-01-05T10:00:00Z", done.String)

	var partial sql.NullString
	require.NoError(t, db.QueryRow(`SELECT completed_at FROM learning_progress WHERE module_id = 2`).Scan(&partial))
	assert.False(t, partial.Valid)

	// A second pass leaves everything in place.
	require.NoError(t, Migrate(db))
}
