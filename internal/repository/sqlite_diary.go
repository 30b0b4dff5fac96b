package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/restwell/internal/db"
	"github.com/alexanderramin/restwell/internal/domain"
)

const diaryColumns = `id, night_of, bed_time, sleep_time, wake_time, out_of_bed_time,
	night_wakeups, wake_minutes, quality, note, created_at`

// SQLiteDiaryRepo implements DiaryRepo using a SQLite database.
type SQLiteDiaryRepo struct {
	db db.DBTX
}

// NewSQLiteDiaryRepo creates a new SQLiteDiaryRepo.
func NewSQLiteDiaryRepo(conn db.DBTX) *SQLiteDiaryRepo {
	return &SQLiteDiaryRepo{db: conn}
}

func (r *SQLiteDiaryRepo) Create(ctx context.Context, e *domain.DiaryEntry) error {
	query := `INSERT INTO diary_entries (` + diaryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.NightOf.Format(dateLayout),
		e.BedTime.String(),
		e.SleepTime.String(),
		e.WakeTime.String(),
		e.OutOfBedTime.String(),
		e.NightWakeups,
		e.WakeMinutes,
		int(e.Quality),
		e.Note,
		e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting diary entry: %w", err)
	}
	return nil
}

func (r *SQLiteDiaryRepo) GetByID(ctx context.Context, id string) (*domain.DiaryEntry, error) {
	query := `SELECT ` + diaryColumns + ` FROM diary_entries WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanEntry(row)
}

func (r *SQLiteDiaryRepo) ListSince(ctx context.Context, since time.Time) ([]*domain.DiaryEntry, error) {
	query := `SELECT ` + diaryColumns + ` FROM diary_entries
		WHERE night_of >= ?
		ORDER BY night_of DESC, created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, since.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing diary entries: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteDiaryRepo) Update(ctx context.Context, e *domain.DiaryEntry) error {
	query := `UPDATE diary_entries SET night_of = ?, bed_time = ?, sleep_time = ?, wake_time = ?,
		out_of_bed_time = ?, night_wakeups = ?, wake_minutes = ?, quality = ?, note = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.NightOf.Format(dateLayout),
		e.BedTime.String(),
		e.SleepTime.String(),
		e.WakeTime.String(),
		e.OutOfBedTime.String(),
		e.NightWakeups,
		e.WakeMinutes,
		int(e.Quality),
		e.Note,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating diary entry: %w", err)
	}
	return requireAffected(res, "diary entry")
}

func (r *SQLiteDiaryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM diary_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting diary entry: %w", err)
	}
	return requireAffected(res, "diary entry")
}

// rawEntry holds the string columns of a diary row before parsing.
type rawEntry struct {
	nightOf, bed, asleep, wake, out, createdAt string
	quality                                    int
}

func (r *SQLiteDiaryRepo) scanEntry(row *sql.Row) (*domain.DiaryEntry, error) {
	var e domain.DiaryEntry
	var raw rawEntry
	err := row.Scan(
		&e.ID, &raw.nightOf, &raw.bed, &raw.asleep, &raw.wake, &raw.out,
		&e.NightWakeups, &e.WakeMinutes, &raw.quality, &e.Note, &raw.createdAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("diary entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning diary entry: %w", err)
	}
	return r.populateEntry(&e, raw)
}

func (r *SQLiteDiaryRepo) scanEntries(rows *sql.Rows) ([]*domain.DiaryEntry, error) {
	var entries []*domain.DiaryEntry
	for rows.Next() {
		var e domain.DiaryEntry
		var raw rawEntry
		err := rows.Scan(
			&e.ID, &raw.nightOf, &raw.bed, &raw.asleep, &raw.wake, &raw.out,
			&e.NightWakeups, &e.WakeMinutes, &raw.quality, &e.Note, &raw.createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning diary row: %w", err)
		}
		entry, parseErr := r.populateEntry(&e, raw)
		if parseErr != nil {
			return nil, parseErr
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating diary entries: %w", err)
	}
	return entries, nil
}

// populateEntry fills in parsed fields on a DiaryEntry after scanning raw strings.
func (r *SQLiteDiaryRepo) populateEntry(e *domain.DiaryEntry, raw rawEntry) (*domain.DiaryEntry, error) {
	var err error
	if e.NightOf, err = time.Parse(dateLayout, raw.nightOf); err != nil {
		return nil, fmt.Errorf("parsing night_of: %w", err)
	}
	if e.BedTime, err = parseClockColumn("bed_time", raw.bed); err != nil {
		return nil, err
	}
	if e.SleepTime, err = parseClockColumn("sleep_time", raw.asleep); err != nil {
		return nil, err
	}
	if e.WakeTime, err = parseClockColumn("wake_time", raw.wake); err != nil {
		return nil, err
	}
	if e.OutOfBedTime, err = parseClockColumn("out_of_bed_time", raw.out); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339, raw.createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	e.Quality = domain.SleepQuality(raw.quality)
	return e, nil
}
