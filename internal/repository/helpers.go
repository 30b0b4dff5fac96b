package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/restwell/internal/domain"
)

// dateLayout stores calendar dates without a time component.
const dateLayout = "2006-01-02"

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(layout)
}

// parseClockColumn parses a stored HH:MM column.
func parseClockColumn(name, raw string) (domain.ClockTime, error) {
	c, err := domain.ParseClockTime(raw)
	if err != nil {
		return domain.ClockTime{}, fmt.Errorf("parsing %s: %w", name, err)
	}
	return c, nil
}

// requireAffected turns a zero-row write into ErrNotFound.
func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s rows affected: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
