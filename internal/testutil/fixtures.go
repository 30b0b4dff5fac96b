package testutil

import (
	"time"

	"github.com/alexanderramin/restwell/internal/domain"
	"github.com/google/uuid"
)

// DiaryEntry options
type DiaryOption func(*domain.DiaryEntry)

func WithTimes(bed, asleep, wake, out string) DiaryOption {
	return func(e *domain.DiaryEntry) {
		e.BedTime = domain.MustClockTime(bed)
		e.SleepTime = domain.MustClockTime(asleep)
		e.WakeTime = domain.MustClockTime(wake)
		e.OutOfBedTime = domain.MustClockTime(out)
	}
}

func WithWakeups(count, minutes int) DiaryOption {
	return func(e *domain.DiaryEntry) {
		e.NightWakeups = count
		e.WakeMinutes = minutes
	}
}

func WithQuality(q domain.SleepQuality) DiaryOption {
	return func(e *domain.DiaryEntry) {
		e.Quality = q
	}
}

func WithNote(note string) DiaryOption {
	return func(e *domain.DiaryEntry) {
		e.Note = note
	}
}

func WithCreatedAt(t time.Time) DiaryOption {
	return func(e *domain.DiaryEntry) {
		e.CreatedAt = t.UTC().Truncate(time.Second)
	}
}

// NewTestDiaryEntry returns an entry with the form defaults for nightOf.
func NewTestDiaryEntry(nightOf time.Time, opts ...DiaryOption) *domain.DiaryEntry {
	e := domain.DefaultDiaryEntry(nightOf)
	e.ID = uuid.New().String()
	e.CreatedAt = nightOf.UTC().Add(9 * time.Hour).Truncate(time.Second)
	for _, opt := range opts {
		opt(&e)
	}
	return &e
}

// NewTestProgress returns stored progress for moduleID at pct.
func NewTestProgress(moduleID, pct int, at time.Time) *domain.ModuleProgress {
	p := &domain.ModuleProgress{ModuleID: moduleID}
	p.Advance(pct, at.UTC().Truncate(time.Second))
	return p
}
