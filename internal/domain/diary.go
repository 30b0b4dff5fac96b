package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SleepEfficiencyTarget is the CBT-I efficiency goal, in percent.
const SleepEfficiencyTarget = 85

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ClockTime is a wall-clock time of day with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "H:MM" or "HH:MM". Out-of-range components are
// clamped (hour to 0..23, minute to 0..59) rather than rejected.
func ParseClockTime(s string) (ClockTime, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return ClockTime{}, fmt.Errorf("%w: %q (want HH:MM)", ErrInvalidClockTime, s)
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	return ClockTime{Hour: clamp(h, 0, 23), Minute: clamp(min, 0, 59)}, nil
}

// MustClockTime is ParseClockTime for literals known to be valid.
func MustClockTime(s string) ClockTime {
	c, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// minutesOfDay returns minutes since midnight.
func (c ClockTime) minutesOfDay() int {
	return c.Hour*60 + c.Minute
}

// DiaryEntry is one night recorded in the sleep diary.
type DiaryEntry struct {
	ID           string
	NightOf      time.Time // date the night started, midnight UTC
	BedTime      ClockTime
	SleepTime    ClockTime
	WakeTime     ClockTime
	OutOfBedTime ClockTime
	NightWakeups int
	WakeMinutes  int
	Quality      SleepQuality
	Note         string
	CreatedAt    time.Time
}

// Validate checks the entry's counters and rating.
func (e *DiaryEntry) Validate() error {
	if e.NightWakeups < 0 {
		return fmt.Errorf("%w: night wakeups must not be negative", ErrInvalidDiaryEntry)
	}
	if e.WakeMinutes < 0 {
		return fmt.Errorf("%w: awake minutes must not be negative", ErrInvalidDiaryEntry)
	}
	if !e.Quality.Valid() {
		return fmt.Errorf("%w: quality %d is outside 0..4", ErrInvalidDiaryEntry, e.Quality)
	}
	return nil
}

// TimeInBedMinutes is the span from bed time to wake time. A wake time at or
// before bed time is taken to be on the following day. Never less than 1.
func (e *DiaryEntry) TimeInBedMinutes() int {
	bed := e.BedTime.minutesOfDay()
	wake := e.WakeTime.minutesOfDay()
	if wake <= bed {
		wake += 24 * 60
	}
	if d := wake - bed; d > 1 {
		return d
	}
	return 1
}

// SleepMinutes is time in bed minus time spent awake, floored at zero.
func (e *DiaryEntry) SleepMinutes() int {
	awake := e.WakeMinutes
	if awake < 0 {
		awake = 0
	}
	if s := e.TimeInBedMinutes() - awake; s > 0 {
		return s
	}
	return 0
}

// SleepEfficiency is sleep time over time in bed, as a 0..100 percentage.
func (e *DiaryEntry) SleepEfficiency() int {
	tib := e.TimeInBedMinutes()
	eff := int(math.Round(float64(e.SleepMinutes()) / float64(tib) * 100))
	return clamp(eff, 0, 100)
}

// DefaultDiaryEntry returns the form defaults for a new entry.
func DefaultDiaryEntry(nightOf time.Time) DiaryEntry {
	return DiaryEntry{
		NightOf:      TruncateToDate(nightOf),
		BedTime:      MustClockTime("23:00"),
		SleepTime:    MustClockTime("23:30"),
		WakeTime:     MustClockTime("06:30"),
		OutOfBedTime: MustClockTime("07:00"),
		NightWakeups: 1,
		WakeMinutes:  15,
		Quality:      QualityVeryGood,
	}
}

// TruncateToDate drops the time-of-day component, keeping the calendar date
// in t's location and returning it as midnight UTC.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DiarySummary aggregates diary entries over a window.
type DiarySummary struct {
	Days              int
	Entries           int
	AverageEfficiency int
	AverageQuality    float64
	MeetsTarget       bool
}

// SummarizeDiary computes averages over entries. An empty slice yields a
// zero summary that does not meet the target.
func SummarizeDiary(days int, entries []*DiaryEntry) DiarySummary {
	sum := DiarySummary{Days: days, Entries: len(entries)}
	if len(entries) == 0 {
		return sum
	}
	var effTotal, qualTotal int
	for _, e := range entries {
		effTotal += e.SleepEfficiency()
		qualTotal += int(e.Quality)
	}
	sum.AverageEfficiency = int(math.Round(float64(effTotal) / float64(len(entries))))
	sum.AverageQuality = float64(qualTotal) / float64(len(entries))
	sum.MeetsTarget = sum.AverageEfficiency >= SleepEfficiencyTarget
	return sum
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
