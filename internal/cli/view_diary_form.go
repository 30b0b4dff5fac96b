package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/restwell/internal/cli/formatter"
	"github.com/alexanderramin/restwell/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// diaryFormFields holds form-bound values for the diary wizard.
type diaryFormFields struct {
	night   string
	bed     string
	asleep  string
	wake    string
	out     string
	wakeups string
	awake   string
	quality domain.SleepQuality
	note    string
}

// defaultDiaryFields pre-fills the form for last night.
func defaultDiaryFields(now time.Time) *diaryFormFields {
	d := domain.DefaultDiaryEntry(now.AddDate(0, 0, -1))
	return &diaryFormFields{
		night:   d.NightOf.Format(dateLayout),
		bed:     d.BedTime.String(),
		asleep:  d.SleepTime.String(),
		wake:    d.WakeTime.String(),
		out:     d.OutOfBedTime.String(),
		wakeups: strconv.Itoa(d.NightWakeups),
		awake:   strconv.Itoa(d.WakeMinutes),
		quality: d.Quality,
	}
}

// entry converts the form values into a diary entry.
func (f *diaryFormFields) entry() (*domain.DiaryEntry, error) {
	night, err := time.Parse(dateLayout, f.night)
	if err != nil {
		return nil, fmt.Errorf("night: use YYYY-MM-DD format")
	}
	e := &domain.DiaryEntry{
		NightOf:      night,
		NightWakeups: parseNonNegativeInt(f.wakeups, 0),
		WakeMinutes:  parseNonNegativeInt(f.awake, 0),
		Quality:      f.quality,
		Note:         strings.TrimSpace(f.note),
	}
	for _, c := range []struct {
		dst *domain.ClockTime
		src string
	}{
		{&e.BedTime, f.bed},
		{&e.SleepTime, f.asleep},
		{&e.WakeTime, f.wake},
		{&e.OutOfBedTime, f.out},
	} {
		if *c.dst, err = domain.ParseClockTime(c.src); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// applyDiaryForm logs the entry and reports the night's efficiency.
func applyDiaryForm(app *App, f *diaryFormFields) tea.Msg {
	e, err := f.entry()
	if err != nil {
		return errorOutput(err)
	}
	if err := app.Diary.Log(context.Background(), e); err != nil {
		return errorOutput(err)
	}
	eff := e.SleepEfficiency()
	return successOutput(fmt.Sprintf("Logged %s: %s asleep, efficiency %s",
		formatter.Bold(e.NightOf.Format("Mon Jan 2")),
		formatter.FormatMinutes(e.SleepMinutes()),
		formatter.EfficiencyStyle(eff).Render(fmt.Sprintf("%d%%", eff))))
}

// newDiaryFormView creates the wizard for logging one night.
func newDiaryFormView(state *SharedState) View {
	f := defaultDiaryFields(state.Now())

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Night of (YYYY-MM-DD)").
				Value(&f.night).
				Validate(validateDate),
			huh.NewInput().
				Title("Went to bed").
				Placeholder("23:00").
				Value(&f.bed).
				Validate(validateClockTime),
			huh.NewInput().
				Title("Fell asleep").
				Placeholder("23:30").
				Value(&f.asleep).
				Validate(validateClockTime),
			huh.NewInput().
				Title("Woke up").
				Placeholder("06:30").
				Value(&f.wake).
				Validate(validateClockTime),
			huh.NewInput().
				Title("Got out of bed").
				Placeholder("07:00").
				Value(&f.out).
				Validate(validateClockTime),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Night wakeups").
				Value(&f.wakeups).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("Minutes awake during the night").
				Value(&f.awake).
				Validate(validateNonNegativeInt),
			huh.NewSelect[domain.SleepQuality]().
				Title("Sleep quality").
				Options(qualityOptions()...).
				Value(&f.quality),
			huh.NewText().
				Title("Notes (optional)").
				Value(&f.note),
		),
	).WithTheme(restwellHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		return func() tea.Msg { return applyDiaryForm(state.App, f) }
	}
	return newWizardView(state, "Log Night", form, done)
}
