package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/restwell/internal/coach"
	"github.com/alexanderramin/restwell/internal/domain"
	"github.com/alexanderramin/restwell/internal/repository"
	"github.com/alexanderramin/restwell/internal/service"
	"github.com/alexanderramin/restwell/internal/testutil"
	"github.com/alexanderramin/restwell/internal/winddown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration
// tests. Engines run on the system clock with a 1ms session second and the
// coach replies without delay.
func testApp(t *testing.T) *App {
	t.Helper()
	app := newTestApp(t, func(opts ...winddown.Option) *winddown.Engine {
		base := []winddown.Option{winddown.WithInterval(time.Millisecond)}
		return winddown.NewEngine(winddown.SystemClock{}, append(base, opts...)...)
	})
	return app
}

// testAppWithClock is testApp with engines on a shared ManualClock, so TUI
// tests decide exactly when session seconds pass.
func testAppWithClock(t *testing.T) (*App, *winddown.ManualClock) {
	t.Helper()
	clock := winddown.NewManualClock(time.Date(2025, 6, 15, 22, 0, 0, 0, time.UTC))
	app := newTestApp(t, func(opts ...winddown.Option) *winddown.Engine {
		return winddown.NewEngine(clock, opts...)
	})
	return app, clock
}

func newTestApp(t *testing.T, engines func(opts ...winddown.Option) *winddown.Engine) *App {
	t.Helper()
	db := testutil.NewTestDB(t)

	diaryRepo := repository.NewSQLiteDiaryRepo(db)
	progressRepo := repository.NewSQLiteLearningProgressRepo(db)
	uow := testutil.NewTestUoW(db)

	script, err := coach.DefaultScript()
	require.NoError(t, err)

	return &App{
		Diary:     service.NewDiaryService(diaryRepo),
		Learning:  service.NewLearningService(progressRepo, uow),
		Coach:     service.NewCoachService(coach.New(script), 0),
		NewEngine: engines,
	}
}

// seedDiary logs an entry for the night that began daysAgo days before today.
func seedDiary(t *testing.T, app *App, daysAgo int, opts ...testutil.DiaryOption) *domain.DiaryEntry {
	t.Helper()
	night := time.Now().AddDate(0, 0, -daysAgo)
	e := testutil.NewTestDiaryEntry(night, opts...)
	require.NoError(t, app.Diary.Log(context.Background(), e))
	return e
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- Root command ---

func TestRootCmd_NonInteractivePrintsHelp(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return false }

	out, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "winddown")
	assert.Contains(t, out, "diary")
	assert.Contains(t, out, "learn")
	assert.Contains(t, out, "coach")
}

func TestRootCmd_UnknownCommand(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "bogus")
	require.Error(t, err)
}

// --- Wind-down commands ---

func TestWindDownActivities(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "winddown", "activities")
	require.NoError(t, err)
	assert.Contains(t, out, "Box Breathing")
	assert.Contains(t, out, "Gratitude Journal")
	assert.Contains(t, out, "Body Scan")
}

func TestWindDownRun_SingleActivityCompletes(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "winddown", "run", "--activity", "breath", "--tick", "100us")
	require.NoError(t, err)
	assert.Contains(t, out, "Box Breathing complete")
	assert.Contains(t, out, "(1/3)")
	assert.NotContains(t, out, "Gratitude Journal complete")
}

func TestWindDownRun_RepeatedActivitiesRunInOrder(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "winddown", "run",
		"--activity", "journal", "--activity", "breathing", "--tick", "100us")
	require.NoError(t, err)

	journal := strings.Index(out, "Gratitude Journal complete")
	breath := strings.Index(out, "Box Breathing complete")
	require.NotEqual(t, -1, journal, out)
	require.NotEqual(t, -1, breath, out)
	assert.Less(t, journal, breath)
	assert.Contains(t, out, "(2/3)")
}

func TestWindDownRun_UnknownActivity(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "winddown", "run", "--activity", "yoga")
	require.Error(t, err)
	assert.ErrorContains(t, err, "unknown activity key")
}

func TestRunWindDown_StopsOnCancel(t *testing.T) {
	app, _ := testAppWithClock(t)
	engine := app.NewEngine()
	defer engine.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := runWindDown(ctx, &buf, engine, []domain.ActivityKey{domain.ActivityMeditation})
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, engine.Snapshot().Running)
}

func TestPlayActivities_IgnoresBufferedCompletion(t *testing.T) {
	app, clock := testAppWithClock(t)
	engine := app.NewEngine()
	defer engine.Close()

	// Large enough to hold every event of a full breathing run.
	events := engine.Subscribe(1024)
	require.NoError(t, engine.SwitchActivity(domain.ActivityBreathing))
	require.NoError(t, engine.ToggleRun())
	clock.Advance(240 * time.Second)
	require.True(t, engine.Snapshot().IsCompleted(domain.ActivityBreathing))

	// The earlier completion must not end the rerun; the clock never moves,
	// so only the deadline stops it.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	err := playActivities(ctx, &buf, engine, events, []domain.ActivityKey{domain.ActivityBreathing})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotContains(t, buf.String(), "Box Breathing complete")

	snap := engine.Snapshot()
	assert.True(t, snap.Running)
	assert.Equal(t, 240, snap.Remaining)
}

func TestDrainEvents(t *testing.T) {
	ch := make(chan winddown.Event, 4)
	ch <- winddown.Event{Type: winddown.EventTick}
	ch <- winddown.Event{Type: winddown.EventCompleted}
	drainEvents(ch)
	assert.Zero(t, len(ch))

	close(ch)
	drainEvents(ch)
}

func TestActivityList_Set(t *testing.T) {
	var l activityList
	require.NoError(t, l.Set("Meditation"))
	require.NoError(t, l.Set("breath,journal"))
	require.NoError(t, l.Set("meditation"))

	assert.Equal(t, activityList{domain.ActivityMeditation, domain.ActivityBreathing, domain.ActivityJournaling}, l)
	assert.Equal(t, "meditation,breathing,journaling", l.String())
	assert.Error(t, l.Set("yoga"))
}

// --- Coach commands ---

func TestCoachAsk(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "coach", "ask", "How", "can", "I", "fall", "asleep", "faster?")
	require.NoError(t, err)
	assert.Contains(t, out, "Techniques to fall asleep faster")
}

func TestCoachAsk_QuickQuestionNumber(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "coach", "ask", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Techniques to fall asleep faster")
}

func TestCoachAsk_Blank(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "coach", "ask", "   ")
	require.ErrorIs(t, err, domain.ErrEmptyMessage)
}

func TestCoachQuestions(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "coach", "questions")
	require.NoError(t, err)
	assert.Contains(t, out, "Why do I wake up at 3am?")
	assert.Contains(t, out, "What's sleep restriction therapy?")
}

// --- Diary commands ---

func TestDiaryLog_DefaultsToLastNight(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "diary", "log",
		"--bed", "22:30", "--asleep", "23:00", "--wake", "6:30", "--out", "07:00",
		"--wakeups", "2", "--awake-min", "30", "--quality", "2", "--note", "noisy street")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged")
	assert.Contains(t, out, "noisy street")

	entries, err := app.Diary.ListRecent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, domain.TruncateToDate(time.Now().AddDate(0, 0, -1)), e.NightOf)
	assert.Equal(t, "22:30", e.BedTime.String())
	assert.Equal(t, "06:30", e.WakeTime.String())
	assert.Equal(t, 2, e.NightWakeups)
	assert.Equal(t, domain.QualityGood, e.Quality)
	// 480 minutes in bed, 30 awake.
	assert.Equal(t, 94, e.SleepEfficiency())
}

func TestDiaryLog_InvalidInput(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "diary", "log", "--bed", "late")
	require.Error(t, err)

	_, err = executeCmd(t, app, "diary", "log", "--quality", "7")
	require.ErrorIs(t, err, domain.ErrInvalidDiaryEntry)

	_, err = executeCmd(t, app, "diary", "log", "--night", "yesterday")
	require.Error(t, err)
	assert.ErrorContains(t, err, "YYYY-MM-DD")
}

func TestDiaryList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "diary", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No diary entries yet")

	seedDiary(t, app, 1)
	seedDiary(t, app, 20)

	out, err = executeCmd(t, app, "diary", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Last night")
	assert.NotContains(t, out, "20 nights ago")

	out, err = executeCmd(t, app, "diary", "list", "--days", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "EFFICIENCY")
}

func TestDiaryShowAndRemove_ByPrefix(t *testing.T) {
	app := testApp(t)
	e := seedDiary(t, app, 1, testutil.WithNote("dreamt of trains"))

	out, err := executeCmd(t, app, "diary", "show", e.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "dreamt of trains")

	out, err = executeCmd(t, app, "diary", "remove", e.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted")

	_, err = executeCmd(t, app, "diary", "show", e.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = executeCmd(t, app, "diary", "remove", e.ID[:8])
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDiarySummary(t *testing.T) {
	app := testApp(t)
	seedDiary(t, app, 1)
	seedDiary(t, app, 2, testutil.WithWakeups(3, 200))

	out, err := executeCmd(t, app, "diary", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries")
	assert.Contains(t, out, "Below the 85% target.")
}

// --- Learn commands ---

func TestLearnList(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "learn", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Sleep Foundations")
	assert.Contains(t, out, "0 of 5 modules complete")
}

func TestLearnProgress_MonotonicAndReset(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "learn", "progress", "1", "--percent", "60")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "learn", "progress", "1", "--percent", "30")
	require.NoError(t, err)

	st, err := app.Learning.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 60, st.Progress.Percent)

	out, err := executeCmd(t, app, "learn", "progress", "#2")
	require.NoError(t, err)
	assert.Contains(t, out, "100%")

	out, err = executeCmd(t, app, "learn", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 5 modules complete")

	_, err = executeCmd(t, app, "learn", "reset", "2")
	require.NoError(t, err)
	ov, err := app.Learning.Overall(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, ov.Completed)
}

func TestLearnShow(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "learn", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "MODULE 1")
	assert.Contains(t, out, "Circadian rhythms")

	_, err = executeCmd(t, app, "learn", "show", "9")
	require.ErrorIs(t, err, domain.ErrUnknownModule)

	_, err = executeCmd(t, app, "learn", "show", "abc")
	require.Error(t, err)
}

func TestLearnTips(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "learn", "tips")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
