package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/restwell/internal/domain"
	"github.com/alexanderramin/restwell/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLearningService(t *testing.T) (*learningService, *recordingObserver) {
	t.Helper()
	_, _, progress, uow := setupRepos(t)
	obs := &recordingObserver{}
	svc := NewLearningService(progress, uow, obs).(*learningService)
	svc.now = func() time.Time { return fixedNow }
	return svc, obs
}

func TestLearningList_JoinsCatalog(t *testing.T) {
	svc, _ := newLearningService(t)
	ctx := context.Background()

	_, err := svc.RecordProgress(ctx, 2, 30)
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)
	for i, st := range list {
		assert.Equal(t, i+1, st.Module.ID)
		assert.Equal(t, st.Module.ID, st.Progress.ModuleID)
	}
	assert.Equal(t, 0, list[0].Progress.Percent)
	assert.Equal(t, 30, list[1].Progress.Percent)
}

func TestRecordProgress_Monotonic(t *testing.T) {
	svc, obs := newLearningService(t)
	ctx := context.Background()

	st, err := svc.RecordProgress(ctx, 1, 60)
	require.NoError(t, err)
	assert.Equal(t, 60, st.Progress.Percent)

	st, err = svc.RecordProgress(ctx, 1, 25)
	require.NoError(t, err)
	assert.Equal(t, 60, st.Progress.Percent, "progress never moves backwards")
	assert.Equal(t, false, obs.last().Fields["changed"])

	got, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 60, got.Progress.Percent)
}

func TestRecordProgress_CompletesAt100(t *testing.T) {
	svc, obs := newLearningService(t)
	ctx := context.Background()

	st, err := svc.RecordProgress(ctx, 3, 120)
	require.NoError(t, err)
	assert.Equal(t, 100, st.Progress.Percent)
	require.True(t, st.Progress.Completed())
	assert.True(t, fixedNow.Equal(*st.Progress.CompletedAt))
	assert.Equal(t, true, obs.last().Fields["completed"])

	ov, err := svc.Overall(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.LearningOverview{Completed: 1, Total: 5}, ov)
}

func TestRecordProgress_UnknownModule(t *testing.T) {
	svc, obs := newLearningService(t)
	_, err := svc.RecordProgress(context.Background(), 42, 10)
	require.ErrorIs(t, err, domain.ErrUnknownModule)
	assert.False(t, obs.last().Success)
}

func TestRecordProgress_RollsBackOnWriteFailure(t *testing.T) {
	database, _, progress, uow := setupRepos(t)
	ctx := context.Background()

	good := NewLearningService(progress, uow)
	_, err := good.RecordProgress(ctx, 4, 40)
	require.NoError(t, err)

	errDisk := errors.New("disk full")
	failing := NewLearningService(progress, &testutil.FailOnNthExecUoW{DB: database, FailOn: 1, Err: errDisk})
	_, err = failing.RecordProgress(ctx, 4, 90)
	require.ErrorIs(t, err, errDisk)

	st, err := good.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 40, st.Progress.Percent)
}

func TestResetProgress(t *testing.T) {
	svc, _ := newLearningService(t)
	ctx := context.Background()

	_, err := svc.RecordProgress(ctx, 5, 100)
	require.NoError(t, err)
	require.NoError(t, svc.ResetProgress(ctx, 5))

	st, err := svc.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Progress.Percent)
	assert.False(t, st.Progress.Completed())

	assert.NoError(t, svc.ResetProgress(ctx, 5), "resetting an untouched module is a no-op")
	assert.ErrorIs(t, svc.ResetProgress(ctx, 0), domain.ErrUnknownModule)
}

func TestLearningTips(t *testing.T) {
	svc, _ := newLearningService(t)
	tips := svc.Tips()
	require.Len(t, tips, 4)
	assert.Equal(t, "Keep a Fixed Wake Time", tips[0].Title)
}
