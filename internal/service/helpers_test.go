package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/restwell/internal/db"
	"github.com/alexanderramin/restwell/internal/repository"
	"github.com/alexanderramin/restwell/internal/testutil"
)

// fixedNow is "this morning" for every service test.
var fixedNow = time.Date(2025, 6, 16, 7, 30, 0, 0, time.UTC)

func setupRepos(t *testing.T) (
	*sql.DB,
	repository.DiaryRepo,
	repository.LearningProgressRepo,
	db.UnitOfWork,
) {
	database := testutil.NewTestDB(t)
	return database,
		repository.NewSQLiteDiaryRepo(database),
		repository.NewSQLiteLearningProgressRepo(database),
		testutil.NewTestUoW(database)
}

// recordingObserver keeps every event it sees.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

func (o *recordingObserver) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.events)
}
