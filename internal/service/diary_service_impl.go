package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/restwell/internal/domain"
	"github.com/alexanderramin/restwell/internal/repository"
	"github.com/google/uuid"
)

type diaryService struct {
	entries  repository.DiaryRepo
	observer UseCaseObserver
	now      func() time.Time
}

func NewDiaryService(entries repository.DiaryRepo, observers ...UseCaseObserver) DiaryService {
	return &diaryService{
		entries:  entries,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *diaryService) Log(ctx context.Context, e *domain.DiaryEntry) (err error) {
	startedAt := s.now()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "log-diary-entry",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err = e.Validate(); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.NightOf.IsZero() {
		// A morning entry describes the night that began yesterday.
		e.NightOf = startedAt.AddDate(0, 0, -1)
	}
	e.NightOf = domain.TruncateToDate(e.NightOf)
	e.CreatedAt = startedAt.UTC().Truncate(time.Second)
	fields["night_of"] = e.NightOf.Format("2006-01-02")
	fields["efficiency"] = e.SleepEfficiency()

	return s.entries.Create(ctx, e)
}

func (s *diaryService) GetByID(ctx context.Context, id string) (*domain.DiaryEntry, error) {
	return s.entries.GetByID(ctx, id)
}

func (s *diaryService) ListRecent(ctx context.Context, days int) ([]*domain.DiaryEntry, error) {
	since, err := s.windowStart(days)
	if err != nil {
		return nil, err
	}
	return s.entries.ListSince(ctx, since)
}

func (s *diaryService) Update(ctx context.Context, e *domain.DiaryEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.NightOf = domain.TruncateToDate(e.NightOf)
	return s.entries.Update(ctx, e)
}

func (s *diaryService) Delete(ctx context.Context, id string) error {
	return s.entries.Delete(ctx, id)
}

func (s *diaryService) Summary(ctx context.Context, days int) (domain.DiarySummary, error) {
	entries, err := s.ListRecent(ctx, days)
	if err != nil {
		return domain.DiarySummary{}, err
	}
	return domain.SummarizeDiary(days, entries), nil
}

// windowStart returns the first night included in a window of days nights
// ending last night.
func (s *diaryService) windowStart(days int) (time.Time, error) {
	if days <= 0 {
		return time.Time{}, fmt.Errorf("days must be positive, got %d", days)
	}
	return domain.TruncateToDate(s.now()).AddDate(0, 0, -days), nil
}
