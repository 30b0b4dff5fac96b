package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/restwell/internal/db"
	"github.com/alexanderramin/restwell/internal/domain"
	"github.com/alexanderramin/restwell/internal/repository"
)

type learningService struct {
	progress repository.LearningProgressRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewLearningService(progress repository.LearningProgressRepo, uow db.UnitOfWork, observers ...UseCaseObserver) LearningService {
	return &learningService{
		progress: progress,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *learningService) List(ctx context.Context) ([]domain.ModuleStatus, error) {
	stored, err := s.progress.List(ctx)
	if err != nil {
		return nil, err
	}
	byModule := make(map[int]domain.ModuleProgress, len(stored))
	for _, p := range stored {
		byModule[p.ModuleID] = *p
	}

	modules := domain.LearningModules()
	out := make([]domain.ModuleStatus, 0, len(modules))
	for _, m := range modules {
		p, ok := byModule[m.ID]
		if !ok {
			p = domain.ModuleProgress{ModuleID: m.ID}
		}
		out = append(out, domain.ModuleStatus{Module: m, Progress: p})
	}
	return out, nil
}

func (s *learningService) Get(ctx context.Context, moduleID int) (domain.ModuleStatus, error) {
	m, err := domain.LookupModule(moduleID)
	if err != nil {
		return domain.ModuleStatus{}, err
	}
	p, err := loadProgress(ctx, s.progress, moduleID)
	if err != nil {
		return domain.ModuleStatus{}, err
	}
	return domain.ModuleStatus{Module: m, Progress: *p}, nil
}

func (s *learningService) RecordProgress(ctx context.Context, moduleID, percent int) (status domain.ModuleStatus, err error) {
	startedAt := s.now()
	fields := map[string]any{"module_id": moduleID, "percent": percent}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "record-learning-progress",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var m domain.LearningModule
	m, err = domain.LookupModule(moduleID)
	if err != nil {
		return domain.ModuleStatus{}, err
	}

	var result domain.ModuleProgress
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProgress := repository.NewSQLiteLearningProgressRepo(tx)

		p, err := loadProgress(ctx, txProgress, moduleID)
		if err != nil {
			return err
		}
		changed := p.Advance(percent, startedAt.UTC().Truncate(time.Second))
		fields["changed"] = changed
		result = *p
		if !changed {
			return nil
		}
		return txProgress.Upsert(ctx, p)
	})
	if err != nil {
		return domain.ModuleStatus{}, err
	}
	fields["completed"] = result.Completed()
	return domain.ModuleStatus{Module: m, Progress: result}, nil
}

func (s *learningService) ResetProgress(ctx context.Context, moduleID int) error {
	if _, err := domain.LookupModule(moduleID); err != nil {
		return err
	}
	err := s.progress.Delete(ctx, moduleID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

func (s *learningService) Overall(ctx context.Context) (domain.LearningOverview, error) {
	statuses, err := s.List(ctx)
	if err != nil {
		return domain.LearningOverview{}, err
	}
	ov := domain.LearningOverview{Total: len(statuses)}
	for _, st := range statuses {
		if st.Progress.Completed() {
			ov.Completed++
		}
	}
	return ov, nil
}

func (s *learningService) Tips() []domain.QuickTip {
	return domain.QuickTips()
}

// loadProgress returns stored progress, or zero progress for a module
// that was never opened.
func loadProgress(ctx context.Context, repo repository.LearningProgressRepo, moduleID int) (*domain.ModuleProgress, error) {
	p, err := repo.Get(ctx, moduleID)
	if errors.Is(err, repository.ErrNotFound) {
		return &domain.ModuleProgress{ModuleID: moduleID}, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
