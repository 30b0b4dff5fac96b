package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/restwell/internal/domain"
)

type DiaryRepo interface {
	Create(ctx context.Context, e *domain.DiaryEntry) error
	GetByID(ctx context.Context, id string) (*domain.DiaryEntry, error)
	// ListSince returns entries whose night is on or after since, newest
	// night first.
	ListSince(ctx context.Context, since time.Time) ([]*domain.DiaryEntry, error)
	Update(ctx context.Context, e *domain.DiaryEntry) error
	Delete(ctx context.Context, id string) error
}

type LearningProgressRepo interface {
	Get(ctx context.Context, moduleID int) (*domain.ModuleProgress, error)
	List(ctx context.Context) ([]*domain.ModuleProgress, error)
	Upsert(ctx context.Context, p *domain.ModuleProgress) error
	Delete(ctx context.Context, moduleID int) error
}
