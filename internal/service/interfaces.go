package service

import (
	"context"
	"time"

	"github.com/alexanderramin/restwell/internal/coach"
	"github.com/alexanderramin/restwell/internal/domain"
)

type DiaryService interface {
	Log(ctx context.Context, e *domain.DiaryEntry) error
	GetByID(ctx context.Context, id string) (*domain.DiaryEntry, error)
	// ListRecent returns entries whose night began within the last days
	// days, newest first.
	ListRecent(ctx context.Context, days int) ([]*domain.DiaryEntry, error)
	Update(ctx context.Context, e *domain.DiaryEntry) error
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, days int) (domain.DiarySummary, error)
}

type LearningService interface {
	List(ctx context.Context) ([]domain.ModuleStatus, error)
	Get(ctx context.Context, moduleID int) (domain.ModuleStatus, error)
	// RecordProgress raises a module's progress; lower values are ignored.
	RecordProgress(ctx context.Context, moduleID, percent int) (domain.ModuleStatus, error)
	ResetProgress(ctx context.Context, moduleID int) error
	Overall(ctx context.Context) (domain.LearningOverview, error)
	Tips() []domain.QuickTip
}

type CoachService interface {
	NewConversation() *coach.Conversation
	QuickQuestions() []string
	// Ask answers a one-shot question after the typing delay.
	Ask(ctx context.Context, question string) (domain.ChatMessage, error)
	TypingDelay() time.Duration
}
