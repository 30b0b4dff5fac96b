package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/restwell/internal/db"
	"github.com/alexanderramin/restwell/internal/domain"
)

// SQLiteLearningProgressRepo implements LearningProgressRepo using a SQLite database.
type SQLiteLearningProgressRepo struct {
	db db.DBTX
}

// NewSQLiteLearningProgressRepo creates a new SQLiteLearningProgressRepo.
func NewSQLiteLearningProgressRepo(conn db.DBTX) *SQLiteLearningProgressRepo {
	return &SQLiteLearningProgressRepo{db: conn}
}

func (r *SQLiteLearningProgressRepo) Get(ctx context.Context, moduleID int) (*domain.ModuleProgress, error) {
	query := `SELECT module_id, percent, completed_at, updated_at
		FROM learning_progress WHERE module_id = ?`
	row := r.db.QueryRowContext(ctx, query, moduleID)

	var p domain.ModuleProgress
	var completedAt sql.NullString
	var updatedAt string
	if err := row.Scan(&p.ModuleID, &p.Percent, &completedAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("learning progress: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning learning progress: %w", err)
	}
	return populateProgress(&p, completedAt, updatedAt)
}

func (r *SQLiteLearningProgressRepo) List(ctx context.Context) ([]*domain.ModuleProgress, error) {
	query := `SELECT module_id, percent, completed_at, updated_at
		FROM learning_progress ORDER BY module_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing learning progress: %w", err)
	}
	defer rows.Close()

	var out []*domain.ModuleProgress
	for rows.Next() {
		var p domain.ModuleProgress
		var completedAt sql.NullString
		var updatedAt string
		if err := rows.Scan(&p.ModuleID, &p.Percent, &completedAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning learning progress row: %w", err)
		}
		progress, err := populateProgress(&p, completedAt, updatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, progress)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating learning progress: %w", err)
	}
	return out, nil
}

func (r *SQLiteLearningProgressRepo) Upsert(ctx context.Context, p *domain.ModuleProgress) error {
	query := `INSERT INTO learning_progress (module_id, percent, completed_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(module_id) DO UPDATE SET
			percent = excluded.percent,
			completed_at = excluded.completed_at,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		p.ModuleID,
		p.Percent,
		nullableTimeToString(p.CompletedAt, time.RFC3339),
		p.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting learning progress: %w", err)
	}
	return nil
}

func (r *SQLiteLearningProgressRepo) Delete(ctx context.Context, moduleID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM learning_progress WHERE module_id = ?`, moduleID)
	if err != nil {
		return fmt.Errorf("deleting learning progress: %w", err)
	}
	return requireAffected(res, "learning progress")
}

func populateProgress(p *domain.ModuleProgress, completedAt sql.NullString, updatedAt string) (*domain.ModuleProgress, error) {
	var err error
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	p.CompletedAt = parseNullableTime(completedAt, time.RFC3339)
	return p, nil
}
