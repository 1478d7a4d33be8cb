package app

import (
	"context"

	"checklist-assessment-service/internal/domain"
	"checklist-assessment-service/internal/quiz"
)

// CatalogRepository loads catalog content (from cache/backing store).
type CatalogRepository interface {
	GetCatalog(ctx context.Context, catalogID string) (domain.Catalog, error)
}

// AttemptRepository abstracts how in-progress attempts are stored (in-memory, Redis, etc).
// Get returns domain.ErrAttemptNotFound for unknown or expired ids.
type AttemptRepository interface {
	Save(ctx context.Context, attempt *quiz.Attempt) error
	Get(ctx context.Context, id string) (*quiz.Attempt, error)
	Delete(ctx context.Context, id string) error
}

// SubmissionRepository persists completed submissions. One implementation is
// chosen at startup from configuration.
type SubmissionRepository interface {
	// Save inserts the record atomically and returns the assigned id.
	Save(ctx context.Context, rec domain.SubmissionRecord) (int64, error)
	// List returns every record, newest completion first.
	List(ctx context.Context) ([]domain.SubmissionRecord, error)
	// Get returns domain.ErrSubmissionNotFound for unknown ids.
	Get(ctx context.Context, id int64) (domain.SubmissionRecord, error)
	// Delete reports whether a record was removed.
	Delete(ctx context.Context, id int64) (bool, error)
}
