package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"checklist-assessment-service/internal/domain"
)

type quizResponse struct {
	bun.BaseModel `bun:"table:quiz_responses,alias:qr"`

	ID             int64     `bun:"id,pk,autoincrement"`
	Name           string    `bun:"name,notnull"`
	Email          string    `bun:"email"`
	AccessorsName  string    `bun:"accessors_name,nullzero"`
	AccessorsEmail string    `bun:"accessors_email,nullzero"`
	Responses      string    `bun:"responses,notnull"`
	TotalScore     int       `bun:"total_score,notnull"`
	SectionScores  string    `bun:"section_scores,notnull"`
	CompletedAt    time.Time `bun:"completed_at,nullzero,notnull,default:current_timestamp"`
}

func fromRecord(rec domain.SubmissionRecord) *quizResponse {
	return &quizResponse{
		Name:           rec.Name,
		Email:          rec.Email,
		AccessorsName:  rec.AccessorsName,
		AccessorsEmail: rec.AccessorsEmail,
		Responses:      rec.Responses,
		TotalScore:     rec.TotalScore,
		SectionScores:  rec.SectionScores,
		CompletedAt:    rec.CompletedAt,
	}
}

func (r quizResponse) record() domain.SubmissionRecord {
	return domain.SubmissionRecord{
		ID:             r.ID,
		Name:           r.Name,
		Email:          r.Email,
		AccessorsName:  r.AccessorsName,
		AccessorsEmail: r.AccessorsEmail,
		Responses:      r.Responses,
		TotalScore:     r.TotalScore,
		SectionScores:  r.SectionScores,
		CompletedAt:    r.CompletedAt.UTC(),
	}
}

// SubmissionStore persists submissions in the quiz_responses table via bun.
type SubmissionStore struct {
	db *bun.DB
}

func NewSubmissionStore(db *bun.DB) *SubmissionStore {
	return &SubmissionStore{db: db}
}

func (s *SubmissionStore) Save(ctx context.Context, rec domain.SubmissionRecord) (int64, error) {
	row := fromRecord(rec)
	if err := s.db.NewInsert().Model(row).Returning("id").Scan(ctx); err != nil {
		return 0, fmt.Errorf("insert submission: %w", err)
	}
	return row.ID, nil
}

func (s *SubmissionStore) List(ctx context.Context) ([]domain.SubmissionRecord, error) {
	var rows []quizResponse
	err := s.db.NewSelect().
		Model(&rows).
		OrderExpr("completed_at DESC, id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	out := make([]domain.SubmissionRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.record())
	}
	return out, nil
}

func (s *SubmissionStore) Get(ctx context.Context, id int64) (domain.SubmissionRecord, error) {
	var row quizResponse
	err := s.db.NewSelect().Model(&row).Where("id = ?", id).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SubmissionRecord{}, domain.ErrSubmissionNotFound
	}
	if err != nil {
		return domain.SubmissionRecord{}, fmt.Errorf("get submission: %w", err)
	}
	return row.record(), nil
}

func (s *SubmissionStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.NewDelete().Model((*quizResponse)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("delete submission: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete submission: %w", err)
	}
	return n > 0, nil
}
