package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"checklist-assessment-service/internal/domain"
	"checklist-assessment-service/internal/logger"
	"checklist-assessment-service/internal/metrics"
	"checklist-assessment-service/internal/quiz"
)

// SubmitInput is a client-scored submission as received by POST /api/quiz.
type SubmitInput struct {
	User       domain.UserInfo
	Responses  domain.ResponseSet
	TotalScore int
	// SectionScores is stored as sent.
	SectionScores json.RawMessage
}

// SubmissionService persists completed assessments.
type SubmissionService struct {
	store     SubmissionRepository
	catalogs  CatalogRepository
	catalogID string
	log       *zap.Logger
	now       func() time.Time
}

func NewSubmissionService(store SubmissionRepository, catalogs CatalogRepository, catalogID string, log *zap.Logger) *SubmissionService {
	return &SubmissionService{
		store:     store,
		catalogs:  catalogs,
		catalogID: catalogID,
		log:       logger.OrNop(log),
		now:       time.Now,
	}
}

// NewSubmissionServiceWithClock is test-only for deterministic timestamps.
func NewSubmissionServiceWithClock(store SubmissionRepository, catalogs CatalogRepository, catalogID string, log *zap.Logger, now func() time.Time) *SubmissionService {
	s := NewSubmissionService(store, catalogs, catalogID, log)
	s.now = now
	return s
}

// Submit stores the client's totals. The totals are also recomputed from the
// responses against the catalog; a difference is logged, not rejected.
func (s *SubmissionService) Submit(ctx context.Context, in SubmitInput) (int64, error) {
	if in.Responses == nil {
		in.Responses = domain.ResponseSet{}
	}
	s.checkTotals(ctx, in)

	sectionScores := in.SectionScores
	if len(sectionScores) == 0 {
		sectionScores = json.RawMessage("[]")
	}
	rec, err := s.newRecord(in.User, in.Responses, in.TotalScore, sectionScores)
	if err != nil {
		return 0, err
	}
	return s.save(ctx, "api", rec)
}

// Record persists a server-scored response set, used by attempts and seeding.
func (s *SubmissionService) Record(ctx context.Context, source string, user domain.UserInfo, rs domain.ResponseSet, summary domain.ScoreSummary) (int64, error) {
	sectionScores, err := json.Marshal(summary.SectionScores)
	if err != nil {
		return 0, fmt.Errorf("encode section scores: %w", err)
	}
	rec, err := s.newRecord(user, rs, summary.TotalScore, sectionScores)
	if err != nil {
		return 0, err
	}
	return s.save(ctx, source, rec)
}

func (s *SubmissionService) newRecord(user domain.UserInfo, rs domain.ResponseSet, total int, sectionScores []byte) (domain.SubmissionRecord, error) {
	responses, err := json.Marshal(rs)
	if err != nil {
		return domain.SubmissionRecord{}, fmt.Errorf("encode responses: %w", err)
	}
	user = quiz.Gate{}.Normalize(user)
	return domain.SubmissionRecord{
		Name:           user.Name,
		Email:          user.Email,
		AccessorsName:  user.AccessorsName,
		AccessorsEmail: user.AccessorsEmail,
		Responses:      string(responses),
		TotalScore:     total,
		SectionScores:  string(sectionScores),
		CompletedAt:    s.now().UTC(),
	}, nil
}

func (s *SubmissionService) save(ctx context.Context, source string, rec domain.SubmissionRecord) (int64, error) {
	id, err := s.store.Save(ctx, rec)
	if err != nil {
		metrics.SubmissionsFailed.WithLabelValues(source).Inc()
		s.log.Error("save submission", zap.String("source", source), zap.Error(err))
		return 0, err
	}
	metrics.SubmissionsSaved.WithLabelValues(source).Inc()
	s.log.Info("submission saved",
		zap.String("source", source),
		zap.Int64("id", id),
		zap.Int("total_score", rec.TotalScore),
	)
	return id, nil
}

func (s *SubmissionService) checkTotals(ctx context.Context, in SubmitInput) {
	if s.catalogs == nil {
		return
	}
	c, err := s.catalogs.GetCatalog(ctx, s.catalogID)
	if err != nil {
		s.log.Warn("catalog unavailable, skipping score check", zap.String("catalog", s.catalogID), zap.Error(err))
		return
	}
	summary := quiz.CalculateScores(c, in.Responses)
	if summary.TotalScore != in.TotalScore {
		metrics.ScoreMismatches.Inc()
		s.log.Warn("client total differs from recomputed total",
			zap.String("catalog", c.ID),
			zap.Int("client_total", in.TotalScore),
			zap.Int("recomputed_total", summary.TotalScore),
		)
	}
}
