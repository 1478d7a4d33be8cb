package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"checklist-assessment-service/internal/domain"
	"checklist-assessment-service/internal/logger"
	"checklist-assessment-service/internal/quiz"
	"checklist-assessment-service/internal/scoring"
)

// QuizService drives server-side attempts: each call loads the attempt,
// applies one transition and stores it again.
type QuizService struct {
	attempts       AttemptRepository
	catalogs       CatalogRepository
	submissions    *SubmissionService
	gate           quiz.Gate
	defaultCatalog string
	newID          func() string
	log            *zap.Logger
}

func NewQuizService(attempts AttemptRepository, catalogs CatalogRepository, submissions *SubmissionService, gate quiz.Gate, defaultCatalog string, log *zap.Logger) *QuizService {
	return &QuizService{
		attempts:       attempts,
		catalogs:       catalogs,
		submissions:    submissions,
		gate:           gate,
		defaultCatalog: defaultCatalog,
		newID:          uuid.NewString,
		log:            logger.OrNop(log),
	}
}

// Catalog returns a catalog by id; empty means the configured default.
func (s *QuizService) Catalog(ctx context.Context, catalogID string) (domain.Catalog, error) {
	if catalogID == "" {
		catalogID = s.defaultCatalog
	}
	return s.catalogs.GetCatalog(ctx, catalogID)
}

// Start creates a pending attempt; users cannot start unknown catalogs.
func (s *QuizService) Start(ctx context.Context, catalogID string) (quiz.View, error) {
	c, err := s.Catalog(ctx, catalogID)
	if err != nil {
		return quiz.View{}, err
	}
	attempt := quiz.NewAttempt(s.newID(), c.ID)
	if err := s.attempts.Save(ctx, attempt); err != nil {
		return quiz.View{}, err
	}
	s.log.Debug("attempt started", zap.String("attempt", attempt.ID()), zap.String("catalog", c.ID))
	return attempt.View(c), nil
}

// Get renders the attempt without changing it.
func (s *QuizService) Get(ctx context.Context, attemptID string) (quiz.View, error) {
	attempt, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		return quiz.View{}, err
	}
	c, err := s.catalogs.GetCatalog(ctx, attempt.CatalogID())
	if err != nil {
		return quiz.View{}, err
	}
	return attempt.View(c), nil
}

// Begin captures the user info.
func (s *QuizService) Begin(ctx context.Context, attemptID string, info domain.UserInfo) (quiz.View, error) {
	return s.apply(ctx, attemptID, func(a *quiz.Attempt, _ *quiz.Accumulator) error {
		return a.Begin(s.gate, info)
	})
}

// Answer records an option for one question.
func (s *QuizService) Answer(ctx context.Context, attemptID string, section, criterion int, option string) (quiz.View, error) {
	return s.apply(ctx, attemptID, func(a *quiz.Attempt, acc *quiz.Accumulator) error {
		_, err := a.Answer(acc, section, criterion, option)
		return err
	})
}

func (s *QuizService) Advance(ctx context.Context, attemptID string) (quiz.View, error) {
	return s.apply(ctx, attemptID, func(a *quiz.Attempt, acc *quiz.Accumulator) error {
		return a.Advance(acc)
	})
}

func (s *QuizService) Retreat(ctx context.Context, attemptID string) (quiz.View, error) {
	return s.apply(ctx, attemptID, func(a *quiz.Attempt, acc *quiz.Accumulator) error {
		return a.Retreat(acc)
	})
}

func (s *QuizService) Reset(ctx context.Context, attemptID string) (quiz.View, error) {
	return s.apply(ctx, attemptID, func(a *quiz.Attempt, _ *quiz.Accumulator) error {
		a.Reset()
		return nil
	})
}

// Submit persists a completed attempt and then drops it. If storage fails
// the attempt is kept so the user can retry.
func (s *QuizService) Submit(ctx context.Context, attemptID string) (int64, error) {
	attempt, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		return 0, err
	}
	summary, completed := attempt.Summary()
	if !completed {
		return 0, domain.ErrAttemptIncomplete
	}
	if err := s.gate.Check(attempt.User()); err != nil {
		return 0, err
	}
	id, err := s.submissions.Record(ctx, "attempt", attempt.User(), attempt.Responses(), summary)
	if err != nil {
		return 0, err
	}
	if err := s.attempts.Delete(ctx, attemptID); err != nil {
		s.log.Warn("drop submitted attempt", zap.String("attempt", attemptID), zap.Error(err))
	}
	return id, nil
}

func (s *QuizService) apply(ctx context.Context, attemptID string, fn func(*quiz.Attempt, *quiz.Accumulator) error) (quiz.View, error) {
	attempt, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		return quiz.View{}, err
	}
	acc, err := s.accumulator(ctx, attempt.CatalogID())
	if err != nil {
		return quiz.View{}, err
	}
	if err := fn(attempt, acc); err != nil {
		return quiz.View{}, err
	}
	if err := s.attempts.Save(ctx, attempt); err != nil {
		return quiz.View{}, err
	}
	return attempt.View(acc.Catalog()), nil
}

func (s *QuizService) accumulator(ctx context.Context, catalogID string) (*quiz.Accumulator, error) {
	c, err := s.catalogs.GetCatalog(ctx, catalogID)
	if err != nil {
		return nil, err
	}
	policy, err := scoring.For(c)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", c.ID, err)
	}
	return quiz.NewAccumulator(c, policy), nil
}
