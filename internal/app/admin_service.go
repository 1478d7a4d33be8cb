package app

import (
	"context"
	"crypto/subtle"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"checklist-assessment-service/internal/domain"
	"checklist-assessment-service/internal/logger"
	"checklist-assessment-service/internal/metrics"
)

// Admin actions accepted by POST /api/admin.
const (
	ActionGetAll  = "getAll"
	ActionGetByID = "getById"
	ActionDelete  = "delete"
)

// AdminRequest is one admin call. ID is the raw id as sent, empty when absent.
type AdminRequest struct {
	Password string
	Action   string
	ID       string
}

// AdminResult holds whichever payload the action produced.
type AdminResult struct {
	Records []domain.SubmissionRecord
	Record  *domain.SubmissionRecord
	Deleted bool
}

// AdminService exposes stored submissions behind a shared password.
type AdminService struct {
	store    SubmissionRepository
	password string
	log      *zap.Logger
}

func NewAdminService(store SubmissionRepository, password string, log *zap.Logger) *AdminService {
	return &AdminService{store: store, password: password, log: logger.OrNop(log)}
}

// Handle checks the password before looking at the action, so a wrong
// password never discloses anything.
func (s *AdminService) Handle(ctx context.Context, req AdminRequest) (AdminResult, error) {
	res, err := s.handle(ctx, req)
	metrics.AdminActions.WithLabelValues(actionLabel(req.Action), outcome(err)).Inc()
	return res, err
}

func (s *AdminService) handle(ctx context.Context, req AdminRequest) (AdminResult, error) {
	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.password)) != 1 {
		s.log.Warn("admin password rejected", zap.String("action", req.Action))
		return AdminResult{}, domain.ErrInvalidPassword
	}

	switch {
	case req.Action == ActionGetAll:
		records, err := s.store.List(ctx)
		if err != nil {
			return AdminResult{}, err
		}
		return AdminResult{Records: records}, nil

	case req.Action == ActionGetByID && req.ID != "":
		id, ok := parseID(req.ID)
		if !ok {
			return AdminResult{}, domain.ErrSubmissionNotFound
		}
		rec, err := s.store.Get(ctx, id)
		if err != nil {
			return AdminResult{}, err
		}
		return AdminResult{Record: &rec}, nil

	case req.Action == ActionDelete && req.ID != "":
		id, ok := parseID(req.ID)
		if !ok {
			return AdminResult{}, domain.ErrSubmissionNotFound
		}
		deleted, err := s.store.Delete(ctx, id)
		if err != nil {
			return AdminResult{}, err
		}
		if !deleted {
			return AdminResult{}, domain.ErrSubmissionNotFound
		}
		s.log.Info("submission deleted", zap.Int64("id", id))
		return AdminResult{Deleted: true}, nil
	}
	return AdminResult{}, domain.ErrInvalidAction
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func actionLabel(action string) string {
	switch action {
	case ActionGetAll, ActionGetByID, ActionDelete:
		return action
	}
	return "other"
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidPassword):
		return "unauthorized"
	case errors.Is(err, domain.ErrSubmissionNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidAction):
		return "invalid"
	}
	return "error"
}
