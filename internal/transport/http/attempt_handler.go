package http

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"checklist-assessment-service/internal/app"
	"checklist-assessment-service/internal/domain"
	"checklist-assessment-service/internal/quiz"
)

// AttemptHandler exposes server-side attempts over plain JSON requests.
type AttemptHandler struct {
	quizzes *app.QuizService
	log     *zap.Logger
}

func NewAttemptHandler(quizzes *app.QuizService, log *zap.Logger) *AttemptHandler {
	return &AttemptHandler{quizzes: quizzes, log: log}
}

type catalogResponse struct {
	Catalog        domain.Catalog `json:"catalog"`
	TotalQuestions int            `json:"totalQuestions"`
	TotalPossible  int            `json:"totalPossible"`
}

type startRequest struct {
	CatalogID string `json:"catalogId"`
}

type answerRequest struct {
	Section   int    `json:"section"`
	Criterion int    `json:"criterion"`
	Option    string `json:"option"`
}

type validationBody struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields"`
}

// Catalog serves GET /api/catalog?id=...
func (h *AttemptHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	c, err := h.quizzes.Catalog(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogResponse{
		Catalog:        c,
		TotalQuestions: c.TotalQuestions(),
		TotalPossible:  c.TotalPossible(),
	})
}

func (h *AttemptHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	view, err := h.quizzes.Start(r.Context(), req.CatalogID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *AttemptHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.quizzes.Get(r.Context(), r.PathValue("id")))
}

func (h *AttemptHandler) Begin(w http.ResponseWriter, r *http.Request) {
	var info domain.UserInfo
	if err := decodeBody(r, &info); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	h.respond(w, r)(h.quizzes.Begin(r.Context(), r.PathValue("id"), info))
}

func (h *AttemptHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	h.respond(w, r)(h.quizzes.Answer(r.Context(), r.PathValue("id"), req.Section, req.Criterion, req.Option))
}

func (h *AttemptHandler) Advance(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.quizzes.Advance(r.Context(), r.PathValue("id")))
}

func (h *AttemptHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.quizzes.Retreat(r.Context(), r.PathValue("id")))
}

func (h *AttemptHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.quizzes.Reset(r.Context(), r.PathValue("id")))
}

func (h *AttemptHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, err := h.quizzes.Submit(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, submitResponse{Success: true, Message: msgSaved, ID: id})
}

func (h *AttemptHandler) respond(w http.ResponseWriter, r *http.Request) func(quiz.View, error) {
	return func(view quiz.View, err error) {
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func (h *AttemptHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, validationBody{Error: verr.First(), Fields: verr.Fields})
		return
	}
	status := attemptStatus(err)
	if status == http.StatusInternalServerError {
		h.log.Error("attempt request failed", zap.String("request_id", RequestID(r.Context())), zap.Error(err))
		writeJSON(w, status, errorBody{Error: "Internal server error", Details: err.Error()})
		return
	}
	writeError(w, status, err.Error())
}

func attemptStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrAttemptNotFound), errors.Is(err, domain.ErrCatalogNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrQuestionOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAttemptNotStarted),
		errors.Is(err, domain.ErrAttemptStarted),
		errors.Is(err, domain.ErrAttemptCompleted),
		errors.Is(err, domain.ErrAttemptIncomplete):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
