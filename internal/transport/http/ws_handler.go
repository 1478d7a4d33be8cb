package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"checklist-assessment-service/internal/app"
	"checklist-assessment-service/internal/domain"
	"checklist-assessment-service/internal/metrics"
	"checklist-assessment-service/internal/quiz"
)

// WSHandler runs one attempt per websocket connection.
type WSHandler struct {
	quizzes  *app.QuizService
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(quizzes *app.QuizService, log *zap.Logger) *WSHandler {
	return &WSHandler{
		quizzes: quizzes,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

type submittedPayload struct {
	ID int64 `json:"id"`
}

// ServeWS upgrades the request and resumes ?attemptId= or starts a new
// attempt on ?catalogId= (default catalog when empty).
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	attemptID := r.URL.Query().Get("attemptId")

	var (
		view quiz.View
		err  error
	)
	if attemptID != "" {
		view, err = h.quizzes.Get(ctx, attemptID)
	} else {
		view, err = h.quizzes.Start(ctx, r.URL.Query().Get("catalogId"))
	}
	if err != nil {
		status := attemptStatus(err)
		http.Error(w, err.Error(), status)
		return
	}
	attemptID = view.ID

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	metrics.AttemptsActive.Inc()
	defer metrics.AttemptsActive.Dec()

	if err := conn.WriteJSON(outboundMessage[quiz.View]{Type: "state", Payload: view}); err != nil {
		return
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		msg := h.dispatch(r, attemptID, inbound)
		if err := conn.WriteJSON(msg); err != nil {
			h.log.Debug("ws write error", zap.String("attempt", attemptID), zap.Error(err))
			return
		}
	}
}

func (h *WSHandler) dispatch(r *http.Request, attemptID string, in inboundMessage) any {
	ctx := r.Context()
	var (
		view quiz.View
		err  error
	)
	switch in.Type {
	case "begin":
		var info domain.UserInfo
		if err := json.Unmarshal(in.Payload, &info); err != nil {
			return errorMessage(errors.New("invalid begin payload"))
		}
		view, err = h.quizzes.Begin(ctx, attemptID, info)
	case "answer":
		var payload answerRequest
		if err := json.Unmarshal(in.Payload, &payload); err != nil {
			return errorMessage(errors.New("invalid answer payload"))
		}
		view, err = h.quizzes.Answer(ctx, attemptID, payload.Section, payload.Criterion, payload.Option)
	case "advance":
		view, err = h.quizzes.Advance(ctx, attemptID)
	case "retreat":
		view, err = h.quizzes.Retreat(ctx, attemptID)
	case "reset":
		view, err = h.quizzes.Reset(ctx, attemptID)
	case "submit":
		id, err := h.quizzes.Submit(ctx, attemptID)
		if err != nil {
			return errorMessage(err)
		}
		return outboundMessage[submittedPayload]{Type: "submitted", Payload: submittedPayload{ID: id}}
	default:
		return errorMessage(errors.New("unsupported message type"))
	}
	if err != nil {
		return errorMessage(err)
	}
	return outboundMessage[quiz.View]{Type: "state", Payload: view}
}

func errorMessage(err error) outboundMessage[errorPayload] {
	payload := errorPayload{Message: err.Error()}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		payload.Message = verr.First()
		payload.Fields = verr.Fields
	}
	return outboundMessage[errorPayload]{Type: "error", Payload: payload}
}
