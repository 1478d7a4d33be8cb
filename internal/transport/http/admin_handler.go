package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"checklist-assessment-service/internal/app"
	"checklist-assessment-service/internal/domain"
)

type AdminHandler struct {
	admin *app.AdminService
	log   *zap.Logger
}

func NewAdminHandler(admin *app.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, log: log}
}

type adminRequest struct {
	Password string          `json:"password"`
	Action   string          `json:"action"`
	ID       json.RawMessage `json:"id"`
}

type adminResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Handle serves POST /api/admin.
func (h *AdminHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req adminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	res, err := h.admin.Handle(r.Context(), app.AdminRequest{
		Password: req.Password,
		Action:   req.Action,
		ID:       rawID(req.ID),
	})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidPassword):
		writeError(w, http.StatusUnauthorized, "Invalid password")
		return
	case errors.Is(err, domain.ErrInvalidAction):
		writeError(w, http.StatusBadRequest, "Invalid action")
		return
	case errors.Is(err, domain.ErrSubmissionNotFound):
		if req.Action == app.ActionDelete {
			writeError(w, http.StatusNotFound, "Response not found or could not be deleted")
		} else {
			writeError(w, http.StatusNotFound, "Response not found")
		}
		return
	default:
		h.log.Error("admin action failed", zap.String("action", req.Action), zap.String("request_id", RequestID(r.Context())), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	switch {
	case res.Deleted:
		writeJSON(w, http.StatusOK, adminResponse{Success: true, Message: "Response deleted successfully"})
	case res.Record != nil:
		writeJSON(w, http.StatusOK, adminResponse{Success: true, Data: res.Record})
	default:
		records := res.Records
		if records == nil {
			records = []domain.SubmissionRecord{}
		}
		writeJSON(w, http.StatusOK, adminResponse{Success: true, Data: records})
	}
}

// rawID accepts the id as a JSON number or string. null, "", 0 and false
// count as absent.
func rawID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte("false")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if n, err := strconv.ParseFloat(string(raw), 64); err == nil {
		if n == 0 {
			return ""
		}
		// 1.0 and 1e2 name the same record as 1 and 100.
		if n == math.Trunc(n) && math.Abs(n) < math.MaxInt64 {
			return strconv.FormatInt(int64(n), 10)
		}
	}
	// Numbers and anything else are passed through; non-integers will not match.
	return string(raw)
}
