package http

import (
	"net/http"

	"go.uber.org/zap"

	"checklist-assessment-service/internal/app"
)

type SeedHandler struct {
	seeder *app.Seeder
	log    *zap.Logger
}

func NewSeedHandler(seeder *app.Seeder, log *zap.Logger) *SeedHandler {
	return &SeedHandler{seeder: seeder, log: log}
}

// Create serves GET and POST /api/test: one random submission per call.
func (h *SeedHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := h.seeder.CreateDummy(r.Context())
	if err != nil {
		h.log.Error("create dummy record", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Failed to create dummy record", Details: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, submitResponse{Success: true, Message: "Dummy record created successfully", ID: id})
}
