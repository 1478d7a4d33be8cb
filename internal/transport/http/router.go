package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"checklist-assessment-service/internal/app"
	"checklist-assessment-service/internal/logger"
)

// Deps are the use cases the HTTP surface exposes.
type Deps struct {
	Submissions *app.SubmissionService
	Admin       *app.AdminService
	Quizzes     *app.QuizService
	Seeder      *app.Seeder
	// RequireAssessor makes accessorsName and accessorsEmail mandatory on submit.
	RequireAssessor bool
	Logger          *zap.Logger
}

// NewRouter wires every route onto a ServeMux.
func NewRouter(d Deps) http.Handler {
	log := logger.OrNop(d.Logger)
	quizHandler := NewQuizHandler(d.Submissions, d.RequireAssessor, log)
	adminHandler := NewAdminHandler(d.Admin, log)
	seedHandler := NewSeedHandler(d.Seeder, log)
	attemptHandler := NewAttemptHandler(d.Quizzes, log)
	wsHandler := NewWSHandler(d.Quizzes, log)

	mux := http.NewServeMux()
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, instrument(pattern, log, h))
	}

	handle("POST /api/quiz", quizHandler.Submit)
	handle("POST /api/admin", adminHandler.Handle)
	handle("GET /api/test", seedHandler.Create)
	handle("POST /api/test", seedHandler.Create)

	handle("GET /api/catalog", attemptHandler.Catalog)
	handle("POST /api/attempts", attemptHandler.Start)
	handle("GET /api/attempts/{id}", attemptHandler.Get)
	handle("POST /api/attempts/{id}/begin", attemptHandler.Begin)
	handle("POST /api/attempts/{id}/answers", attemptHandler.Answer)
	handle("POST /api/attempts/{id}/advance", attemptHandler.Advance)
	handle("POST /api/attempts/{id}/retreat", attemptHandler.Retreat)
	handle("POST /api/attempts/{id}/reset", attemptHandler.Reset)
	handle("POST /api/attempts/{id}/submit", attemptHandler.Submit)
	handle("GET /ws/attempt", wsHandler.ServeWS)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}
