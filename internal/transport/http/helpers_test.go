package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"checklist-assessment-service/internal/app"
	"checklist-assessment-service/internal/catalog"
	"checklist-assessment-service/internal/domain"
	"checklist-assessment-service/internal/infra/memory"
	"checklist-assessment-service/internal/quiz"
)

const testPassword = "admin123"

func smallCatalog() domain.Catalog {
	return domain.Catalog{
		ID: "small",
		Sections: []domain.Section{
			{
				Name:        "Introduction",
				TotalPoints: 8,
				Criteria: []domain.Criterion{
					{Description: "Introduced self", Points: 5, InputType: domain.InputBinary, Options: []string{"Yes", "No"}},
					{Description: "Rapport", Points: 3, InputType: domain.InputMultiple, Options: []string{"Excellent", "Good", "Fair", "Poor"}},
				},
			},
		},
	}
}

type testEnv struct {
	handler http.Handler
	store   app.SubmissionRepository
}

func newTestEnv(t *testing.T, store app.SubmissionRepository, requireAssessor bool) testEnv {
	t.Helper()
	log := zaptest.NewLogger(t)
	all := catalog.Builtin()
	all["small"] = smallCatalog()
	catalogs := memory.NewCatalogRepository(memory.NewStaticCatalogLoader(all), time.Minute)

	submissions := app.NewSubmissionService(store, catalogs, "small", log)
	handler := NewRouter(Deps{
		Submissions:     submissions,
		Admin:           app.NewAdminService(store, testPassword, log),
		Quizzes:         app.NewQuizService(memory.NewAttemptStore(time.Hour), catalogs, submissions, quiz.Gate{RequireAssessor: requireAssessor}, "small", log),
		Seeder:          app.NewSeederWithRand(submissions, catalogs, catalog.TravelHealthID, rand.New(rand.NewSource(1))),
		RequireAssessor: requireAssessor,
		Logger:          log,
	})
	return testEnv{handler: handler, store: store}
}

func (e testEnv) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
	}
	return rec, out
}

// failingStore rejects every write.
type failingStore struct {
	*memory.SubmissionStore
}

func (failingStore) Save(context.Context, domain.SubmissionRecord) (int64, error) {
	return 0, errors.New("disk full")
}
