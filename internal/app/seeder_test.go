package app_test

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"

	"checklist-assessment-service/internal/app"
	"checklist-assessment-service/internal/catalog"
	"checklist-assessment-service/internal/domain"
	"checklist-assessment-service/internal/infra/memory"
	"checklist-assessment-service/internal/quiz"
)

func TestSeederCreatesScoredRecords(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSubmissionStore()
	repo := catalogs()
	submissions := app.NewSubmissionService(store, repo, catalog.TravelHealthID, nil)
	seeder := app.NewSeederWithRand(submissions, repo, catalog.TravelHealthID, rand.New(rand.NewSource(7)))

	c, _ := repo.GetCatalog(ctx, catalog.TravelHealthID)
	for i := 0; i < 5; i++ {
		id, err := seeder.CreateDummy(ctx)
		if err != nil {
			t.Fatalf("create dummy: %v", err)
		}
		rec, err := store.Get(ctx, id)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if rec.Name == "" || rec.Email == "" {
			t.Fatalf("seeded record missing identity: %+v", rec)
		}

		var rs domain.ResponseSet
		if err := json.Unmarshal([]byte(rec.Responses), &rs); err != nil {
			t.Fatalf("responses: %v", err)
		}
		summary := quiz.CalculateScores(c, rs)
		if summary.TotalScore != rec.TotalScore {
			t.Fatalf("stored total %d does not match responses %d", rec.TotalScore, summary.TotalScore)
		}
		if rec.TotalScore < 0 || rec.TotalScore > c.TotalPossible() {
			t.Fatalf("total %d out of range", rec.TotalScore)
		}
	}
}
