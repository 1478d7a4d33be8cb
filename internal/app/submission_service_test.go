package app_test

import (
	"context"
	"encoding/json"
	"testing"

	"checklist-assessment-service/internal/app"
	"checklist-assessment-service/internal/domain"
	"checklist-assessment-service/internal/infra/memory"
)

func TestSubmitStoresClientTotals(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSubmissionStore()
	service := app.NewSubmissionServiceWithClock(store, catalogs(), "small", nil, fixedNow)

	rs := domain.ResponseSet{}
	rs.Put(0, 0, domain.Answer{SelectedOption: "Yes", Points: 5})
	id, err := service.Submit(ctx, app.SubmitInput{
		User:          domain.UserInfo{Name: " Jane Doe "},
		Responses:     rs,
		TotalScore:    5,
		SectionScores: json.RawMessage(`[{"section":"Introduction","score":5,"totalPoints":8}]`),
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	rec, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Name != "Jane Doe" || rec.Email != domain.EmailNotProvided {
		t.Fatalf("unexpected identity %q %q", rec.Name, rec.Email)
	}
	if rec.TotalScore != 5 {
		t.Fatalf("expected total 5, got %d", rec.TotalScore)
	}
	if !rec.CompletedAt.Equal(fixedNow()) {
		t.Fatalf("expected completion time from clock, got %v", rec.CompletedAt)
	}

	var stored domain.ResponseSet
	if err := json.Unmarshal([]byte(rec.Responses), &stored); err != nil {
		t.Fatalf("responses not JSON: %v", err)
	}
	if a, ok := stored.Get(0, 0); !ok || a.SelectedOption != "Yes" {
		t.Fatalf("unexpected stored responses %s", rec.Responses)
	}
	if rec.SectionScores != `[{"section":"Introduction","score":5,"totalPoints":8}]` {
		t.Fatalf("section scores must be stored as sent, got %s", rec.SectionScores)
	}
}

func TestSubmitKeepsMismatchedClientTotal(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSubmissionStore()
	service := app.NewSubmissionService(store, catalogs(), "small", nil)

	id, err := service.Submit(ctx, app.SubmitInput{User: domain.UserInfo{Name: "Jane"}, TotalScore: 42})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	rec, _ := store.Get(ctx, id)
	if rec.TotalScore != 42 || rec.Responses != "{}" || rec.SectionScores != "[]" {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestSubmitReportsStorageFailure(t *testing.T) {
	service := app.NewSubmissionService(failingStore{memory.NewSubmissionStore()}, nil, "", nil)
	if _, err := service.Submit(context.Background(), app.SubmitInput{User: domain.UserInfo{Name: "Jane"}}); err != errStorageDown {
		t.Fatalf("expected storage error, got %v", err)
	}
}
