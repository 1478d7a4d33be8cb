package memory

import (
	"context"
	"testing"
	"time"

	"checklist-assessment-service/internal/domain"
	"checklist-assessment-service/internal/quiz"
)

func TestAttemptStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewAttemptStore(time.Minute)

	attempt := quiz.NewAttempt("a1", "travel-health")
	if err := attempt.Begin(quiz.Gate{}, domain.UserInfo{Name: "Jane"}); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := store.Save(ctx, attempt); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, "a1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Stage() != quiz.StageInProgress || got.User().Name != "Jane" {
		t.Fatalf("unexpected attempt %s %+v", got.Stage(), got.User())
	}

	// Mutating a loaded copy must not change the stored one.
	got.Reset()
	again, _ := store.Get(ctx, "a1")
	if again.Stage() != quiz.StageInProgress {
		t.Fatalf("stored attempt changed without save")
	}

	if err := store.Delete(ctx, "a1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "a1"); err != domain.ErrAttemptNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAttemptStoreExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewAttemptStoreWithClock(time.Minute, func() time.Time { return now })
	ctx := context.Background()

	_ = store.Save(ctx, quiz.NewAttempt("a1", "c"))
	now = now.Add(2 * time.Minute)
	if _, err := store.Get(ctx, "a1"); err != domain.ErrAttemptNotFound {
		t.Fatalf("expected expired attempt, got %v", err)
	}

	_ = store.Save(ctx, quiz.NewAttempt("a2", "c"))
	if store.Len() != 1 {
		t.Fatalf("expected expired attempts evicted on save, have %d", store.Len())
	}
}
