package memory

import (
	"context"
	"testing"
	"time"

	"checklist-assessment-service/internal/domain"
)

func TestSubmissionStoreOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewSubmissionStore()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, offset := range []time.Duration{0, 2 * time.Hour, time.Hour} {
		id, err := store.Save(ctx, domain.SubmissionRecord{Name: "n", CompletedAt: base.Add(offset)})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		if id != int64(i+1) {
			t.Fatalf("expected sequential id %d, got %d", i+1, id)
		}
	}

	list, _ := store.List(ctx)
	if len(list) != 3 || list[0].ID != 2 || list[1].ID != 3 || list[2].ID != 1 {
		t.Fatalf("unexpected order %+v", list)
	}
}

func TestSubmissionStoreDeleteTwice(t *testing.T) {
	ctx := context.Background()
	store := NewSubmissionStore()
	id, _ := store.Save(ctx, domain.SubmissionRecord{Name: "n"})

	if ok, err := store.Delete(ctx, id); err != nil || !ok {
		t.Fatalf("first delete: %v %v", ok, err)
	}
	if ok, err := store.Delete(ctx, id); err != nil || ok {
		t.Fatalf("second delete must report not found: %v %v", ok, err)
	}
	if _, err := store.Get(ctx, id); err != domain.ErrSubmissionNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
