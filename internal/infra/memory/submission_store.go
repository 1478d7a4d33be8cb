package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"checklist-assessment-service/internal/domain"
)

// SubmissionStore keeps submissions in process memory. It backs the
// "memory" storage driver and tests.
type SubmissionStore struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]domain.SubmissionRecord
}

func NewSubmissionStore() *SubmissionStore {
	return &SubmissionStore{nextID: 1, records: make(map[int64]domain.SubmissionRecord)}
}

func (s *SubmissionStore) Save(_ context.Context, rec domain.SubmissionRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.nextID
	s.nextID++
	if rec.CompletedAt.IsZero() {
		rec.CompletedAt = time.Now().UTC()
	}
	s.records[rec.ID] = rec
	return rec.ID, nil
}

func (s *SubmissionStore) List(_ context.Context) ([]domain.SubmissionRecord, error) {
	s.mu.RLock()
	out := make([]domain.SubmissionRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CompletedAt.Equal(out[j].CompletedAt) {
			return out[i].CompletedAt.After(out[j].CompletedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *SubmissionStore) Get(_ context.Context, id int64) (domain.SubmissionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.SubmissionRecord{}, domain.ErrSubmissionNotFound
	}
	return rec, nil
}

func (s *SubmissionStore) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return false, nil
	}
	delete(s.records, id)
	return true, nil
}
