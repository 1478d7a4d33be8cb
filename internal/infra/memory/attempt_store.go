package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"checklist-assessment-service/internal/domain"
	"checklist-assessment-service/internal/quiz"
)

// AttemptStore is an in-memory implementation of app.AttemptRepository.
// Attempts are kept encoded so callers never share a live *quiz.Attempt.
type AttemptStore struct {
	ttl   time.Duration
	clock func() time.Time

	mu       sync.RWMutex
	attempts map[string]storedAttempt
}

type storedAttempt struct {
	data      []byte
	expiresAt time.Time
}

// NewAttemptStore expires attempts ttl after their last save; ttl <= 0 keeps
// them until deleted.
func NewAttemptStore(ttl time.Duration) *AttemptStore {
	return &AttemptStore{
		ttl:      ttl,
		clock:    time.Now,
		attempts: make(map[string]storedAttempt),
	}
}

// NewAttemptStoreWithClock is test-only for deterministic expiry.
func NewAttemptStoreWithClock(ttl time.Duration, clock func() time.Time) *AttemptStore {
	s := NewAttemptStore(ttl)
	s.clock = clock
	return s
}

func (s *AttemptStore) Save(_ context.Context, attempt *quiz.Attempt) error {
	data, err := json.Marshal(attempt)
	if err != nil {
		return err
	}
	entry := storedAttempt{data: data}
	if s.ttl > 0 {
		entry.expiresAt = s.clock().Add(s.ttl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked()
	s.attempts[attempt.ID()] = entry
	return nil
}

func (s *AttemptStore) Get(_ context.Context, id string) (*quiz.Attempt, error) {
	s.mu.RLock()
	entry, ok := s.attempts[id]
	s.mu.RUnlock()
	if !ok || s.expired(entry) {
		return nil, domain.ErrAttemptNotFound
	}
	var attempt quiz.Attempt
	if err := json.Unmarshal(entry.data, &attempt); err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (s *AttemptStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, id)
	return nil
}

// Len reports stored attempts, including expired ones not yet evicted.
func (s *AttemptStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.attempts)
}

func (s *AttemptStore) expired(entry storedAttempt) bool {
	return !entry.expiresAt.IsZero() && !entry.expiresAt.After(s.clock())
}

func (s *AttemptStore) evictExpiredLocked() {
	for id, entry := range s.attempts {
		if s.expired(entry) {
			delete(s.attempts, id)
		}
	}
}
