package store

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-health-share/models"
)

var _ OTPStore = (*MemoryOTPStore)(nil)

type memoryEntry struct {
	challenge models.OTPChallenge
	deadline  time.Time
}

// MemoryOTPStore keeps challenges in process memory. It is used when no
// Redis address is configured; expired entries are dropped by [Purge], which
// the OTP janitor worker calls periodically.
type MemoryOTPStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryOTPStore returns an empty store.
func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryOTPStore) SaveChallenge(_ context.Context, c models.OTPChallenge, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[c.Handle] = memoryEntry{challenge: c, deadline: s.now().Add(ttl)}
	return nil
}

func (s *MemoryOTPStore) GetChallenge(_ context.Context, handle string) (models.OTPChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[handle]
	if !ok || !s.now().Before(e.deadline) {
		delete(s.entries, handle)
		return models.OTPChallenge{}, ErrChallengeNotFound
	}
	return e.challenge, nil
}

func (s *MemoryOTPStore) DeleteChallenge(_ context.Context, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, handle)
	return nil
}

// Purge removes every entry whose ttl elapsed before now and returns how many
// were removed.
func (s *MemoryOTPStore) Purge(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for handle, e := range s.entries {
		if !now.Before(e.deadline) {
			delete(s.entries, handle)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired or not.
func (s *MemoryOTPStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
