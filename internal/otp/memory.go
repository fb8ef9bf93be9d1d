package otp

import (
	"context"
	"sync"
)

// MemoryStore keeps pending codes in a process-local map guarded by a
// mutex. Entries have no expiry and are lost when the process restarts,
// which mirrors the original system and is acceptable for the
// human-timescale signup/verify handshake.
type MemoryStore struct {
	mu    sync.Mutex
	codes map[string]string
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{codes: make(map[string]string)}
}

// Issue generates a code for the email, overwriting any pending one.
func (s *MemoryStore) Issue(_ context.Context, email string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.codes[email] = code
	s.mu.Unlock()
	return code, nil
}

// Verify consumes the pending code for the email when it matches exactly.
func (s *MemoryStore) Verify(_ context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending, ok := s.codes[email]
	if !ok || pending != code {
		return ErrCodeMismatch
	}
	delete(s.codes, email)
	return nil
}
