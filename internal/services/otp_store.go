package services

import (
	"sync"

	"societyportal/internal/models"
)

// PendingStore holds at most one in-flight verification per username.
// Injected so a multi-instance deployment can swap in a shared cache.
type PendingStore interface {
	Put(p *models.PendingVerification)
	Get(username string) *models.PendingVerification
	Delete(username string)
}

type memoryPendingStore struct {
	mu      sync.Mutex
	pending map[string]*models.PendingVerification
}

func NewMemoryPendingStore() PendingStore {
	return &memoryPendingStore{pending: make(map[string]*models.PendingVerification)}
}

// Put overwrites any prior record for the same username (last writer wins).
func (s *memoryPendingStore) Put(p *models.PendingVerification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[p.Username] = p
}

func (s *memoryPendingStore) Get(username string) *models.PendingVerification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[username]
}

func (s *memoryPendingStore) Delete(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, username)
}
