// Package sessions stores per-conversation chat state. State is
// ephemeral: losing it on restart is acceptable, so the default store is
// in-memory with TTL eviction.
package sessions

import (
	"sync"
	"time"

	"hotel-backend/internal/domain/models"
)

// Store is the session persistence port for the chat path.
type Store interface {
	Get(sessionID string) (*models.Conversation, bool)
	Put(sessionID string, conv *models.Conversation)
	Evict(sessionID string)
}

type entry struct {
	conv     *models.Conversation
	deadline time.Time
}

// MemoryStore keeps conversations in process memory and evicts entries
// idle longer than TTL.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &MemoryStore{
		entries: make(map[string]*entry),
		ttl:     ttl,
	}
}

func (s *MemoryStore) Get(sessionID string) (*models.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sessionID]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.deadline) {
		delete(s.entries, sessionID)
		return nil, false
	}
	e.deadline = time.Now().Add(s.ttl)
	return e.conv, true
}

func (s *MemoryStore) Put(sessionID string, conv *models.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = &entry{conv: conv, deadline: time.Now().Add(s.ttl)}
}

func (s *MemoryStore) Evict(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
}

// Sweep drops expired sessions; StartSweeper runs it periodically until
// stop is closed.
func (s *MemoryStore) Sweep() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		if now.After(e.deadline) {
			delete(s.entries, id)
		}
	}
}

func (s *MemoryStore) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-stop:
				return
			}
		}
	}()
}
