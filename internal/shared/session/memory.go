package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps sessions in process memory and is safe for concurrent use.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memoryEntry
	now   func() time.Time
}

type memoryEntry struct {
	userID    int64
	expiresAt time.Time
}

// NewMemoryStore constructs a MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Create(ctx context.Context, userID int64, ttl time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	sid := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.items[sid] = memoryEntry{userID: userID, expiresAt: s.now().Add(ttl)}
	return sid, nil
}

func (s *MemoryStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.items[sessionID]
	if !ok {
		return false, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.items, sessionID)
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.items, sessionID)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) DeleteByUser(ctx context.Context, userID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for sid, entry := range s.items {
		if entry.userID == userID {
			delete(s.items, sid)
		}
	}
	return nil
}

// sweep drops expired entries; callers hold mu.
func (s *MemoryStore) sweep() {
	now := s.now()
	for sid, entry := range s.items {
		if now.After(entry.expiresAt) {
			delete(s.items, sid)
		}
	}
}

var _ Store = (*MemoryStore)(nil)
