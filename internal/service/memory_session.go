package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemorySessionStore keeps snapshots in process memory. It backs the CLI
// and servers started without redis; snapshots never expire.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Snapshot
}

var _ ISessionStore = (*MemorySessionStore)(nil)

// NewMemorySessionStore creates an empty store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*Snapshot)}
}

func (m *MemorySessionStore) Create(ctx context.Context, snapshot *Snapshot) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}
	id := uuid.NewString()
	m.sessions[id] = snapshot
	return id, nil
}

func (m *MemorySessionStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *MemorySessionStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
