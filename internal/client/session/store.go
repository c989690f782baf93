// Package session persists the backend client's session between launches.
//
// The session is kept as a single JSON document. Store implementations:
//   - SQLiteStore: the client_state table of the local SQLite file.
//   - MemoryStore: process memory only (used when no session file is configured).
package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

// Store keeps at most one session. Load returns (nil, nil) when none is saved.
type Store interface {
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Clear(ctx context.Context) error
}

type MemoryStore struct {
	mu      sync.Mutex
	session *models.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, nil
	}
	cp := *m.session
	return &cp, nil
}

func (m *MemoryStore) Save(ctx context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.session = &cp
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}
