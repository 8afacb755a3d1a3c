package session

import (
	"context"
	"sync"

	"github.com/forensicvideo/console/internal/client/models"
)

// MemoryStore is a non-durable Store for tests and ephemeral runs.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	user  *models.UserProfile
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Token(ctx context.Context) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *MemoryStore) User(ctx context.Context) *models.UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

func (m *MemoryStore) SetToken(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) SetUser(ctx context.Context, user *models.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.user = nil
	return nil
}
