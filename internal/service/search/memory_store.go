package search

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/search"
)

// memoryStore keeps recent searches in process memory. It is used when
// Redis is not configured.
type memoryStore struct {
	mu     sync.Mutex
	recent map[string][]string
}

func NewMemoryStore() search.RecentStore {
	return &memoryStore{recent: make(map[string][]string)}
}

func (m *memoryStore) List(_ context.Context, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.recent[userID]...), nil
}

func (m *memoryStore) Add(_ context.Context, userID string, query string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	updated := search.PushRecent(m.recent[userID], query)
	if len(updated) > 0 {
		m.recent[userID] = updated
	}
	return append([]string{}, updated...), nil
}

func (m *memoryStore) Clear(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.recent, userID)
	return nil
}
