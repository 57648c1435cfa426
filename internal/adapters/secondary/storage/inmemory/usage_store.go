package inmemory

import (
	"context"
	"sync"

	"github.com/admin/web-apps/banner-ai/internal/domain"
	ports "github.com/admin/web-apps/banner-ai/internal/ports/repository"
)

// UsageStore in-memory счётчики генераций, живут пока жив процесс
type UsageStore struct {
	mu     sync.RWMutex
	counts map[string]int64 // client_id -> count
}

var _ ports.IUsageRepo = (*UsageStore)(nil)

func NewUsageStore() *UsageStore {
	return &UsageStore{
		counts: make(map[string]int64),
	}
}

// Get возвращает счётчик, 0 если клиента ещё не было
func (s *UsageStore) Get(_ context.Context, clientID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts[clientID], nil
}

// IncrementIfAllowed увеличивает счётчик под одной блокировкой
func (s *UsageStore) IncrementIfAllowed(_ context.Context, clientID string, limit int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.counts[clientID]
	if current >= limit {
		return 0, domain.ErrLimitReached
	}
	current++
	s.counts[clientID] = current
	return current, nil
}
