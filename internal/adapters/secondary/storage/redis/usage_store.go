package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/admin/web-apps/banner-ai/internal/domain"
	ports "github.com/admin/web-apps/banner-ai/internal/ports/repository"
)

const defaultKeyPrefix = "banner-ai:usage:"

// incrementScript GET, сравнение с лимитом и INCR выполняются атомарно на стороне redis
// KEYS[1] = ключ счётчика, ARGV[1] = лимит
// Возвращает новый счётчик или -1, если лимит исчерпан
var incrementScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local limit = tonumber(ARGV[1])
if current >= limit then
	return -1
end
return redis.call('INCR', KEYS[1])
`)

// UsageStore счётчики генераций в redis, общие для всех инстансов сервиса
type UsageStore struct {
	client    redis.UniversalClient
	keyPrefix string
	Log       *slog.Logger
}

var _ ports.IUsageRepo = (*UsageStore)(nil)

func NewUsageStore(client redis.UniversalClient, keyPrefix string, log *slog.Logger) *UsageStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &UsageStore{
		client:    client,
		keyPrefix: keyPrefix,
		Log:       log,
	}
}

func (s *UsageStore) key(clientID string) string {
	return s.keyPrefix + clientID
}

// Get возвращает счётчик, 0 если ключа нет
func (s *UsageStore) Get(ctx context.Context, clientID string) (int64, error) {
	count, err := s.client.Get(ctx, s.key(clientID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		s.Log.Error("failed to get usage", "error", err, "client_id", clientID)
		return 0, fmt.Errorf("redis get usage failed: %w", err)
	}
	return count, nil
}

// IncrementIfAllowed увеличивает счётчик, если он меньше limit
func (s *UsageStore) IncrementIfAllowed(ctx context.Context, clientID string, limit int64) (int64, error) {
	if limit <= 0 {
		return 0, domain.ErrLimitReached
	}

	count, err := incrementScript.Run(ctx, s.client, []string{s.key(clientID)}, limit).Int64()
	if err != nil {
		s.Log.Error("failed to increment usage", "error", err, "client_id", clientID)
		return 0, fmt.Errorf("redis increment usage failed: %w", err)
	}
	if count < 0 {
		s.Log.Debug("usage limit reached", "client_id", clientID, "limit", limit)
		return 0, domain.ErrLimitReached
	}

	s.Log.Debug("usage incremented", "client_id", clientID, "count", count)
	return count, nil
}

// Ping проверяет соединение (для /ready)
func (s *UsageStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close закрывает подключение к redis
func (s *UsageStore) Close() error {
	return s.client.Close()
}
