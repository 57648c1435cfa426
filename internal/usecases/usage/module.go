package usage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/admin/web-apps/banner-ai/internal/domain"
	"github.com/admin/web-apps/banner-ai/internal/ports/kafka"
	"github.com/admin/web-apps/banner-ai/internal/ports/repository"
)

type Service struct {
	UsageRepo repository.IUsageRepo
	Events    kafka.IUsageEventProducer // может быть nil
	Limit     int64
	Log       *slog.Logger
}

func New(
	usageRepo repository.IUsageRepo,
	events kafka.IUsageEventProducer,
	limit int64,
	log *slog.Logger,
) *Service {
	if limit < 0 {
		limit = domain.DefaultUsageLimit
	}
	return &Service{
		UsageRepo: usageRepo,
		Events:    events,
		Limit:     limit,
		Log:       log,
	}
}

// Count текущий счётчик клиента
func (s *Service) Count(ctx context.Context, clientID string) (int64, error) {
	count, err := s.UsageRepo.Get(ctx, clientID)
	if err != nil {
		return 0, fmt.Errorf("failed to get usage count: %w", err)
	}
	return count, nil
}

// Increment увеличивает счётчик, если лимит не исчерпан
// Возвращает domain.ErrLimitReached без изменения счётчика
func (s *Service) Increment(ctx context.Context, clientID string) (int64, error) {
	count, err := s.UsageRepo.IncrementIfAllowed(ctx, clientID, s.Limit)
	switch {
	case errors.Is(err, domain.ErrLimitReached):
		s.Log.Info("usage limit reached", "client_id", clientID, "limit", s.Limit)
		s.publish(ctx, domain.UsageEvent{ClientID: clientID, Count: s.Limit, Limit: s.Limit, Allowed: false})
		return 0, domain.ErrLimitReached
	case err != nil:
		return 0, fmt.Errorf("failed to increment usage: %w", err)
	}

	s.Log.Info("usage incremented", "client_id", clientID, "count", count)
	s.publish(ctx, domain.UsageEvent{ClientID: clientID, Count: count, Limit: s.Limit, Allowed: true})
	return count, nil
}

// Remaining сколько генераций осталось у клиента
func (s *Service) Remaining(ctx context.Context, clientID string) (int64, error) {
	count, err := s.Count(ctx, clientID)
	if err != nil {
		return 0, err
	}
	return max(s.Limit-count, 0), nil
}

// Gate привязывает сервис к client_id, чтобы использовать его как квоту генерации
func (s *Service) Gate(clientID string) *Gate {
	return &Gate{service: s, clientID: clientID}
}

// publish ошибки отправки события только логируются
func (s *Service) publish(ctx context.Context, event domain.UsageEvent) {
	if s.Events == nil {
		return
	}
	event.At = time.Now().UTC()
	if err := s.Events.SendUsageEvent(ctx, event); err != nil {
		s.Log.Warn("failed to publish usage event",
			"error", err,
			"client_id", event.ClientID)
	}
}
