package kafka

import (
	"context"

	"github.com/admin/web-apps/banner-ai/internal/domain"
)

// IUsageEventProducer интерфейс для отправки событий usage в Kafka
type IUsageEventProducer interface {
	// SendUsageEvent отправляет событие попытки инкремента
	SendUsageEvent(ctx context.Context, event domain.UsageEvent) error
	// Send отправляет произвольное сообщение
	Send(ctx context.Context, key string, value []byte) error
	// Close закрывает producer
	Close() error
}
