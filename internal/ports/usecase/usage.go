package usecase

import (
	"context"
)

// IUsageUseCase счётчик генераций клиента
type IUsageUseCase interface {
	Count(ctx context.Context, clientID string) (int64, error)
	Increment(ctx context.Context, clientID string) (int64, error)
}
