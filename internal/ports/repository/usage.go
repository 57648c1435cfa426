package repository

import (
	"context"
)

// IUsageRepo хранилище счётчиков генераций по client_id
type IUsageRepo interface {
	// Get возвращает текущий счётчик, 0 если записи нет
	Get(ctx context.Context, clientID string) (int64, error)
	// IncrementIfAllowed атомарно увеличивает счётчик, если он меньше limit
	// При count >= limit возвращает domain.ErrLimitReached и ничего не меняет
	IncrementIfAllowed(ctx context.Context, clientID string, limit int64) (int64, error)
}
