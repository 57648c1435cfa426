package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Persistence операции с БД, которые нужны репозиториям
type Persistence interface {
	Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRow(ctx context.Context, query string, args ...interface{}) *sqlx.Row
}
