package usageRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/admin/web-apps/banner-ai/internal/domain"
	"github.com/admin/web-apps/banner-ai/internal/ports/persistence"
	ports "github.com/admin/web-apps/banner-ai/internal/ports/repository"
)

type usageColumns struct {
	TableName string
	ClientID  string
	Count     string
	CreatedAt string
	UpdatedAt string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns usageColumns
}

var _ ports.IUsageRepo = (*Repository)(nil)

// New создаёт репозиторий счётчиков генераций
func New(db persistence.Persistence, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		Log: log,
		columns: usageColumns{
			TableName: "usage",
			ClientID:  "client_id",
			Count:     "count",
			CreatedAt: "created_at",
			UpdatedAt: "updated_at",
		},
	}
}

// Get возвращает счётчик клиента, 0 если записи нет
func (r *Repository) Get(ctx context.Context, clientID string) (int64, error) {
	var count int64

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.columns.Count,
		r.columns.TableName,
		r.columns.ClientID)
	err := r.db.Get(ctx, &count, query, clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		r.Log.Error("failed to get usage",
			"error", err,
			"client_id", clientID)
		return 0, fmt.Errorf("failed to get usage: %w", err)
	}

	return count, nil
}

// IncrementIfAllowed одним запросом создаёт запись или увеличивает счётчик, пока он меньше limit
// Если строка не вернулась, значит лимит исчерпан и запись не изменена
func (r *Repository) IncrementIfAllowed(ctx context.Context, clientID string, limit int64) (int64, error) {
	if limit <= 0 {
		return 0, domain.ErrLimitReached
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, 1)
		ON CONFLICT (%s) DO UPDATE SET %s = %s.%s + 1, %s = NOW()
		WHERE %s.%s < $2
		RETURNING %s`,
		r.columns.TableName,
		r.columns.ClientID,
		r.columns.Count,
		r.columns.ClientID,
		r.columns.Count,
		r.columns.TableName,
		r.columns.Count,
		r.columns.UpdatedAt,
		r.columns.TableName,
		r.columns.Count,
		r.columns.Count)

	var count int64
	err := r.db.QueryRow(ctx, query, clientID, limit).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Debug("usage limit reached", "client_id", clientID, "limit", limit)
			return 0, domain.ErrLimitReached
		}
		r.Log.Error("failed to increment usage",
			"error", err,
			"client_id", clientID)
		return 0, fmt.Errorf("failed to increment usage: %w", err)
	}

	r.Log.Debug("usage incremented", "client_id", clientID, "count", count)
	return count, nil
}
