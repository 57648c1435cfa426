package usage

import (
	"context"
	"errors"
	"fmt"

	"github.com/admin/web-apps/banner-ai/internal/domain"
	"github.com/admin/web-apps/banner-ai/internal/ports/service"
)

// Gate квота генерации внутри процесса: usage.Service, привязанный к одному клиенту
type Gate struct {
	service  *Service
	clientID string
}

var _ service.IQuotaGate = (*Gate)(nil)

// Increment ошибки хранилища отдаются как domain.ErrUpstreamUnavailable,
// чтобы оркестратор применял к ним ту же политику, что и к удалённому сервису
func (g *Gate) Increment(ctx context.Context) (int64, error) {
	count, err := g.service.Increment(ctx, g.clientID)
	if err == nil || errors.Is(err, domain.ErrLimitReached) {
		return count, err
	}
	return 0, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
}
