package usecase

import (
	"context"

	"github.com/admin/web-apps/banner-ai/internal/domain"
)

// IBannerUseCase генерация баннера на стороне сервера
type IBannerUseCase interface {
	Generate(ctx context.Context, clientID string, data domain.BannerData) (*domain.GenerationResult, error)
	Styles() []domain.Style
}
