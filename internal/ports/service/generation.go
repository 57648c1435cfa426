package service

import (
	"context"

	"github.com/admin/web-apps/banner-ai/internal/domain"
)

// IQuotaGate проверка и инкремент квоты перед генерацией
// Реализации: HTTP-клиент usage service и in-process гейт поверх usage.Service
type IQuotaGate interface {
	Increment(ctx context.Context) (int64, error)
}

// IImageGenerator внешний генератор картинок
type IImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, aspectRatio string) (*domain.GeneratedImage, error)
}

// IBannerArchive сохраняет готовые баннеры и отдаёт ссылку на скачивание
type IBannerArchive interface {
	SaveBanner(ctx context.Context, clientID string, image *domain.GeneratedImage) (string, error)
}
