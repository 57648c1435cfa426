package usecase

import (
	"context"

	"github.com/admin/web-apps/banner-ai/internal/domain"
)

// ICheckoutUseCase создание платёжной сессии по тарифу
type ICheckoutUseCase interface {
	CreateSession(ctx context.Context, plan domain.Plan) (*domain.CheckoutSession, error)
}
