package payment

import (
	"context"

	"github.com/admin/web-apps/banner-ai/internal/domain"
)

// ICheckoutProvider интерфейс платёжного провайдера (Stripe и т.д.)
// Use case зависит только от этого интерфейса, не зная деталей реализации
type ICheckoutProvider interface {
	// CreateCheckoutSession создаёт hosted checkout и возвращает ссылку на него
	CreateCheckoutSession(ctx context.Context, req CreateCheckoutRequest) (*CreateCheckoutResult, error)
}

// CreateCheckoutRequest запрос на создание checkout-сессии
type CreateCheckoutRequest struct {
	Plan       domain.Plan
	PriceID    string
	Mode       domain.CheckoutMode
	SuccessURL string
	CancelURL  string
	// ReferenceID наш идентификатор попытки оплаты (client_reference_id у Stripe)
	ReferenceID string
}

// CreateCheckoutResult результат создания сессии
type CreateCheckoutResult struct {
	SessionID string
	URL       string
}
