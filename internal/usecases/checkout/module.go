package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/admin/web-apps/banner-ai/internal/domain"
	paymentPort "github.com/admin/web-apps/banner-ai/internal/ports/payment"
	"github.com/admin/web-apps/banner-ai/internal/ports/service"
)

type Service struct {
	Provider       paymentPort.ICheckoutProvider
	PriceIDs       map[domain.Plan]string
	SuccessURL     string
	CancelURL      string
	AlerterService service.IAlerterService // может быть nil
	Log            *slog.Logger
}

func New(
	provider paymentPort.ICheckoutProvider,
	priceIDs map[domain.Plan]string,
	successURL string,
	cancelURL string,
	alerterService service.IAlerterService,
	log *slog.Logger,
) *Service {
	return &Service{
		Provider:       provider,
		PriceIDs:       priceIDs,
		SuccessURL:     successURL,
		CancelURL:      cancelURL,
		AlerterService: alerterService,
		Log:            log,
	}
}

// CreateSession создаёт checkout-сессию по тарифу
// Неизвестный план или план без price id: domain.ErrCheckoutConfig, провайдер не вызывается
func (s *Service) CreateSession(ctx context.Context, plan domain.Plan) (*domain.CheckoutSession, error) {
	if !plan.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrCheckoutConfig, plan)
	}

	priceID := s.PriceIDs[plan]
	if priceID == "" {
		s.Log.WarnContext(ctx, "price id is not configured", "plan", plan)
		return nil, fmt.Errorf("%w: price for %s is not configured", domain.ErrCheckoutConfig, plan)
	}

	referenceID := uuid.NewString()
	res, err := s.Provider.CreateCheckoutSession(ctx, paymentPort.CreateCheckoutRequest{
		Plan:        plan,
		PriceID:     priceID,
		Mode:        plan.Mode(),
		SuccessURL:  s.SuccessURL,
		CancelURL:   s.CancelURL,
		ReferenceID: referenceID,
	})
	if err != nil {
		s.alert(ctx, plan, err)
		var upstream *domain.UpstreamError
		if errors.As(err, &upstream) {
			return nil, err
		}
		return nil, &domain.UpstreamError{Kind: domain.ErrCheckoutUpstream, Message: err.Error()}
	}

	s.Log.InfoContext(ctx, "checkout session created",
		"plan", plan,
		"mode", plan.Mode(),
		"session_id", res.SessionID,
		"reference_id", referenceID)

	return &domain.CheckoutSession{
		ID:   res.SessionID,
		URL:  res.URL,
		Plan: plan,
		Mode: plan.Mode(),
	}, nil
}

// alert ошибка отправки алерта только логируется
func (s *Service) alert(ctx context.Context, plan domain.Plan, cause error) {
	if s.AlerterService == nil {
		return
	}
	message := fmt.Sprintf("⚠️ checkout failed\nplan: %s\nerror: %s", plan, cause.Error())
	if err := s.AlerterService.SendAlert(ctx, message); err != nil {
		s.Log.WarnContext(ctx, "failed to send checkout alert", "error", err)
	}
}
