package stripe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"

	"github.com/admin/web-apps/banner-ai/internal/domain"
	paymentPort "github.com/admin/web-apps/banner-ai/internal/ports/payment"
)

// Provider реализует ICheckoutProvider через Stripe Checkout
type Provider struct {
	log *slog.Logger
}

var _ paymentPort.ICheckoutProvider = (*Provider)(nil)

// NewProvider инициализирует stripe.Key, ключ общий на процесс
func NewProvider(cfg *Config, log *slog.Logger) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	stripe.Key = cfg.SecretKey

	return &Provider{log: log}, nil
}

// CreateCheckoutSession создаёт hosted checkout с одной позицией
func (p *Provider) CreateCheckoutSession(ctx context.Context, req paymentPort.CreateCheckoutRequest) (*paymentPort.CreateCheckoutResult, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(stripeMode(req.Mode)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
	}
	if req.ReferenceID != "" {
		params.ClientReferenceID = stripe.String(req.ReferenceID)
	}
	params.Context = ctx
	params.AddMetadata("plan", string(req.Plan))

	s, err := session.New(params)
	if err != nil {
		msg := providerMessage(err)
		p.log.ErrorContext(ctx, "failed to create stripe checkout session",
			"error", msg,
			"plan", req.Plan,
			"mode", req.Mode)
		return nil, &domain.UpstreamError{Kind: domain.ErrCheckoutUpstream, Message: msg}
	}

	p.log.InfoContext(ctx, "stripe checkout session created",
		"session_id", s.ID,
		"plan", req.Plan,
		"mode", req.Mode)

	return &paymentPort.CreateCheckoutResult{
		SessionID: s.ID,
		URL:       s.URL,
	}, nil
}

func stripeMode(mode domain.CheckoutMode) string {
	if mode == domain.CheckoutModeSubscription {
		return string(stripe.CheckoutSessionModeSubscription)
	}
	return string(stripe.CheckoutSessionModePayment)
}

// providerMessage текст ошибки Stripe без JSON-обёртки stripe.Error
func providerMessage(err error) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return stripeErr.Msg
	}
	return fmt.Sprintf("stripe: %v", err)
}
