package stripe

import (
	"fmt"
	"strings"

	"github.com/admin/web-apps/banner-ai/internal/domain"
)

// Config настройки Stripe Checkout
type Config struct {
	SecretKey    string `envconfig:"SECRET_KEY"`
	PriceDaily   string `envconfig:"PRICE_DAILY"`
	PriceMonthly string `envconfig:"PRICE_MONTHLY"`
	PriceYearly  string `envconfig:"PRICE_YEARLY"`
	SuccessURL   string `envconfig:"SUCCESS_URL" default:"http://localhost:3000/?checkout=success"`
	CancelURL    string `envconfig:"CANCEL_URL" default:"http://localhost:3000/?checkout=cancel"`
}

// Enabled Stripe подключается, только если задан ключ
func (c *Config) Enabled() bool {
	return c != nil && c.SecretKey != ""
}

// Validate проверяет ключ и redirect-ссылки
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("stripe: secret key is required")
	}
	if !strings.HasPrefix(c.SecretKey, "sk_") && !strings.HasPrefix(c.SecretKey, "rk_") {
		return fmt.Errorf("stripe: secret key must start with sk_ or rk_")
	}
	if c.SuccessURL == "" || c.CancelURL == "" {
		return fmt.Errorf("stripe: success and cancel urls are required")
	}
	return nil
}

// PriceIDs план -> price id, пустые значения пропускаются
func (c *Config) PriceIDs() map[domain.Plan]string {
	ids := make(map[domain.Plan]string, 3)
	for plan, id := range map[domain.Plan]string{
		domain.PlanDaily:   c.PriceDaily,
		domain.PlanMonthly: c.PriceMonthly,
		domain.PlanYearly:  c.PriceYearly,
	} {
		if id = strings.TrimSpace(id); id != "" {
			ids[plan] = id
		}
	}
	return ids
}
