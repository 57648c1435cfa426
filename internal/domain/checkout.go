package domain

// Plan тарифный план платного доступа
type Plan string

const (
	PlanDaily   Plan = "daily"
	PlanMonthly Plan = "monthly"
	PlanYearly  Plan = "yearly"
)

// IsValid проверяет, что план известен
func (p Plan) IsValid() bool {
	switch p {
	case PlanDaily, PlanMonthly, PlanYearly:
		return true
	default:
		return false
	}
}

// Mode дневной доступ оплачивается разово, месячный и годовой идут подпиской
func (p Plan) Mode() CheckoutMode {
	if p == PlanDaily {
		return CheckoutModePayment
	}
	return CheckoutModeSubscription
}

// CheckoutMode режим checkout-сессии у платёжного провайдера
type CheckoutMode string

const (
	CheckoutModePayment      CheckoutMode = "payment"      // разовая оплата
	CheckoutModeSubscription CheckoutMode = "subscription" // рекуррентная
)

// CheckoutSession созданная у провайдера сессия оплаты
type CheckoutSession struct {
	ID   string       `json:"id"`
	URL  string       `json:"url"`
	Plan Plan         `json:"plan"`
	Mode CheckoutMode `json:"mode"`
}
