package checkoutController

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/admin/web-apps/banner-ai/internal/domain"
	paymentPort "github.com/admin/web-apps/banner-ai/internal/ports/payment"
	"github.com/admin/web-apps/banner-ai/internal/pkg/logger"
	"github.com/admin/web-apps/banner-ai/internal/usecases/checkout"
)

type fakeProvider struct {
	calls int
	err   error
}

func (f *fakeProvider) CreateCheckoutSession(context.Context, paymentPort.CreateCheckoutRequest) (*paymentPort.CreateCheckoutResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &paymentPort.CreateCheckoutResult{SessionID: "cs_1", URL: "https://checkout.example/cs_1"}, nil
}

func newEngine(provider *fakeProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := checkout.New(provider, map[domain.Plan]string{
		domain.PlanDaily:   "price_daily",
		domain.PlanMonthly: "price_monthly",
		domain.PlanYearly:  "price_yearly",
	}, "https://ok", "https://cancel", nil, logger.Discard())

	r := gin.New()
	New(svc, logger.Discard()).RegisterRoutes(r)
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/create-checkout-session", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateSession_OK(t *testing.T) {
	provider := &fakeProvider{}
	w := post(newEngine(provider), `{"plan":"yearly"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"url":"https://checkout.example/cs_1"}`, w.Body.String())
	assert.Equal(t, 1, provider.calls)
}

func TestCreateSession_UnknownPlan(t *testing.T) {
	provider := &fakeProvider{}
	w := post(newEngine(provider), `{"plan":"weekly"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
	assert.Equal(t, 0, provider.calls)
}

func TestCreateSession_BadBody(t *testing.T) {
	provider := &fakeProvider{}

	for _, body := range []string{`not json`, `{}`} {
		w := post(newEngine(provider), body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"invalid request"}`, w.Body.String())
	}
	assert.Equal(t, 0, provider.calls)
}

func TestCreateSession_ProviderFailure(t *testing.T) {
	provider := &fakeProvider{err: &domain.UpstreamError{Kind: domain.ErrCheckoutUpstream, Message: "No such price: 'price_daily'"}}
	w := post(newEngine(provider), `{"plan":"daily"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"No such price: 'price_daily'"}`, w.Body.String())
}
