package usageController

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	server "github.com/admin/web-apps/banner-ai/internal/adapters/primary/http"
	"github.com/admin/web-apps/banner-ai/internal/adapters/secondary/storage/inmemory"
	"github.com/admin/web-apps/banner-ai/internal/pkg/logger"
	"github.com/admin/web-apps/banner-ai/internal/usecases/usage"
)

type brokenUsage struct{}

func (brokenUsage) Count(context.Context, string) (int64, error) {
	return 0, errors.New("db is down")
}

func (brokenUsage) Increment(context.Context, string) (int64, error) {
	return 0, errors.New("db is down")
}

func newRouter(t *testing.T, c *Controller) http.Handler {
	t.Helper()
	router, err := server.NewRouter(&server.Config{}, logger.Discard(), c)
	require.NoError(t, err)
	return router
}

func do(h http.Handler, method, path, forwardedFor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "10.0.0.1:4000"
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestUsageFlow(t *testing.T) {
	svc := usage.New(inmemory.NewUsageStore(), nil, 3, logger.Discard())
	h := newRouter(t, New(svc, logger.Discard()))

	w := do(h, http.MethodGet, "/usage", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":0}`, w.Body.String())

	for _, want := range []string{`{"count":1}`, `{"count":2}`, `{"count":3}`} {
		w = do(h, http.MethodPost, "/usage/increment", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, want, w.Body.String())
	}

	w = do(h, http.MethodPost, "/usage/increment", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Limit reached"}`, w.Body.String())

	w = do(h, http.MethodGet, "/usage", "")
	assert.JSONEq(t, `{"count":3}`, w.Body.String())
}

func TestUsage_ClientsByForwardedFor(t *testing.T) {
	svc := usage.New(inmemory.NewUsageStore(), nil, 3, logger.Discard())
	h := newRouter(t, New(svc, logger.Discard()))

	do(h, http.MethodPost, "/usage/increment", "203.0.113.5, 10.0.0.1")
	do(h, http.MethodPost, "/usage/increment", "203.0.113.5")

	w := do(h, http.MethodGet, "/usage", "203.0.113.5")
	assert.JSONEq(t, `{"count":2}`, w.Body.String())

	w = do(h, http.MethodGet, "/usage", "198.51.100.1")
	assert.JSONEq(t, `{"count":0}`, w.Body.String())

	// без заголовка считается по адресу соединения
	w = do(h, http.MethodGet, "/usage", "")
	assert.JSONEq(t, `{"count":0}`, w.Body.String())
}

func TestUsage_RoutePrefixes(t *testing.T) {
	svc := usage.New(inmemory.NewUsageStore(), nil, 3, logger.Discard())
	h := newRouter(t, New(svc, logger.Discard()))

	w := do(h, http.MethodPost, "/api/usage/increment", "")
	assert.JSONEq(t, `{"count":1}`, w.Body.String())

	w = do(h, http.MethodPost, "/.netlify/functions/api/usage/increment", "")
	assert.JSONEq(t, `{"count":2}`, w.Body.String())

	w = do(h, http.MethodGet, "/usage", "")
	assert.JSONEq(t, `{"count":2}`, w.Body.String())
}

func TestUsage_StoreFailure(t *testing.T) {
	h := newRouter(t, New(brokenUsage{}, logger.Discard()))

	w := do(h, http.MethodGet, "/usage", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())

	w = do(h, http.MethodPost, "/usage/increment", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestUsage_WrongMethod(t *testing.T) {
	svc := usage.New(inmemory.NewUsageStore(), nil, 3, logger.Discard())
	h := newRouter(t, New(svc, logger.Discard()))

	w := do(h, http.MethodGet, "/usage/increment", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
