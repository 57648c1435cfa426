package usageapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/admin/web-apps/banner-ai/internal/domain"
	"github.com/admin/web-apps/banner-ai/internal/pkg/httpclient"
	"github.com/admin/web-apps/banner-ai/internal/ports/service"
)

const (
	usagePath     = "/usage"
	incrementPath = "/usage/increment"
	checkoutPath  = "/create-checkout-session"

	maxResponseBytes = 1 << 20
)

// Client HTTP-клиент usage service и checkout
type Client struct {
	baseURL    string
	HTTPClient *http.Client
	Log        *slog.Logger
}

var _ service.IQuotaGate = (*Client)(nil)

func NewClient(cfg *Config, log *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		HTTPClient: httpclient.New(httpclient.Options{Timeout: cfg.Timeout}),
		Log:        log,
	}
}

type countResponse struct {
	Count *int64 `json:"count"`
	Error string `json:"error"`
}

type checkoutRequest struct {
	Plan string `json:"plan"`
}

type checkoutResponse struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// Count текущий счётчик клиента
func (c *Client) Count(ctx context.Context) (int64, error) {
	return c.usageCall(ctx, http.MethodGet, usagePath)
}

// Increment 403 -> domain.ErrLimitReached, сеть и не-JSON ответы -> domain.ErrUpstreamUnavailable
func (c *Client) Increment(ctx context.Context) (int64, error) {
	return c.usageCall(ctx, http.MethodPost, incrementPath)
}

func (c *Client) usageCall(ctx context.Context, method, path string) (int64, error) {
	status, raw, err := c.do(ctx, method, path, nil)
	if err != nil {
		// отмена вызывающим не считается недоступностью сервиса
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		return 0, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}

	if status == http.StatusForbidden {
		return 0, domain.ErrLimitReached
	}

	var resp countResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		c.Log.WarnContext(ctx, "usage service returned non-JSON response",
			"status", status,
			"path", path)
		return 0, fmt.Errorf("%w: non-JSON response with status %d", domain.ErrUpstreamUnavailable, status)
	}

	switch {
	case status == http.StatusOK && resp.Count != nil:
		return *resp.Count, nil
	case resp.Error != "":
		return 0, fmt.Errorf("%w: %s", domain.ErrUpstreamUnavailable, resp.Error)
	default:
		return 0, fmt.Errorf("%w: unexpected status %d", domain.ErrUpstreamUnavailable, status)
	}
}

// CreateCheckoutSession ошибки сервера возвращаются с его сообщением как есть
func (c *Client) CreateCheckoutSession(ctx context.Context, plan domain.Plan) (string, error) {
	body, err := json.Marshal(checkoutRequest{Plan: string(plan)})
	if err != nil {
		return "", fmt.Errorf("marshal checkout request: %w", err)
	}

	status, raw, err := c.do(ctx, http.MethodPost, checkoutPath, body)
	if err != nil {
		return "", &domain.UpstreamError{Kind: domain.ErrCheckoutUpstream, Message: err.Error()}
	}

	var resp checkoutResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", &domain.UpstreamError{
			Kind:    domain.ErrCheckoutUpstream,
			Message: fmt.Sprintf("unexpected response from checkout (status %d)", status),
		}
	}

	switch {
	case status == http.StatusOK && resp.URL != "":
		return resp.URL, nil
	case status == http.StatusBadRequest:
		return "", &domain.UpstreamError{Kind: domain.ErrCheckoutConfig, Message: resp.Error}
	case resp.Error != "":
		return "", &domain.UpstreamError{Kind: domain.ErrCheckoutUpstream, Message: resp.Error}
	default:
		return "", &domain.UpstreamError{
			Kind:    domain.ErrCheckoutUpstream,
			Message: fmt.Sprintf("unexpected response from checkout (status %d)", status),
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 0, nil, err
		}
		return 0, nil, fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, raw, nil
}
