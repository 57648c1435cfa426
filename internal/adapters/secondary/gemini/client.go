package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/admin/web-apps/banner-ai/internal/domain"
	"github.com/admin/web-apps/banner-ai/internal/pkg/httpclient"
	"github.com/admin/web-apps/banner-ai/internal/ports/service"
)

const maxErrorBody = 512

// Client генератор картинок через Gemini generateContent
type Client struct {
	cfg        *Config
	HTTPClient *http.Client
	Log        *slog.Logger
}

var _ service.IImageGenerator = (*Client)(nil)

func NewClient(cfg *Config, log *slog.Logger) *Client {
	return &Client{
		cfg: cfg,
		HTTPClient: httpclient.New(httpclient.Options{
			PreferIPv4: cfg.PreferIPv4,
			Timeout:    cfg.Timeout,
		}),
		Log: log,
	}
}

func (c *Client) buildURL() string {
	return fmt.Sprintf("%s/%s/models/%s:generateContent",
		strings.TrimRight(c.cfg.BaseURL, "/"),
		strings.Trim(c.cfg.APIVersion, "/"),
		c.cfg.Model)
}

// GenerateImage берёт первую inlineData часть ответа, без неё возвращает domain.ErrNoImageData
func (c *Client) GenerateImage(ctx context.Context, prompt string, aspectRatio string) (*domain.GeneratedImage, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("prompt is empty")
	}

	req := generateContentRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
		},
	}
	if aspectRatio != "" {
		req.GenerationConfig.ImageConfig = &imageConfig{AspectRatio: aspectRatio}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.cfg.APIKey)

	httpResp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	defer httpResp.Body.Close()

	rawBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode >= http.StatusBadRequest {
		c.Log.WarnContext(ctx, "gemini api error",
			"status", httpResp.StatusCode,
			"model", c.cfg.Model,
			"body", truncateString(string(rawBody), maxErrorBody))
		return nil, fmt.Errorf("gemini API %s: %s", httpResp.Status, apiErrorMessage(rawBody))
	}

	var decoded generateContentResponse
	if err := json.Unmarshal(rawBody, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	image, err := extractImage(decoded)
	if err != nil {
		return nil, err
	}

	c.Log.DebugContext(ctx, "gemini image generated",
		"model", c.cfg.Model,
		"mime_type", image.MimeType,
		"bytes", len(image.Data))
	return image, nil
}

func extractImage(resp generateContentResponse) (*domain.GeneratedImage, error) {
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData == nil || p.InlineData.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("decode inline data: %w", err)
			}
			mime := p.InlineData.MimeType
			if mime == "" {
				mime = "image/png"
			}
			return &domain.GeneratedImage{MimeType: mime, Data: data}, nil
		}
	}
	return nil, domain.ErrNoImageData
}

func apiErrorMessage(raw []byte) string {
	var apiErr errorResponse
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Message != "" {
		return apiErr.Error.Message
	}
	return truncateString(strings.TrimSpace(string(raw)), maxErrorBody)
}

// truncateString обрезает строку до maxLen байт, не разрывая UTF-8 символ
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	for maxLen > 0 && !utf8.RuneStart(s[maxLen]) {
		maxLen--
	}
	return s[:maxLen] + "..."
}
