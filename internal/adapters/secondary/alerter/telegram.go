package alerter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/admin/web-apps/banner-ai/internal/ports/service"
)

// Telegram ограничивает текст сообщения 4096 символами
const maxMessageRunes = 4096

// Client отправляет алерты в Telegram чат
type Client struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *slog.Logger
}

var _ service.IAlerterService = (*Client)(nil)

// NewClient создаёт клиента, при создании бот проверяет токен через getMe
func NewClient(cfg *Config, log *slog.Logger) (*Client, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	bot, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, cfg.APIEndpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram alerter: %w", err)
	}

	return &Client{
		bot:    bot,
		chatID: cfg.ChatID,
		log:    log,
	}, nil
}

// SendAlert отправляет алерт в чат
func (c *Client) SendAlert(ctx context.Context, message string) error {
	if c == nil || c.bot == nil {
		return fmt.Errorf("alerter client is not initialized")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(c.chatID, truncate(message, maxMessageRunes))
	msg.DisableWebPagePreview = true

	if _, err := c.bot.Send(msg); err != nil {
		c.log.WarnContext(ctx, "failed to send alert",
			"error", err,
			"chat_id", c.chatID,
		)
		return fmt.Errorf("failed to send alert: %w", err)
	}

	c.log.DebugContext(ctx, "alert sent successfully", "chat_id", c.chatID)
	return nil
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
