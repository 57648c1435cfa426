package alerter

import (
	"time"
)

type Config struct {
	BotToken    string        `envconfig:"BOT_TOKEN"`
	ChatID      int64         `envconfig:"CHAT_ID"`
	APIEndpoint string        `envconfig:"API_ENDPOINT" default:"https://api.telegram.org/bot%s/%s"`
	Timeout     time.Duration `envconfig:"TIMEOUT" default:"10s"`
}

// Enabled алерты включаются, если заданы токен и чат
func (c *Config) Enabled() bool {
	return c != nil && c.BotToken != "" && c.ChatID != 0
}
