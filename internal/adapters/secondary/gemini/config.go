package gemini

import (
	"time"
)

type Config struct {
	APIKey     string        `envconfig:"API_KEY"`
	BaseURL    string        `envconfig:"BASE_URL" default:"https://generativelanguage.googleapis.com"`
	APIVersion string        `envconfig:"API_VERSION" default:"v1beta"`
	Model      string        `envconfig:"MODEL" default:"gemini-2.5-flash-image"`
	Timeout    time.Duration `envconfig:"TIMEOUT" default:"120s"`
	PreferIPv4 bool          `envconfig:"PREFER_IPV4" default:"false"`
}

// Enabled генерация на сервере включается только при заданном ключе
func (c *Config) Enabled() bool {
	return c != nil && c.APIKey != ""
}
