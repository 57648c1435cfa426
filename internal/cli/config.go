package cli

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/admin/web-apps/banner-ai/internal/adapters/secondary/gemini"
	"github.com/admin/web-apps/banner-ai/internal/adapters/secondary/usageapi"
	"github.com/admin/web-apps/banner-ai/internal/pkg/logger"
)

const envPrefix = "banner_ai"

// Config те же переменные окружения, что и у сервера (BANNER_AI_*)
type Config struct {
	Log      *logger.Config   `envconfig:"LOG"`
	Gemini   *gemini.Config   `envconfig:"GEMINI"`
	UsageAPI *usageapi.Config `envconfig:"USAGE_API"`
}

func loadConfig() (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
