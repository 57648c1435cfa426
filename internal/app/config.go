package app

import (
	"fmt"
	"strings"
	"time"

	server "github.com/admin/web-apps/banner-ai/internal/adapters/primary/http"
	alerterAdapter "github.com/admin/web-apps/banner-ai/internal/adapters/secondary/alerter"
	"github.com/admin/web-apps/banner-ai/internal/adapters/secondary/gemini"
	kafkaAdapter "github.com/admin/web-apps/banner-ai/internal/adapters/secondary/kafka"
	"github.com/admin/web-apps/banner-ai/internal/adapters/secondary/payment/stripe"
	"github.com/admin/web-apps/banner-ai/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/web-apps/banner-ai/internal/adapters/secondary/storage/redis"
	"github.com/admin/web-apps/banner-ai/internal/adapters/secondary/storage/s3"
	"github.com/admin/web-apps/banner-ai/internal/domain"
	"github.com/admin/web-apps/banner-ai/internal/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Бэкенды счётчиков usage
const (
	UsageBackendMemory   = "memory"
	UsageBackendPostgres = "postgres"
	UsageBackendRedis    = "redis"
)

type Config struct {
	Log        *logger.Config         `envconfig:"LOG"`
	Server     *server.Config         `envconfig:"APISERVER"`
	Usage      UsageConfig            `envconfig:"USAGE"`
	Generation GenerationConfig       `envconfig:"GENERATION"`
	Postgres   *pg.Config             `envconfig:"POSTGRES"`
	Redis      *redisAdapter.Config   `envconfig:"REDIS"`
	Gemini     *gemini.Config         `envconfig:"GEMINI"`
	Stripe     *stripe.Config         `envconfig:"STRIPE"`
	Kafka      *kafkaAdapter.Config   `envconfig:"KAFKA"`
	Alerter    *alerterAdapter.Config `envconfig:"ALERTER"`
	S3         *s3.Config             `envconfig:"S3"`
}

// UsageConfig где хранятся счётчики и сколько бесплатных генераций
type UsageConfig struct {
	Backend string `envconfig:"BACKEND" default:"memory"` // memory | postgres | redis
	Limit   int64  `envconfig:"LIMIT" default:"3"`
}

// GenerationConfig генерация на сервере (/generate)
type GenerationConfig struct {
	Policy  string        `envconfig:"POLICY" default:"strict"` // strict | lenient
	Timeout time.Duration `envconfig:"TIMEOUT" default:"120s"`
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate проверяет сочетания настроек, которые envconfig проверить не может
func (c *Config) Validate() error {
	c.Usage.Backend = strings.ToLower(strings.TrimSpace(c.Usage.Backend))
	switch c.Usage.Backend {
	case UsageBackendMemory:
	case UsageBackendPostgres:
		if c.Postgres == nil || c.Postgres.Host == "" {
			return fmt.Errorf("usage backend %q requires POSTGRES_HOST", c.Usage.Backend)
		}
	case UsageBackendRedis:
		if c.Redis == nil || c.Redis.Host == "" {
			return fmt.Errorf("usage backend %q requires REDIS_HOST", c.Usage.Backend)
		}
	default:
		return fmt.Errorf("unknown usage backend %q", c.Usage.Backend)
	}

	if c.Usage.Limit < 0 {
		return fmt.Errorf("usage limit must not be negative, got %d", c.Usage.Limit)
	}

	if !c.Generation.QuotaPolicy().IsValid() {
		return fmt.Errorf("unknown generation policy %q", c.Generation.Policy)
	}

	if c.Stripe.Enabled() {
		if err := c.Stripe.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func (g GenerationConfig) QuotaPolicy() domain.QuotaPolicy {
	return domain.QuotaPolicy(strings.ToLower(strings.TrimSpace(g.Policy)))
}
