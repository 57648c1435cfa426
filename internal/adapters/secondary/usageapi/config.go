package usageapi

import (
	"time"
)

type Config struct {
	BaseURL string        `envconfig:"BASE_URL" default:"http://localhost:3000/api"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"10s"`
}
