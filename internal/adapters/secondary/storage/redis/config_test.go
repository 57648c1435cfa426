package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigOptions(t *testing.T) {
	cfg := &Config{
		Host:        "cache",
		Port:        "6380",
		Database:    2,
		DialTimeout: time.Second,
		PoolSize:    4,
	}

	opts := cfg.options()
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, time.Second, opts.DialTimeout)
	assert.Equal(t, 4, opts.PoolSize)

	cfg.Host = "::1"
	assert.Equal(t, "[::1]:6380", cfg.options().Addr)
}
