// File: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	JWTSecret   string `env:"JWT_SECRET,required,notEmpty"`

	Addr string `env:"ADDR" envDefault:":8080"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	UploadsDir string `env:"UPLOADS_DIR" envDefault:"./uploads"`

	// BookCacheTTL is the lifetime of the cached catalog listing, in seconds.
	BookCacheTTL int `env:"BOOK_CACHE_TTL" envDefault:"60"`

	WorkerCount int `env:"WORKER_COUNT" envDefault:"1"`
}

// Load parses the configuration from the process environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.WorkerCount <= 0 {
		return nil, fmt.Errorf("invalid WORKER_COUNT: %d", cfg.WorkerCount)
	}
	return cfg, nil
}

// BookCacheExpiry returns BookCacheTTL as a duration.
func (c *Config) BookCacheExpiry() time.Duration {
	return time.Duration(c.BookCacheTTL) * time.Second
}
