package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	DatabaseURL string `env:"DATABASE_URL,required"`
	Port        int    `env:"PORT" envDefault:"8080"`

	// Identity provider token verification
	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-please-change"`

	// Payment: midtrans hosted checkout
	MidtransServerKey  string `env:"MIDTRANS_SERVER_KEY"`
	MidtransProduction bool   `env:"MIDTRANS_PRODUCTION" envDefault:"false"`

	// Advisory collaborators; empty URL disables the collaborator
	AnalyticsURL string `env:"ANALYTICS_URL"`
	AnalyticsKey string `env:"ANALYTICS_API_KEY"`
	CartSyncURL  string `env:"CART_SYNC_URL"`

	// Migrations
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"migrations"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
