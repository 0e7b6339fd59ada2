package config

import (
	"os"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Gateway  GatewayConfig
	Ledger   LedgerConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret string
	Issuer       string
	AccessExpiry time.Duration
}

// GatewayConfig configures the external payment processor. An empty SecretKey
// selects the stub gateway (development mode).
type GatewayConfig struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
	Timeout       time.Duration
}

// LedgerConfig carries fee rates and summary sizing. Fees are computed and
// stored at intent-creation time; completion applies the stored values.
type LedgerConfig struct {
	ProcessorFeeRate   decimal.Decimal // e.g. 0.029 = 2.9%
	ProcessorFeeFixed  decimal.Decimal // flat per-charge fee
	PlatformFeeRate    decimal.Decimal
	RecentTransactions int
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         envOr("PORT", "8080"),
			Env:          envOr("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             envOr("DATABASE_DSN", "swapyard:swapyard@tcp(localhost:3306)/swapyard?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret: envOr("JWT_ACCESS_SECRET", "change-me-in-production"),
			Issuer:       "swapyard",
			AccessExpiry: 15 * time.Minute,
		},
		Gateway: GatewayConfig{
			SecretKey:     os.Getenv("GATEWAY_SECRET_KEY"),
			WebhookSecret: os.Getenv("GATEWAY_WEBHOOK_SECRET"),
			Currency:      "usd",
			Timeout:       30 * time.Second,
		},
		Ledger: LedgerConfig{
			ProcessorFeeRate:   decimal.NewFromFloat(0.029),
			ProcessorFeeFixed:  decimal.NewFromFloat(0.30),
			PlatformFeeRate:    decimal.NewFromFloat(0.01),
			RecentTransactions: 10,
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
