// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything injected at process start. The signing secret and
// store credentials are opaque values; nothing else inspects them.
type Config struct {
	Port string `env:"PORT" envDefault:"3000"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_DATABASE" envDefault:"bodycomp"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	DBPoolSize int    `env:"DB_POOL_SIZE" envDefault:"10"`

	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"1h"`

	ChatAPIURL string `env:"CHAT_API_URL" envDefault:"https://api.openai.com/v1"`
	ChatAPIKey string `env:"CHAT_API_KEY"`
	ChatModel  string `env:"CHAT_MODEL" envDefault:"gpt-4o-mini"`

	OIDCIssuer       string `env:"OIDC_ISSUER"`
	OIDCClientID     string `env:"OIDC_CLIENT_ID"`
	OIDCClientSecret string `env:"OIDC_CLIENT_SECRET"`
	OIDCRedirectURL  string `env:"OIDC_REDIRECT_URL"`

	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// DSN builds the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// SSOEnabled reports whether an OIDC provider is configured.
func (c *Config) SSOEnabled() bool {
	return c.OIDCIssuer != "" && c.OIDCClientID != ""
}
