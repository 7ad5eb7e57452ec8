// Package config loads server configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config contains server configuration parameters.
type Config struct {
	Addr     string `env:"ADDR" envDefault:"localhost:3000"`
	WebDir   string `env:"WEB_DIR" envDefault:"web"`
	LogLevel int    `env:"LOG_LEVEL" envDefault:"0"`

	// StorageDriver selects the persistence backend: "file" or "postgres".
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"file"`

	UsersFile     string `env:"USERS_FILE" envDefault:"users.json"`
	MessagesFile  string `env:"MESSAGES_FILE" envDefault:"messages.json"`
	SearchLogFile string `env:"SEARCH_LOG_FILE" envDefault:"search.log"`

	DatabaseURL string `env:"DATABASE_URL"`

	OIDC OIDC `envPrefix:"OIDC_"`
}

// OIDC contains the optional SSO parameters. SSO is enabled iff Issuer is
// non-empty.
type OIDC struct {
	Issuer       string `env:"ISSUER"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"`
}

// New loads configuration from a .env file (when present) and the
// environment.
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
