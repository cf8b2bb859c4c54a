// internal/config/config.go
//
// Environment-driven configuration. A .env file is loaded first (dev
// convenience, ignored if absent), then the struct is populated from the
// process environment.

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           string `env:"PORT" envDefault:"5176"`
	DatabaseDSN    string `env:"DATABASE_DSN" envDefault:"./data/app.db"`
	JWTSecret      string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME" envDefault:"ghostcode_token"`
	ClientOrigin   string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	Env            string `env:"APP_ENV" envDefault:"development"`
}

// Load reads .env (if present) and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Production reports whether the app runs with production cookie settings.
func (c Config) Production() bool { return c.Env == "production" }
