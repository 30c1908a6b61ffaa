package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultJWTSecret is the development signing key used when JWT_SECRET is
// unset. Anyone who knows it can forge sessions.
const DefaultJWTSecret = "lifeshare_secret"

// Config holds the runtime settings of the server.
type Config struct {
	AppPort      string        `validate:"required"`
	DBDriver     string        `validate:"required,oneof=sqlite postgres"`
	DatabaseDSN  string        `validate:"required"`
	JWTSecret    string        `validate:"required,min=8"`
	SessionTTL   time.Duration `validate:"gt=0"`
	CookieSecure bool
	RedisURL     string
	RabbitMQURL  string
	LogLevel     string
	LogFormat    string `validate:"oneof=text json"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "lifeshare.db")
	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

// Load reads configuration from a .env file (if any) and the environment.
func Load() (*Config, error) {
	// Missing .env is fine, the environment and defaults still apply
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds and validates a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:      v.GetString("APP_PORT"),
		DBDriver:     v.GetString("DB_DRIVER"),
		DatabaseDSN:  v.GetString("DATABASE_DSN"),
		JWTSecret:    v.GetString("JWT_SECRET"),
		SessionTTL:   v.GetDuration("SESSION_TTL"),
		CookieSecure: v.GetBool("COOKIE_SECURE"),
		RedisURL:     v.GetString("REDIS_URL"),
		RabbitMQURL:  v.GetString("RABBITMQ_URL"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		LogFormat:    v.GetString("LOG_FORMAT"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// UsesDefaultSecret reports whether sessions are signed with DefaultJWTSecret.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}
