package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "lifeshare.db", cfg.DatabaseDSN)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.CookieSecure)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.UsesDefaultSecret())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("DB_DRIVER", "postgres")
	v.Set("DATABASE_DSN", "host=db user=app dbname=lifeshare")
	v.Set("SESSION_TTL", "90m")
	v.Set("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.True(t, cfg.UsesDefaultSecret())

	v.Set("JWT_SECRET", "a-real-deployment-secret")
	cfg, err = FromViper(v)
	require.NoError(t, err)
	assert.False(t, cfg.UsesDefaultSecret())
}

func TestFromViper_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  interface{}
	}{
		{"unknown driver", "DB_DRIVER", "mysql"},
		{"short secret", "JWT_SECRET", "abc"},
		{"zero ttl", "SESSION_TTL", "0s"},
		{"bad log format", "LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			v.Set(tt.key, tt.val)

			_, err := FromViper(v)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}
