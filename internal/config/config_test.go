package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	req := require.New(t)
	for _, key := range []string{"ENV", "PORT", "DATABASE_URL", "DB_TIMEOUT_SECONDS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	req.Equal("development", cfg.Env)
	req.Equal("5000", cfg.Port)
	req.NotEmpty(cfg.DatabaseURL)
	req.Equal(5*time.Second, cfg.DBTimeout)
	req.False(cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	req := require.New(t)
	t.Setenv("ENV", "production")
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/chat")
	t.Setenv("DB_TIMEOUT_SECONDS", "2")

	cfg := Load()
	req.Equal("production", cfg.Env)
	req.Equal("8080", cfg.Port)
	req.Equal("postgres://u:p@db:5432/chat", cfg.DatabaseURL)
	req.Equal(2*time.Second, cfg.DBTimeout)
	req.True(cfg.IsProduction())
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("DB_TIMEOUT_SECONDS", "not-a-number")

	cfg := Load()
	require.Equal(t, 5*time.Second, cfg.DBTimeout)
}
