package config_test

import (
	"testing"
	"time"

	"github.com/dom/taskchat-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "sqlite://todo_app.db", cfg.DatabaseURL)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenExpiry)
	assert.Equal(t, config.ResponderGenerative, cfg.Responder)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLMModel)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.InDelta(t, 0.7, cfg.LLMTemperature, 0.0001)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9000")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")
	t.Setenv("RESPONDER", "rules")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, http://127.0.0.1:3000")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenExpiry)
	assert.Equal(t, config.ResponderRules, cfg.Responder)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.AllowedOrigins)
}

func TestLoad_SecretFallback(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("BETTER_AUTH_SECRET", "legacy-secret")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "legacy-secret", cfg.JWTSecret)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing secret",
			env:  map[string]string{"JWT_SECRET": "", "BETTER_AUTH_SECRET": ""},
		},
		{
			name: "non-positive expiry",
			env:  map[string]string{"JWT_SECRET": "secret", "ACCESS_TOKEN_EXPIRE_MINUTES": "0"},
		},
		{
			name: "unknown responder",
			env:  map[string]string{"JWT_SECRET": "secret", "RESPONDER": "magic"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
