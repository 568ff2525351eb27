package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestLoadConfig_Defaults verifica os valores padrão quando apenas a
// variável obrigatória está definida.
func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:8000/api/")

	cfg := LoadConfig()

	assert.Equal(t, "http://localhost:8000/api/", cfg.APIBaseURL)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.RateLimitMaxRequests)
	assert.Equal(t, 1*time.Minute, cfg.RateLimitPeriod)
}

// TestLoadConfig_Overrides verifica que o ambiente sobrescreve os padrões.
func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://estoque.example.com/api/")
	t.Setenv("PORT", "8081")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SESSION_TTL_HOURS", "48")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "5")

	cfg := LoadConfig()

	assert.Equal(t, "https://estoque.example.com/api/", cfg.APIBaseURL)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 48*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5, cfg.RateLimitMaxRequests)
}

// TestLoadConfig_InvalidNumberFallsBack verifica o fallback quando o valor
// numérico é inválido.
func TestLoadConfig_InvalidNumberFallsBack(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:8000/api/")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "muitos")

	cfg := LoadConfig()

	assert.Equal(t, 10, cfg.RateLimitMaxRequests)
}
