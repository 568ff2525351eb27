package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config armazena todas as configurações do front end de estoque.
// Os campos cobrem o servidor HTTP local, a API REST remota de estoque
// e a infraestrutura de sessão (Redis).
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// API remota de estoque (colaborador externo)
	APIBaseURL string

	// Sessão (Redis)
	RedisAddr  string
	SessionTTL time.Duration

	// Rate Limiting do login
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. API remota
		// mustGetEnv garante que a aplicação não inicie sem saber onde está a API.
		APIBaseURL: mustGetEnv("API_BASE_URL"),

		// 3. Sessão (Redis)
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		SessionTTL: getDurationEnv("SESSION_TTL_HOURS", 12) * time.Hour, // 12h padrão

		// 4. Rate Limiting (apenas no POST /login)
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 10),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute, // 1 min padrão
	}

	return cfg
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return time.Duration(defaultValue)
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return time.Duration(defaultValue)
	}
	return time.Duration(value)
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
