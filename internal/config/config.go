package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/BruksfildServices01/barberia-web/internal/timezone"
)

type Config struct {
	// API remota de agendamento (colaborador externo)
	APIBaseURL string

	// Segredo compartilhado com a API remota para validar o bearer token
	JWTSecret string

	ServerPort string

	// Cache de respostas GET (desligado quando RedisAddr vazio ou TTL <= 0)
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CacheTTLSeconds int

	// Origens liberadas no CORS; vazio libera a origem da requisição
	AllowedOrigins []string

	// Fuso da barbearia: a grade é derivada nele
	Timezone string
}

func Load() *Config {
	// .env opcional, só para desenvolvimento local
	_ = godotenv.Load()

	return &Config{
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:5000/api"),
		JWTSecret:       getEnv("JWT_SECRET", "changeme"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		CacheTTLSeconds: getEnvInt("CACHE_TTL_SECONDS", 300),
		AllowedOrigins:  getEnvList("ALLOWED_ORIGINS"),
		Timezone:        getEnv("SHOP_TIMEZONE", timezone.DefaultTimezone),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}
