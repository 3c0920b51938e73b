package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port           string
	Environment    string
	AllowedOrigins []string
	JWTSecret      string
	Redis          RedisConfig
	Oracle         OracleConfig
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// OracleConfig configures the language-model backend used for content
// moderation, doubt classification and assistant answers.
type OracleConfig struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

func Load() *Config {
	// Parse allowed origins (comma-separated)
	originsStr := getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	origins := strings.Split(originsStr, ",")

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		AllowedOrigins: origins,
		JWTSecret:      getEnv("JWT_SECRET", "change-me-in-production"),
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		},
		Oracle: OracleConfig{
			APIKey:  getEnv("ORACLE_API_KEY", ""),
			APIURL:  getEnv("ORACLE_API_URL", "https://api.openai.com/v1"),
			Model:   getEnv("ORACLE_MODEL", "gpt-4o-mini"),
			Timeout: time.Duration(getIntEnv("ORACLE_TIMEOUT_SECONDS", 15)) * time.Second,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
