package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Env              string
	Port             string
	DBURL            string
	TokenTTLMinutes  int
	APIPrefix        string
	CORSAllowOrigins string
}

func Load() *Config {
	return &Config{
		Env:              getEnv("ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		DBURL:            mustGetEnv("DB_URL"),
		TokenTTLMinutes:  getEnvAsInt("TOKEN_TTL_MINUTES", 1440),
		APIPrefix:        getEnv("API_PREFIX", "/api"),
		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
