package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds runtime settings, read from the environment with a
// best-effort .env file for local development.
type Config struct {
	Port     string
	DBPath   string
	LogLevel string
	Currency string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win.
func Load() Config {
	godotenv.Load()

	return Config{
		Port:     getenv("IGREJA_PORT", "8080"),
		DBPath:   getenv("IGREJA_DB_PATH", "igreja.db"),
		LogLevel: getenv("IGREJA_LOG_LEVEL", "info"),
		Currency: getenv("IGREJA_CURRENCY", "R$"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
