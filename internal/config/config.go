package config

import (
	"os"
)

type Config struct {
	Port          string
	DatabaseURL   string
	SessionSecret string
}

// Load reads configuration from environment variables with local dev
// fallbacks. godotenv is loaded by main before this runs.
func Load() Config {
	return Config{
		Port:          getenv("PORT", "8080"),
		DatabaseURL:   getenv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=votex port=5432 sslmode=disable"),
		SessionSecret: getenv("SESSION_SECRET", "secret_key_change_me"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
