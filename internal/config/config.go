package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string
	DBPath        string
	DataDir       string
	LogLevel      string
	JWTSecret     string
	TokenTTLHours int
	CORSOrigin    string
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:          envOr("ADDR", ":5000"),
		DBPath:        envOr("DB_PATH", "file:vocaflash.db"),
		DataDir:       envOr("DATA_DIR", "data"),
		LogLevel:      envOr("LOG_LEVEL", "INFO"),
		JWTSecret:     envOr("JWT_SECRET", "default-secret"),
		TokenTTLHours: envIntOr("TOKEN_TTL_HOURS", 168),
		CORSOrigin:    envOr("CORS_ORIGIN", "http://localhost:3000"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
