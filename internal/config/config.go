package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/deepaksivamani/virtualgames/internal/logger"
)

type Config struct {
	Port            int
	AllowedOrigins  []string
	DatabasePath    string
	PuzzleFile      string
	WordFile        string
	GraceWindow     time.Duration
	MessageRate     float64
	MessageBurst    int
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:           getEnvInt("PORT", 5000),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		DatabasePath:   getEnv("DATABASE_PATH", "virtualgames.db"),
		PuzzleFile:     getEnv("PUZZLE_FILE", ""),
		WordFile:       getEnv("WORD_FILE", ""),
		GraceWindow:    getEnvDuration("ROOM_GRACE_WINDOW", 10*time.Second),
		MessageRate:    float64(getEnvInt("MESSAGE_RATE_RPS", 8)),
		MessageBurst:   getEnvInt("MESSAGE_RATE_BURST", 24),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warningf("Invalid integer for %s: %q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logger.Warningf("Invalid duration for %s: %q, using default %v", key, v, fallback)
		return fallback
	}
	return d
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
