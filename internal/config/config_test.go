package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "virtualgames.db", cfg.DatabasePath)
	assert.Equal(t, 10*time.Second, cfg.GraceWindow)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("ROOM_GRACE_WINDOW", "30s")
	t.Setenv("MESSAGE_RATE_BURST", "not-a-number")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.GraceWindow)
	assert.Equal(t, 24, cfg.MessageBurst, "bad value falls back to default")
}
