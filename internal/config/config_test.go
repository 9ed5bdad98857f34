package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/qrcodesy")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "")
	t.Setenv("APP_TIMEZONE", "")
	t.Setenv("PUBLIC_MENU_BASE_URL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("R2_BUCKET_NAME", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, "http://localhost:5173", cfg.PublicMenuBaseURL)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSOrigins)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.R2.Enabled())
	assert.False(t, cfg.Telegram.Enabled())
}

func TestLoad_Optional(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_TIMEZONE", "Asia/Riyadh")
	t.Setenv("PUBLIC_MENU_BASE_URL", "https://menu.example.com/")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com , https://b.example.com,")
	t.Setenv("R2_ENDPOINT", "https://r2.example.com")
	t.Setenv("R2_ACCESS_KEY", "key")
	t.Setenv("R2_SECRET_KEY", "secret")
	t.Setenv("R2_BUCKET_NAME", "images")
	t.Setenv("R2_PUBLIC_BASE_URL", "https://cdn.example.com/")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200300")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Asia/Riyadh", cfg.Location.String())
	assert.Equal(t, "https://menu.example.com", cfg.PublicMenuBaseURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.True(t, cfg.R2.Enabled())
	assert.Equal(t, "https://cdn.example.com", cfg.R2.PublicBaseURL)
	assert.True(t, cfg.Telegram.Enabled())
	assert.Equal(t, int64(-100200300), cfg.Telegram.ChatID)
}

func TestLoad_InvalidValues(t *testing.T) {
	setRequired(t)

	t.Setenv("APP_TIMEZONE", "Mars/Olympus")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")
	_, err = Load()
	assert.Error(t, err)
}
