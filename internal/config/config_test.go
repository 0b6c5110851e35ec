package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("ADMIN_PASSWORD", "hunter2")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "wedding", cfg.DBName)
	assert.Equal(t, "127.0.0.1:6379", cfg.RedisAddr)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigRequiredFields(t *testing.T) {
	setRequired(t)
	t.Setenv("MONGODB_URI", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "MONGODB_URI")
}

func TestLoadConfigRequiresSomePassword(t *testing.T) {
	setRequired(t)
	t.Setenv("ADMIN_PASSWORD", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "ADMIN_PASSWORD")

	// A bcrypt hash alone is enough.
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.AdminPassword)
}

func TestAllowedOriginsSplitsAndTrims(t *testing.T) {
	setRequired(t)
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}
