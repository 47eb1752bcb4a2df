package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadExigeJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadValores(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_SSL_MODE_DISABLE", "true")
	t.Setenv("CORS_ORIGINS", "http://a.com, http://b.com,,")
	t.Setenv("DB_DEBUG", "talvez")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, uint(6543), cfg.Database.Port)
	assert.True(t, cfg.Database.SSLDisable)
	assert.False(t, cfg.Database.Debug)
	assert.Equal(t, []string{"http://a.com", "http://b.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "uploads", cfg.Storage.UploadDir)
}
