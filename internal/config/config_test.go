package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 168*time.Hour, cfg.JWTRefreshExpiry)
	assert.Equal(t, 6, cfg.PasswordMinLength)
	assert.Equal(t, 72*time.Hour, cfg.PasswordResetExpiry)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.EmailDomainBlacklist)
}

func TestLoadBlacklistAndOverrides(t *testing.T) {
	t.Setenv("EMAIL_DOMAIN_BLACKLIST", "gmail.com,hotmail.com,yahoo.com")
	t.Setenv("PASSWORD_MIN_LENGTH", "10")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"gmail.com", "hotmail.com", "yahoo.com"}, cfg.EmailDomainBlacklist)
	assert.Equal(t, 10, cfg.PasswordMinLength)
	assert.Equal(t, 30*time.Minute, cfg.JWTAccessExpiry)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db",
		DBPort:     "5433",
		DBUser:     "svc",
		DBPassword: "pw",
		DBName:     "accounts",
		DBSSLMode:  "require",
	}
	assert.Equal(t,
		"host=db user=svc password=pw dbname=accounts port=5433 sslmode=require TimeZone=UTC",
		cfg.DSN())
}
