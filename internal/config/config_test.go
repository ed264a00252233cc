package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_NAME", "leafscan-test")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_HOURS", "2")
	t.Setenv("OTP_CODE_LENGTH", "8")
	t.Setenv("OTP_EXPIRY_MINUTES", "5")
	t.Setenv("OTP_CLEANUP_INTERVAL_MINUTES", "15")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "leafscan-test", cfg.App.Name)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 2*time.Hour, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 8, cfg.OTP.CodeLength)
	assert.Equal(t, 5*time.Minute, cfg.OTP.TTL())
	assert.Equal(t, 15*time.Minute, cfg.Janitor.Interval())
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.False(t, cfg.Postgres.RunMigrations)
}

func TestLoadRejectsInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestDurationFallbacks(t *testing.T) {
	assert.Equal(t, 10*time.Minute, OTPConfig{}.TTL())
	assert.Equal(t, time.Hour, OTPConfig{}.SendWindow())
	assert.Equal(t, 24*time.Hour, AuthConfig{}.AccessTokenTTL())
	assert.Equal(t, 30*time.Second, ClassifierConfig{}.Timeout())
	assert.Equal(t, time.Duration(0), JanitorConfig{}.Interval())
	assert.Equal(t, time.Duration(0), AppConfig{}.RequestTimeout())
	assert.Equal(t, 30*time.Second, AppConfig{RequestTimeoutSeconds: 30}.RequestTimeout())
}

func TestAddr(t *testing.T) {
	cfg := AppConfig{Host: "0.0.0.0", Port: "8080"}
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}
