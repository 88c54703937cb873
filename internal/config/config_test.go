package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.port", envKey("NEWS_SERVER__PORT"))
	assert.Equal(t, "database.ssl_mode", envKey("NEWS_DATABASE__SSL_MODE"))
	assert.Equal(t, "observability.logging.level", envKey("NEWS_OBSERVABILITY__LOGGING__LEVEL"))
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, "nc_news", cfg.Database.Name)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, cfg.Primary.Env, cfg.Observability.Environment)
	assert.Equal(t, 5*time.Second, cfg.Observability.HealthChecks.Timeout)
	assert.Equal(t, 100*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
	assert.False(t, cfg.Observability.NewRelic.Enabled())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("NEWS_PRIMARY__ENV", "production")
	t.Setenv("NEWS_SERVER__PORT", "8081")
	t.Setenv("NEWS_DATABASE__PORT", "6543")
	t.Setenv("NEWS_DATABASE__SSL_MODE", "require")
	t.Setenv("NEWS_OBSERVABILITY__LOGGING__LEVEL", "warn")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "production", cfg.Observability.Environment)
	assert.True(t, cfg.Observability.IsProduction())
	assert.Equal(t, "warn", cfg.Observability.GetLogLevel())
	assert.Contains(t, cfg.Database.DSN(), "sslmode=require")
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Run("ssl mode", func(t *testing.T) {
		t.Setenv("NEWS_DATABASE__SSL_MODE", "sometimes")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("log level", func(t *testing.T) {
		t.Setenv("NEWS_OBSERVABILITY__LOGGING__LEVEL", "loud")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "invalid logging level")
	})
}

func TestDSNEscapesPassword(t *testing.T) {
	d := DatabaseConfig{
		Host:     "::1",
		Port:     5432,
		User:     "news",
		Password: "p@ss:w/rd",
		Name:     "nc_news",
		SSLMode:  "disable",
	}

	assert.Equal(t, "postgres://news:p%40ss%3Aw%2Frd@[::1]:5432/nc_news?sslmode=disable", d.DSN())
}
