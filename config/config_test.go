package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func load(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(func() {
		viper.Reset()
		AppConfig = Config{}
	})
	LoadConfig()
}

func TestDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	load(t)

	assert.Equal(t, "8080", AppConfig.AppPort)
	assert.Equal(t, "consultorio", AppConfig.DatabaseName)
	assert.Equal(t, 1, AppConfig.RedisAuthDB)
	assert.Equal(t, "mercadopago", AppConfig.PaymentProvider)
	assert.Equal(t, 24, AppConfig.ReminderLeadHours)
	assert.Equal(t, 12*time.Hour, TokenTTL())
	assert.Equal(t, "America/Argentina/Buenos_Aires", Location().String())
	assert.False(t, IsProduction())
}

func TestEnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ENV", "production")
	t.Setenv("JWT_TTL_HOURS", "2")
	t.Setenv("SERVICE_PRICE", "15000.5")
	t.Setenv("TIMEZONE", "Not/AZone")
	load(t)

	assert.True(t, IsProduction())
	assert.Equal(t, 2*time.Hour, TokenTTL())
	assert.Equal(t, 15000.5, AppConfig.ServicePrice)
	assert.Equal(t, time.UTC, Location(), "unknown zones fall back to UTC")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("APP_PORT: \"9090\"\nSERVICE_CURRENCY: USD\n"), 0o600))
	load(t)

	assert.Equal(t, "9090", AppConfig.AppPort)
	assert.Equal(t, "USD", AppConfig.ServiceCurrency)
}
