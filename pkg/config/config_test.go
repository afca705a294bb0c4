package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, "http://localhost:5000/api", c.Analytics.BaseURL)
	assert.Equal(t, 30, c.Analytics.VolatilityWindow)
	assert.Equal(t, "memory", c.Cache.Backend)
	assert.Equal(t, "system", c.Theme.Default)
	assert.True(t, c.UI.DeferredFragments)
	assert.False(t, c.UI.VolatilityTabShowsVolatility)
	assert.Equal(t, 30*time.Second, c.UI.ChartCacheTTL)
	assert.Equal(t, 10, c.Cache.Redis.Pool.Size)
	assert.Equal(t, 2, c.Cache.Redis.Pool.MinIdle)
	assert.Equal(t, 30*time.Second, c.Cache.Redis.Pool.Timeout)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
analytics:
  base_url: http://analytics:5000/api
  volatility_window: 60
theme:
  store: cache
  default: dark
cache:
  redis:
    pool:
      size: 32
      timeout: 5s
ui:
  volatility_tab_shows_volatility: true
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, "0.0.0.0", c.Server.Host)
	assert.Equal(t, "http://analytics:5000/api", c.Analytics.BaseURL)
	assert.Equal(t, 60, c.Analytics.VolatilityWindow)
	assert.Equal(t, "cache", c.Theme.Store)
	assert.Equal(t, "dark", c.Theme.Default)
	assert.True(t, c.UI.VolatilityTabShowsVolatility)
	assert.Equal(t, 32, c.Cache.Redis.Pool.Size)
	assert.Equal(t, 2, c.Cache.Redis.Pool.MinIdle)
	assert.Equal(t, 5*time.Second, c.Cache.Redis.Pool.Timeout)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"backend":   "cache:\n  backend: memcached\n",
		"theme":     "theme:\n  default: sepia\n",
		"window":    "analytics:\n  volatility_window: 0\n",
		"collector": "logging:\n  collector:\n    enabled: true\n",
		"location":  "ui:\n  location: Mars/Olympus\n",
		"yaml":      "server: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("BRENTDASH_PORT", "7000")
	t.Setenv("ANALYTICS_BASE_URL", "http://upstream/api")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("BRENTDASH_THEME_STORE", "cache")

	c, err := LoadWithEnv(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 7000, c.Server.Port)
	assert.Equal(t, "http://upstream/api", c.Analytics.BaseURL)
	assert.Equal(t, "redis", c.Cache.Redis.Host)
	assert.Equal(t, 6380, c.Cache.Redis.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Kafka.Brokers)
	assert.Equal(t, "cache", c.Theme.Store)
}
