package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults fill missing fields", func(t *testing.T) {
		// Given: a config file with only the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: it is loaded
		conf, err := Load(path)

		// Then: the remaining fields take their defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "default", conf.GameID)
		assert.Equal(t, DriverMemory, conf.Storage.Driver)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		// Given: a file selecting sqlite and an env var selecting redis
		path := writeConfig(t, "storage:\n  driver: sqlite\nredis:\n  host: cache\n")
		t.Setenv("STORAGE_DRIVER", "redis")

		// When: it is loaded
		conf, err := Load(path)

		// Then: the env var wins
		require.NoError(t, err)
		assert.Equal(t, DriverRedis, conf.Storage.Driver)
		assert.Equal(t, "cache:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Unknown driver is rejected", func(t *testing.T) {
		path := writeConfig(t, "storage:\n  driver: etcd\n")

		_, err := Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown storage driver")
	})

	t.Run("Postgres requires a DSN", func(t *testing.T) {
		path := writeConfig(t, "storage:\n  driver: postgres\n")

		_, err := Load(path)

		require.Error(t, err)
	})

	t.Run("MustLoad panics on a missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}
