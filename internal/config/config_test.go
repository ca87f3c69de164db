package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults fill missing fields", func(t *testing.T) {
		// Given: a config file with only the log level
		path := writeFile(t, "config.yml", "log-level: debug\n")

		// When: it is loaded
		conf, err := Load(path)

		// Then: every other field takes its default
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "8080", conf.SocketPort)
		assert.Equal(t, 500*time.Millisecond, conf.BotDelay)
		assert.False(t, conf.Redis.Enabled)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, entity.DefaultSettings(), conf.Defaults.Settings())
	})

	t.Run("File values are read", func(t *testing.T) {
		path := writeFile(t, "config.yml", `
bot-delay: 1s
redis:
  enabled: true
  host: redis
  port: "6380"
  settings-ttl: 1h
defaults:
  player-mark: O
  opponent: player
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, time.Second, conf.BotDelay)
		assert.True(t, conf.Redis.Enabled)
		assert.Equal(t, "redis:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, time.Hour, conf.Redis.SettingsTTL)
		assert.Equal(t, entity.Settings{PlayerMark: entity.PlayerO, Opponent: entity.OpponentPlayer}, conf.Defaults.Settings())
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := writeFile(t, "config.yml", "http-port: \"9000\"\n")
		t.Setenv("HTTP_PORT", "9999")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "9999", conf.HTTPPort)
	})

	t.Run("Env file is applied", func(t *testing.T) {
		path := writeFile(t, "config.yml", "log-level: info\n")
		envPath := writeFile(t, ".env", "SOCKET_PORT=7070\n")
		t.Cleanup(func() { _ = os.Unsetenv("SOCKET_PORT") })

		conf, err := Load(path, envPath)

		require.NoError(t, err)
		assert.Equal(t, "7070", conf.SocketPort)
	})

	t.Run("Missing config file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.Error(t, err)
		assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "absent.yml")) })
	})
}

func TestDefaults_Settings(t *testing.T) {
	defaults := Defaults{PlayerMark: "Z", Opponent: "nobody"}

	assert.Equal(t, entity.DefaultSettings(), defaults.Settings())
}
