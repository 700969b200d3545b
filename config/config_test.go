package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		path := writeConfig(t, "log-level: debug\n")

		cfg, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, "debug", cfg.LogLevel)
		require.Equal(t, 8, cfg.BoardSize, "Board size should default to 8")
		require.Equal(t, []string{"white", "black"}, cfg.Players)
		require.Equal(t, 10, cfg.Tournament.NumGames)
		require.Equal(t, "localhost:6379", cfg.Redis.GetRedisAddr())
		require.Equal(t, ":9090", cfg.HTTP.GetAddr())
		require.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout)
	})

	t.Run("agents", func(t *testing.T) {
		path := writeConfig(t, `
tournament:
  agents:
    - name: search
      kind: mcts
      episodes: 500
      duration: 1s
      temperature: 0.5
`)

		cfg, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, []Agent{{
			Name:        "search",
			Kind:        "mcts",
			Episodes:    500,
			Duration:    time.Second,
			Temperature: 0.5,
		}}, cfg.Tournament.Agents)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("OTHELLO_BOARD_SIZE", "6")
		path := writeConfig(t, "board-size: 10\n")

		cfg, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 6, cfg.BoardSize)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.Error(t, err)
		require.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}
