package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	config, err := InitConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, time.Second, config.Match.Interval)
	assert.Equal(t, "random", config.Match.White)
	assert.Equal(t, "random", config.Match.Black)
	assert.True(t, config.Match.HaltOnGameOver)
	assert.True(t, config.Match.ClaimDraws)
	assert.Equal(t, "light", config.UI.Theme)
	assert.Equal(t, ":8080", config.Server.Addr)
	assert.Empty(t, config.SSH.Addr)
	assert.Equal(t, "info", config.Log.Level)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("CHESSBATTLE_MATCH_MOVE_INTERVAL", "250ms")
	t.Setenv("BLACK_BOT", "newborn")
	t.Setenv("HALT_ON_GAME_OVER", "false")
	t.Setenv("CHESSBATTLE_UI_THEME", "dark")

	config, err := InitConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, config.Match.Interval)
	assert.Equal(t, "newborn", config.Match.Black)
	assert.False(t, config.Match.HaltOnGameOver)
	assert.Equal(t, "dark", config.UI.Theme)
}

func TestDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SEED=1234\nLOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("SEED")
		os.Unsetenv("LOG_LEVEL")
	})

	config, err := InitConfig(path)
	require.NoError(t, err)

	assert.Equal(t, int64(1234), config.Match.Seed)
	assert.Equal(t, "debug", config.Log.Level)
}

func TestBadInterval(t *testing.T) {
	t.Setenv("MOVE_INTERVAL", "0s")
	_, err := InitConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)

	t.Setenv("MOVE_INTERVAL", "soon")
	_, err = InitConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
