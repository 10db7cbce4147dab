package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/fincert/internal/config"
)

func TestNew_FileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fincert.log")
	log, err := New(config.Log{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)

	log.Debug("session started")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{"), "json encoder")
	assert.Contains(t, string(data), "session started")
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fincert.log")
	log, err := New(config.Log{Level: "warn", File: path})
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(config.Log{Level: "loud"})
	assert.Error(t, err)
}

func TestForTUI_UsesCacheDir(t *testing.T) {
	cache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cache)
	t.Setenv("HOME", cache)

	log, err := ForTUI(config.Log{Level: "info"})
	require.NoError(t, err)
	log.Info("hello")
	_ = log.Sync()

	dir, err := os.UserCacheDir()
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "fincert", "fincert.log"))
	assert.NoError(t, err)
}
