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
	path := filepath.Join(t.TempDir(), "adminshell.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, BackendFile, cfg.State.Backend)
	assert.NotEmpty(t, cfg.State.File)
	assert.Equal(t, "adminshell:plugin-state", cfg.State.Redis.Key)
	assert.Equal(t, 4, cfg.Batch.Concurrency)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
language: zh
log:
  level: debug
  format: json
state:
  backend: redis
  redis:
    addr: cache:6379
    db: 2
batch:
  concurrency: 8
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "zh", cfg.Language)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, BackendRedis, cfg.State.Backend)
	assert.Equal(t, "cache:6379", cfg.State.Redis.Addr)
	assert.Equal(t, 2, cfg.State.Redis.DB)
	assert.Equal(t, 8, cfg.Batch.Concurrency)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ADMINSHELL_STATE_BACKEND", "sqlite")
	t.Setenv("ADMINSHELL_STATE_SQLITE_DSN", "file:test.db")
	t.Setenv("ADMINSHELL_LANGUAGE", "zh-CN")

	cfg, err := Load(writeConfig(t, "state:\n  backend: file\n"))
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.State.Backend)
	assert.Equal(t, "file:test.db", cfg.State.SQLite.DSN)
	assert.Equal(t, "zh-CN", cfg.Language)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown backend", "state:\n  backend: etcd\n"},
		{"bad language", "language: '!!'\n"},
		{"bad log format", "log:\n  format: xml\n"},
		{"zero concurrency", "batch:\n  concurrency: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
