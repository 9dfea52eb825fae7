package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOCS_ROOT", "/srv/docs")

	path := writeConfig(t, dir, "docsearch.yaml", `
content:
  dir: ${DOCS_ROOT}/content
search:
  limit: 10
  weights:
    title: 12
storage:
  enabled: false
http:
  port: 9090
logging:
  env: prod
  level: warn
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/docs/content", cfg.Content.Dir)
	assert.Equal(t, 10, cfg.Search.Limit)
	assert.Equal(t, 12, cfg.Search.Weights.Title)
	assert.Equal(t, 5, cfg.Search.Weights.Description)
	assert.Equal(t, 100, cfg.Search.ContextLength)
	assert.False(t, cfg.StorageEnabled())
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 10, cfg.HTTP.ShutdownSec)
	assert.Equal(t, "prod", cfg.Logging.Env)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadFromErrors(t *testing.T) {
	t.Run("file not found", func(t *testing.T) {
		_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))

		var notFound *ConfigNotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Contains(t, err.Error(), "config file not found")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "bad.yaml", "search: [limit\n")
		_, err := LoadFrom(path)

		var invalid *InvalidConfigError
		require.True(t, errors.As(err, &invalid))
		assert.Contains(t, err.Error(), "YAML parse error")
	})

	t.Run("failed validation", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "bad.yaml", "http:\n  port: -1\n")
		_, err := LoadFrom(path)

		var invalid *InvalidConfigError
		require.True(t, errors.As(err, &invalid))
		assert.Contains(t, err.Error(), "http.port")
	})

	t.Run("permission denied", func(t *testing.T) {
		if os.Getuid() == 0 {
			t.Skip("root can read any file")
		}
		path := writeConfig(t, t.TempDir(), "locked.yaml", "http:\n  port: 80\n")
		require.NoError(t, os.Chmod(path, 0o000))

		_, err := LoadFrom(path)

		var perm *PermissionError
		require.True(t, errors.As(err, &perm))
		assert.True(t, strings.Contains(perm.Fix, "chmod") || strings.Contains(perm.Fix, "Properties"))
	})
}

func TestLoad(t *testing.T) {
	t.Run("defaults when nothing exists", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		chdir(t, t.TempDir())

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, NewConfig(), cfg)
	})

	t.Run("working directory before home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		writeConfig(t, home, ".docsearch.yaml", "http:\n  port: 7000\n")

		wd := t.TempDir()
		chdir(t, wd)
		writeConfig(t, wd, "docsearch.yaml", "http:\n  port: 7001\n")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 7001, cfg.HTTP.Port)
	})

	t.Run("home fallback", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		chdir(t, t.TempDir())
		writeConfig(t, home, ".docsearch.yaml", "http:\n  port: 7000\n")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 7000, cfg.HTTP.Port)
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

		var notFound *ConfigNotFoundError
		assert.True(t, errors.As(err, &notFound))
	})
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}
