package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanglvm/docsearch/internal/search"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "content/docs", cfg.Content.Dir)
	assert.Equal(t, search.DefaultContextLength, cfg.Search.ContextLength)
	assert.Equal(t, search.DefaultWeights, cfg.Search.Weights)
	assert.True(t, cfg.StorageEnabled())
	assert.Equal(t, 90, cfg.Storage.RetentionDays)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "local", cfg.Logging.Env)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"port too high", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"negative limit", func(c *Config) { c.Search.Limit = -1 }, "search.limit"},
		{"negative weight", func(c *Config) { c.Search.Weights.Category = -3 }, "search.weights.category"},
		{"unknown env", func(c *Config) { c.Logging.Env = "staging" }, "logging.env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSearchOptions(t *testing.T) {
	cfg := NewConfig()
	cfg.Search.Limit = 5
	cfg.Search.ContextLength = 40
	cfg.Search.Weights.Title = 20

	opts := cfg.SearchOptions()
	assert.Equal(t, 5, opts.Limit)
	assert.Equal(t, 40, opts.ContextLength)
	assert.Equal(t, 20, opts.Weights.Title)
	assert.Equal(t, search.DefaultWeights.Description, opts.Weights.Description)
}

func TestCandidatePaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, []string{"docsearch.yaml", filepath.Join(home, ".docsearch.yaml")}, CandidatePaths(""))
	assert.Equal(t, []string{"/etc/docsearch.yaml"}, CandidatePaths("/etc/docsearch.yaml"))
	assert.Equal(t, []string{filepath.Join(home, "custom.yaml")}, CandidatePaths("~/custom.yaml"))
}
