/*
Package config handles loading docsearch configuration.

Configuration is YAML. The file is looked up at the --config flag path,
then ./docsearch.yaml, then ~/.docsearch.yaml; when none exists the
defaults apply. Values of the form ${VAR} are expanded from the
environment before parsing.

Example:

	content:
	  dir: ./content/docs
	search:
	  context_length: 100
	  limit: 0
	  weights:
	    title: 10
	    description: 5
	    category: 3
	    plaintext: 1
	    exact_title: 5
	    exact_description: 3
	storage:
	  enabled: true
	  path: ~/.docsearch/history.db
	  retention_days: 90
	http:
	  port: 8080
	logging:
	  env: local
	  level: info
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/khanglvm/docsearch/internal/search"
)

// Config represents the root configuration structure.
type Config struct {
	Content ContentConfig `yaml:"content"`
	Search  SearchConfig  `yaml:"search"`
	Storage StorageConfig `yaml:"storage"`
	HTTP    HTTPConfig    `yaml:"http"`
	Logging LoggingConfig `yaml:"logging"`
}

// ContentConfig locates the documentation sources.
type ContentConfig struct {
	Dir string `yaml:"dir"`
}

// SearchConfig tunes ranking and snippets.
type SearchConfig struct {
	ContextLength int            `yaml:"context_length"`
	Limit         int            `yaml:"limit"`
	Weights       search.Weights `yaml:"weights"`
}

// StorageConfig controls the search history database.
type StorageConfig struct {
	Enabled       *bool  `yaml:"enabled"`
	Path          string `yaml:"path"`
	RetentionDays int    `yaml:"retention_days"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Env   string `yaml:"env"`   // local, dev or prod
	Level string `yaml:"level"` // debug, info, warn, error
}

// NewConfig returns a configuration with every default applied.
func NewConfig() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Content.Dir == "" {
		c.Content.Dir = "content/docs"
	}
	if c.Search.ContextLength <= 0 {
		c.Search.ContextLength = search.DefaultContextLength
	}
	if c.Search.Weights == (search.Weights{}) {
		c.Search.Weights = search.DefaultWeights
	}
	if c.Storage.Enabled == nil {
		enabled := true
		c.Storage.Enabled = &enabled
	}
	if c.Storage.RetentionDays <= 0 {
		c.Storage.RetentionDays = 90
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "local"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Search.Limit < 0 {
		return fmt.Errorf("search.limit must not be negative, got %d", c.Search.Limit)
	}
	w := c.Search.Weights
	for name, v := range map[string]int{
		"title":             w.Title,
		"description":       w.Description,
		"category":          w.Category,
		"plaintext":         w.Plaintext,
		"exact_title":       w.ExactTitle,
		"exact_description": w.ExactDescription,
	} {
		if v < 0 {
			return fmt.Errorf("search.weights.%s must not be negative, got %d", name, v)
		}
	}
	switch c.Logging.Env {
	case "local", "dev", "prod":
	default:
		return fmt.Errorf("logging.env must be local, dev or prod, got %q", c.Logging.Env)
	}
	return nil
}

// SearchOptions converts the search section into ranking options.
func (c *Config) SearchOptions() search.Options {
	opts := search.DefaultOptions()
	if c.Search.Weights != (search.Weights{}) {
		opts.Weights = c.Search.Weights
	}
	if c.Search.ContextLength > 0 {
		opts.ContextLength = c.Search.ContextLength
	}
	opts.Limit = c.Search.Limit
	return opts
}

// StorageEnabled reports whether search history should be recorded.
func (c *Config) StorageEnabled() bool {
	return c.Storage.Enabled == nil || *c.Storage.Enabled
}

// CandidatePaths returns the lookup order for the config file.
func CandidatePaths(explicit string) []string {
	if explicit != "" {
		return []string{expandHome(explicit)}
	}

	paths := []string{"docsearch.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".docsearch.yaml"))
	}
	return paths
}

// expandHome replaces a leading ~/ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
