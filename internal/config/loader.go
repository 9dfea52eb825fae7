package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load resolves the config file (see CandidatePaths) and reads it.
// An explicit path that does not exist is an error; when no default
// location has a file, the defaults are returned.
func Load(explicit string) (*Config, error) {
	for _, path := range CandidatePaths(explicit) {
		cfg, err := LoadFrom(path)
		if err == nil {
			return cfg, nil
		}

		var notFound *ConfigNotFoundError
		if errors.As(err, &notFound) && explicit == "" {
			continue
		}
		return nil, err
	}

	return NewConfig(), nil
}

// LoadFrom reads config from a specific path with enhanced error handling.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigNotFoundError{
				Path: path,
				Hint: "Create docsearch.yaml or pass --config",
			}
		}
		return nil, fmt.Errorf("failed to access config: %w", err)
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsPermission(err) {
			return nil, &PermissionError{
				Path:    path,
				Op:      "read",
				Fix:     getReadPermissionFix(path),
				Details: getPermissionDetails(path),
			}
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(path, data)
}

// Parse decodes YAML config data over the defaults, expanding ${VAR}
// references first. Keys missing from the file keep their default.
func Parse(path string, data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := yaml.Unmarshal(expandEnvVars(data), cfg); err != nil {
		return nil, &InvalidConfigError{
			Path:    path,
			Message: fmt.Sprintf("YAML parse error: %v", err),
			Hint:    "Check indentation and quoting",
		}
	}

	cfg.ApplyDefaults()
	cfg.Content.Dir = expandHome(cfg.Content.Dir)
	cfg.Storage.Path = expandHome(cfg.Storage.Path)

	if err := cfg.Validate(); err != nil {
		return nil, &InvalidConfigError{Path: path, Message: err.Error()}
	}

	return cfg, nil
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars substitutes ${VAR} with the environment value (empty when unset).
func expandEnvVars(data []byte) []byte {
	return envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := envVarPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(name)))
	})
}

// getReadPermissionFix returns platform-specific fix command
func getReadPermissionFix(path string) string {
	switch runtime.GOOS {
	case "windows":
		return fmt.Sprintf("Right-click %s → Properties → Security → Edit permissions", path)
	default:
		return fmt.Sprintf("Run: chmod 644 %s", path)
	}
}

// getPermissionDetails checks file permissions
func getPermissionDetails(path string) string {
	if runtime.GOOS == "windows" {
		return ""
	}

	info, err := os.Stat(path)
	if err != nil {
		return ""
	}

	return fmt.Sprintf("Current permissions: %04o", info.Mode().Perm())
}
