package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/khanglvm/docsearch/internal/config"
	"github.com/khanglvm/docsearch/internal/docs"
	"github.com/khanglvm/docsearch/internal/logger"
	"github.com/khanglvm/docsearch/internal/storage"
)

// app is what every command needs once flags are parsed.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	documents []docs.Document
}

// flagString reads a local or inherited persistent flag.
func flagString(cmd *cobra.Command, name string) string {
	if f := cmd.Flag(name); f != nil {
		return f.Value.String()
	}
	return ""
}

// loadConfig resolves the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(flagString(cmd, "config"))
	if err != nil {
		return nil, nil, err
	}
	if dir := flagString(cmd, "dir"); dir != "" {
		cfg.Content.Dir = dir
	}

	log, err := logger.New(cfg.Logging.Env, cfg.Logging.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}

// loadApp loads config and content. Files that fail to parse are logged
// and skipped; a content directory that yields nothing is an error.
func loadApp(cmd *cobra.Command) (*app, error) {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	documents, err := docs.Load(cmd.Context(), cfg.Content.Dir, log)
	if err != nil {
		if len(documents) == 0 {
			return nil, fmt.Errorf("failed to load content from %s: %w", cfg.Content.Dir, err)
		}
		log.Warn("Some documents failed to load", zap.Error(err))
	}

	return &app{cfg: cfg, logger: log, documents: documents}, nil
}

// openStorage returns the history database, or a no-op store when disabled.
func openStorage(cfg *config.Config, log *zap.Logger) *storage.SQLiteStorage {
	if !cfg.StorageEnabled() {
		return storage.NewDisabled()
	}
	return storage.NewStorage(cfg.Storage.Path, log)
}
