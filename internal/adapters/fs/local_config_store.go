package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/musdomains/domains/internal/domain/config"
	"github.com/musdomains/domains/internal/usecase"
)

// LocalConfigFile holds per-checkout defaults
const LocalConfigFile = "config.local.json"

// LocalConfigStoreAdapter implements LocalConfigStore using the file system
type LocalConfigStoreAdapter struct {
	configPath string
}

// NewLocalConfigStoreAdapter creates a new LocalConfigStoreAdapter
func NewLocalConfigStoreAdapter(cfg *config.RuntimeConfig) *LocalConfigStoreAdapter {
	return &LocalConfigStoreAdapter{
		configPath: filepath.Join(cfg.DataDir, LocalConfigFile),
	}
}

// Exists checks if the config file exists
func (s *LocalConfigStoreAdapter) Exists() bool {
	_, err := os.Stat(s.configPath)
	return err == nil
}

// Load reads the configuration, or returns an empty one if the file is missing
func (s *LocalConfigStoreAdapter) Load(_ context.Context) (*config.LocalConfig, error) {
	var local config.LocalConfig
	if _, err := readJSON(s.configPath, &local); err != nil {
		return nil, err
	}
	return &local, nil
}

// Save writes the configuration to the file
func (s *LocalConfigStoreAdapter) Save(_ context.Context, local *config.LocalConfig) error {
	return writeJSON(s.configPath, local)
}

// GetPath returns the path to the config file
func (s *LocalConfigStoreAdapter) GetPath() string {
	return s.configPath
}

// Ensure LocalConfigStoreAdapter implements LocalConfigStore
var _ usecase.LocalConfigStore = (*LocalConfigStoreAdapter)(nil)
