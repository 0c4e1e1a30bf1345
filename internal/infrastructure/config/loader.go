// Package config loads and saves the YAML configuration file. The default
// location is ~/.aria/config.yaml; the ARIA_CONFIG environment variable
// overrides it. On first run the embedded default config is written out so
// the user has a file to edit.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ariahq/aria/assets"
	"github.com/ariahq/aria/internal/domain"
	"github.com/ariahq/aria/internal/pkg/filesystem"
	"github.com/ariahq/aria/internal/ports"
)

// EnvConfigPath overrides the configuration file location when set.
const EnvConfigPath = "ARIA_CONFIG"

// FileLoader reads the configuration from disk.
type FileLoader struct {
	path string
}

// NewFileLoader creates a loader for the resolved config path.
func NewFileLoader() *FileLoader {
	return &FileLoader{path: resolvePath()}
}

// NewFileLoaderAt creates a loader for an explicit path (used in tests).
func NewFileLoaderAt(path string) *FileLoader {
	return &FileLoader{path: path}
}

func resolvePath() string {
	if override := os.Getenv(EnvConfigPath); override != "" {
		return override
	}
	return filepath.Join(filesystem.UserHomeDir(), ".aria", "config.yaml")
}

// Load parses the configuration file, writing the embedded default first if
// no file exists yet.
func (l *FileLoader) Load(ctx context.Context) (domain.Config, error) {
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		if writeErr := l.writeDefault(); writeErr != nil {
			return domain.Config{}, fmt.Errorf("write default config: %w", writeErr)
		}
		data, err = os.ReadFile(l.path)
	}
	if err != nil {
		return domain.Config{}, fmt.Errorf("read config %s: %w", l.path, err)
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse config %s: %w", l.path, err)
	}
	hydrateDefaults(&cfg)
	return cfg, nil
}

// Save writes the configuration back to disk.
func (l *FileLoader) Save(cfg domain.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(l.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	return os.WriteFile(l.path, data, domain.SecureFilePermissions)
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	return l.path
}

func (l *FileLoader) writeDefault() error {
	if err := os.MkdirAll(filepath.Dir(l.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	return os.WriteFile(l.path, assets.DefaultConfig, domain.SecureFilePermissions)
}

func hydrateDefaults(cfg *domain.Config) {
	if cfg.History.MaxMessages <= 0 {
		cfg.History.MaxMessages = domain.DefaultMaxMessages
	}
	if cfg.History.WindowSize <= 0 {
		cfg.History.WindowSize = domain.DefaultWindowSize
	}
	if cfg.History.WindowStride <= 0 {
		cfg.History.WindowStride = domain.DefaultWindowStride
	}
	if cfg.Memory.MaxEntries <= 0 {
		cfg.Memory.MaxEntries = domain.DefaultMaxMemories
	}
	if cfg.Memory.MinRelevance <= 0 {
		cfg.Memory.MinRelevance = domain.DefaultMinRelevance
	}
	if cfg.Sync.MinIntervalSeconds <= 0 {
		cfg.Sync.MinIntervalSeconds = int(domain.DefaultSyncCooldown.Seconds())
	}
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
