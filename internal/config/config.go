// Package config loads and stores the fbxbatch configuration.
//
// Configuration lives in a single YAML file (by default
// ~/.fbxbatch/config.yaml). Command-line flags override file values; the
// file is optional and all fields have working defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Input modes for a batch run.
const (
	ModeDirectory = "directory"
	ModeFiles     = "files"
)

// Config is the root of the fbxbatch configuration file.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PipelineConfig holds the batch pipeline options.
type PipelineConfig struct {
	// Mode selects how input files are gathered: "directory" scans a
	// directory for *.fbx, "files" takes an explicit list.
	Mode string `yaml:"mode"`

	// SortMode orders the gathered files before processing:
	// alphabetical, sizeAscending, sizeDescending or none.
	SortMode string `yaml:"sort_mode"`

	// CleanAfterImport strips non-geometry objects after each import.
	CleanAfterImport bool `yaml:"clean_after_import"`

	// MergeAfterClean merges the cleaned geometry by material.
	MergeAfterClean bool `yaml:"merge_after_clean"`

	// SaveCleanedFiles writes the processed scene next to the source
	// file with a .gltf extension.
	SaveCleanedFiles bool `yaml:"save_cleaned_files"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			Mode:             ModeDirectory,
			SortMode:         "alphabetical",
			CleanAfterImport: true,
			MergeAfterClean:  true,
			SaveCleanedFiles: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultPath returns the default config file location under the user's
// home directory. An empty string is returned when the home directory
// cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fbxbatch", "config.yaml")
}

// Load reads the config file at path on top of the defaults. A missing
// file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the parent directory when needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// globalCfg is the process-wide configuration set once by the CLI layer.
var (
	globalCfg   *Config      //nolint:gochecknoglobals // Set once at startup, read by commands
	globalCfgMu sync.RWMutex //nolint:gochecknoglobals // Protects globalCfg
)

// SetGlobal stores cfg as the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalCfgMu.Lock()
	defer globalCfgMu.Unlock()
	globalCfg = cfg
}

// GetGlobal returns the process-wide configuration, falling back to the
// defaults when SetGlobal was never called.
func GetGlobal() *Config {
	globalCfgMu.RLock()
	defer globalCfgMu.RUnlock()
	if globalCfg == nil {
		return Default()
	}
	return globalCfg
}
