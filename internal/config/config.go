// Package config provides configuration loading and structs for the Henkan server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Convert ConvertConfig `yaml:"convert"`
	UI      UIConfig      `yaml:"ui"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// ConvertConfig holds scratch-storage settings for conversions.
type ConvertConfig struct {
	// ScratchDir is the root under which each conversion creates its own
	// directory. Defaults to the OS temp directory.
	ScratchDir string `yaml:"scratch_dir"`
	// CleanupOnFailure removes a conversion's scratch directory when no
	// artifact was produced. Directories of successful conversions are never
	// removed so the artifact stays downloadable; reclaiming them is left to
	// the OS temp lifecycle.
	CleanupOnFailure bool `yaml:"cleanup_on_failure"`
	// MaxUploadMB caps the size of one uploaded document.
	MaxUploadMB int `yaml:"max_upload_mb"`
}

// UIConfig holds settings for the built-in upload page.
type UIConfig struct {
	Title string `yaml:"title"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	if cfg.Convert.ScratchDir != "" {
		cfg.Convert.ScratchDir = expandPath(cfg.Convert.ScratchDir, filepath.Dir(path))
	}

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
