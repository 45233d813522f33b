// Package config loads redcell configuration from file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all configuration settings for the application
type Config struct {
	// ImageRepo is the registry repository the environment images are pulled from
	ImageRepo string `toml:"image_repo"`

	// WorkspaceDir is the host directory mounted into containers as the shared workspace
	WorkspaceDir string `toml:"workspace_dir"`

	// CachePath is the path to the SQLite metadata cache file
	CachePath string `toml:"cache_path"`

	// ProfilesPath is the path to the container profile definitions (YAML)
	ProfilesPath string `toml:"profiles_path"`

	// LogDir is where log files are written when file logging is enabled
	LogDir string `toml:"log_dir"`

	// ContainerPrefix is prepended to every managed container name
	ContainerPrefix string `toml:"container_prefix"`
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".redcell")
	return &Config{
		ImageRepo:       DefaultImageRepo,
		WorkspaceDir:    filepath.Join(base, "workspaces"),
		CachePath:       filepath.Join(base, "cache.db"),
		ProfilesPath:    filepath.Join(base, "profiles.yaml"),
		LogDir:          filepath.Join(base, "logs"),
		ContainerPrefix: DefaultContainerPrefix,
	}
}

// Load loads the configuration from file and environment variables
func Load() (*Config, error) {
	// Start with default configuration
	config := defaultConfig()

	// Try to load from the config file if it exists
	configPath := configFilePath()
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, config); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	// Override with environment variables if set
	if repo := os.Getenv("REDCELL_IMAGE_REPO"); repo != "" {
		config.ImageRepo = repo
	}
	if workspace := os.Getenv("REDCELL_WORKSPACE_DIR"); workspace != "" {
		config.WorkspaceDir = workspace
	}
	if cachePath := os.Getenv("REDCELL_CACHE_PATH"); cachePath != "" {
		config.CachePath = cachePath
	}
	if profiles := os.Getenv("REDCELL_PROFILES_PATH"); profiles != "" {
		config.ProfilesPath = profiles
	}

	// Ensure WorkspaceDir is absolute
	if !filepath.IsAbs(config.WorkspaceDir) {
		absPath, err := filepath.Abs(config.WorkspaceDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for workspace_dir: %w", err)
		}
		config.WorkspaceDir = absPath
	}

	return config, nil
}

func configFilePath() string {
	if path := os.Getenv("REDCELL_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".redcell", "config.toml")
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("ImageRepo: %s", c.ImageRepo))
	parts = append(parts, fmt.Sprintf("WorkspaceDir: %s", c.WorkspaceDir))
	parts = append(parts, fmt.Sprintf("CachePath: %s", c.CachePath))
	parts = append(parts, fmt.Sprintf("ProfilesPath: %s", c.ProfilesPath))
	return strings.Join(parts, ", ")
}
