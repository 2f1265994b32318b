// Package config handles appup.toml parsing and location resolution.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config holds the settings of the appup binary.
type Config struct {
	VersionURL         string `toml:"version_url" validate:"omitempty,url"` // Descriptor URL used by check
	DestPath           string `toml:"dest_path"`                            // Destination override for downloads
	CacheDir           string `toml:"cache_dir"`                            // Default destination folder
	StartAfterDownload bool   `toml:"start_after_download"`                 // Launch artifacts once downloaded
	LogLevel           string `toml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
	}
}

// Parse decodes raw TOML on top of the defaults and validates the
// result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("TOML parse error: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Load reads, parses and validates the configuration at path.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(content)
}

// Find searches for a configuration file in the standard locations: the
// explicit path when given, the APPUP_CONFIG environment variable,
// appup.toml in the working directory, then appup.toml in the data
// directory. An empty path with a nil error means no file exists and the
// defaults apply.
func Find(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("specified config not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	if envPath := os.Getenv("APPUP_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	if _, err := os.Stat("appup.toml"); err == nil {
		return "appup.toml", nil
	}

	dataDir, err := DataDir()
	if err != nil {
		return "", nil
	}
	path := filepath.Join(dataDir, "appup.toml")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	return "", nil
}

// LoadOrDefault loads the configuration found by Find, falling back to
// the defaults when no file exists.
func LoadOrDefault(explicitPath string) (*Config, error) {
	path, err := Find(explicitPath)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// ResolveCacheDir returns the effective default destination folder:
// cache_dir when configured, the platform cache directory otherwise.
func (c *Config) ResolveCacheDir() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	return DefaultCacheDir()
}
