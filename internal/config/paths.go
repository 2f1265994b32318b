package config

import (
	"os"
	"path/filepath"
)

// DataDir returns the appup data directory. APPUP_DATA_DIR overrides the
// platform default under the user config directory.
func DataDir() (string, error) {
	if dir := os.Getenv("APPUP_DATA_DIR"); dir != "" {
		return dir, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "appup"), nil
}

// DefaultCacheDir returns the folder downloads land in when nothing else
// is configured.
func DefaultCacheDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache"), nil
}
