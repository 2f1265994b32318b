// Package cache manages the folder downloaded artifacts land in.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// stagingSuffix marks temp files left behind by interrupted downloads.
const stagingSuffix = ".download"

// Artifact describes one file in the cache folder.
type Artifact struct {
	Name    string    `json:"name" yaml:"name"`
	Path    string    `json:"path" yaml:"path"`
	Size    int64     `json:"size" yaml:"size"`
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`
	Staging bool      `json:"staging,omitempty" yaml:"staging,omitempty"` // leftover temp file
}

// Manager handles cache folder operations.
type Manager struct {
	dir string
}

// NewManager creates a manager for the given cache folder.
func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

// Dir returns the cache folder path.
func (m *Manager) Dir() string {
	return m.dir
}

// List returns all artifacts in the cache folder sorted by modification
// time (newest first). A missing folder yields an empty list.
func (m *Manager) List() ([]Artifact, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Artifact{}, nil
		}
		return nil, fmt.Errorf("failed to read cache folder: %w", err)
	}

	var artifacts []Artifact
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		artifacts = append(artifacts, Artifact{
			Name:    entry.Name(),
			Path:    filepath.Join(m.dir, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Staging: strings.HasSuffix(entry.Name(), stagingSuffix),
		})
	}

	// Sort by modification time, newest first
	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].ModTime.After(artifacts[j].ModTime)
	})

	return artifacts, nil
}

// Delete removes a single artifact by name.
func (m *Manager) Delete(name string) error {
	if name != filepath.Base(name) {
		return fmt.Errorf("invalid artifact name: %s", name)
	}

	path := filepath.Join(m.dir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("artifact not found: %s", name)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete artifact: %w", err)
	}

	return nil
}
