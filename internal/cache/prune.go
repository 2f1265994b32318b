package cache

import (
	"fmt"
)

// DefaultKeepCount is the default number of artifacts to retain.
const DefaultKeepCount = 5

// PruneResult contains information about what was pruned.
type PruneResult struct {
	Deleted []Artifact `json:"deleted" yaml:"deleted"`
	Kept    int        `json:"kept" yaml:"kept"`
}

// Prune removes staging leftovers and old artifacts, keeping only the
// most recent N completed downloads.
func (m *Manager) Prune(keep int) (*PruneResult, error) {
	if keep < 0 {
		return nil, fmt.Errorf("keep count must be non-negative")
	}

	artifacts, err := m.List()
	if err != nil {
		return nil, err
	}

	result := &PruneResult{}

	// Artifacts are already sorted newest first
	for _, a := range artifacts {
		if a.Staging {
			// Interrupted downloads never count toward the keep budget
			if err := m.Delete(a.Name); err != nil {
				return nil, fmt.Errorf("failed to delete %s: %w", a.Name, err)
			}
			result.Deleted = append(result.Deleted, a)
			continue
		}

		if result.Kept < keep {
			result.Kept++
			continue
		}

		if err := m.Delete(a.Name); err != nil {
			return nil, fmt.Errorf("failed to delete %s: %w", a.Name, err)
		}
		result.Deleted = append(result.Deleted, a)
	}

	return result, nil
}
