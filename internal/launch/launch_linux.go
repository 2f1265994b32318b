//go:build linux

package launch

import (
	"os/exec"
	"path/filepath"
)

func runFile(path string) error {
	cmd := exec.Command(path)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// File selection is not standardized across Linux file managers, so the
// containing directory is opened instead.
func revealFile(path string) error {
	return exec.Command("xdg-open", filepath.Dir(path)).Run()
}
