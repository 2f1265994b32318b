//go:build darwin

package launch

import (
	"os/exec"
)

// open delegates to Launch Services, which handles app bundles, disk
// images and plain executables alike.
func runFile(path string) error {
	return exec.Command("open", path).Run()
}

func revealFile(path string) error {
	return exec.Command("open", "-R", path).Run()
}
