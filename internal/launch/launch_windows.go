//go:build windows

package launch

import (
	"os/exec"
)

func runFile(path string) error {
	cmd := exec.Command(path)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

func revealFile(path string) error {
	return exec.Command("explorer", "/select,", path).Run()
}
