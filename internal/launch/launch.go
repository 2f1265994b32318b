// Package launch starts and reveals downloaded artifacts with the
// platform's own facilities.
package launch

import (
	"os"

	"github.com/charmbracelet/log"
)

// Launcher runs downloaded files and shows them in the platform file
// browser. Failures are logged and reported as false, never fatal.
type Launcher struct {
	logger *log.Logger
}

// New returns the launcher for the running platform.
func New(logger *log.Logger) *Launcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Launcher{logger: logger.WithPrefix("launch")}
}

// Run spawns path as a detached child process. The child is not waited
// on. Returns false when path does not exist or spawning fails.
func (l *Launcher) Run(path string) bool {
	if _, err := os.Stat(path); err != nil {
		l.logger.Error("cannot run downloaded file", "path", path, "err", err)
		return false
	}

	if err := runFile(path); err != nil {
		l.logger.Error("running downloaded file failed", "path", path, "err", err)
		return false
	}

	l.logger.Info("running downloaded file", "path", path)
	return true
}

// Reveal opens the file browser with path selected, or with its
// containing directory where selection is not supported. Returns false
// on platforms without a desktop shell.
func (l *Launcher) Reveal(path string) bool {
	if _, err := os.Stat(path); err != nil {
		l.logger.Error("cannot reveal downloaded file", "path", path, "err", err)
		return false
	}

	if err := revealFile(path); err != nil {
		l.logger.Error("revealing downloaded file failed", "path", path, "err", err)
		return false
	}

	return true
}
