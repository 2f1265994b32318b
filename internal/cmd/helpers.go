package cmd

import (
	"os"

	"github.com/charmbracelet/log"

	"appup/internal/config"
	"appup/internal/output"
)

// loadConfig resolves and loads the configuration honoring the --config flag.
func loadConfig() (*config.Config, error) {
	return config.LoadOrDefault(configPath)
}

// newLogger builds the logger from the global flags. The --verbose and
// --quiet flags win over the configured log level.
func newLogger(cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "appup",
	})

	switch {
	case quiet:
		logger.SetLevel(log.ErrorLevel)
	case verbose:
		logger.SetLevel(log.DebugLevel)
	default:
		if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
			logger.SetLevel(lvl)
		}
	}

	return logger
}

// newWriter builds the output writer from the --output flag.
func newWriter() (*output.Writer, error) {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return nil, err
	}
	return output.NewWriter(os.Stdout, format), nil
}
