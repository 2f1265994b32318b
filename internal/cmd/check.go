package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"appup/internal/config"
	"appup/internal/update"
)

var checkURL string

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fetch the version descriptor and report available versions",
		Long: `Check downloads the version descriptor and reports the newest release
and, when one is ahead of the release, the newest experimental build.

Examples:
  appup check
  appup check --url https://example.com/version
  appup check -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck()
		},
	}

	cmd.Flags().StringVar(&checkURL, "url", "", "Version descriptor URL (overrides config)")

	return cmd
}

// CheckResult represents the outcome of a version check.
type CheckResult struct {
	Release      string `json:"release" yaml:"release"`
	Experimental string `json:"experimental,omitempty" yaml:"experimental,omitempty"`
}

func (r CheckResult) String() string {
	s := fmt.Sprintf("newest release: %s", r.Release)
	if r.Experimental != "" {
		s += fmt.Sprintf("\nnewest experimental: %s", r.Experimental)
	}
	return s
}

func runCheck() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	url := checkURL
	if url == "" {
		url = cfg.VersionURL
	}
	if url == "" {
		return fmt.Errorf("no version URL: set version_url in appup.toml or pass --url")
	}

	writer, err := newWriter()
	if err != nil {
		return err
	}

	result, err := fetchVersions(cfg, url)
	if err != nil {
		return err
	}

	return writer.Write(result)
}

// fetchVersions runs one blocking version check and collects the published
// versions from the event stream.
func fetchVersions(cfg *config.Config, url string) (*CheckResult, error) {
	destDir, err := cfg.ResolveCacheDir()
	if err != nil {
		return nil, err
	}

	u, err := update.New(destDir, update.WithLogger(newLogger(cfg)))
	if err != nil {
		return nil, err
	}

	if err := u.StartVersionCheck(url); err != nil {
		return nil, err
	}
	u.Wait()
	u.Close()

	result := &CheckResult{}
	for ev := range u.Events() {
		switch ev.Kind {
		case update.EventReleaseVersion:
			result.Release = ev.Value
		case update.EventExperimentalVersion:
			result.Experimental = ev.Value
		}
	}

	if result.Release == "" {
		return nil, fmt.Errorf("version check against %s failed", url)
	}
	return result, nil
}
