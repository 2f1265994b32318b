package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"appup/internal/update"
)

var (
	checkLatest bool
	versionURL  string
)

// appupVersion is set during command initialization
var appupVersion = "dev"

func newVersionCmd(commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information and check for updates",
		Long: `Display the current appup version and optionally compare it against the
newest published release.

Examples:
  appup version           # Show current version
  appup version --check   # Compare against the published release`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(commit, date)
		},
	}

	cmd.Flags().BoolVar(&checkLatest, "check", false, "Check whether a newer release is published")
	cmd.Flags().StringVar(&versionURL, "url", "", "Version descriptor URL (overrides config)")

	return cmd
}

// Update statuses reported by version --check. Development builds carry no
// comparable version and report no status.
const (
	statusUpdateAvailable = "update-available"
	statusUpToDate        = "up-to-date"
)

// VersionInfo represents the build information and update status.
type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
	Latest  string `json:"latest,omitempty" yaml:"latest,omitempty"`
	Status  string `json:"status,omitempty" yaml:"status,omitempty"`
}

func (v VersionInfo) String() string {
	s := fmt.Sprintf("appup version %s (commit %s, built %s)", v.Version, v.Commit, v.Date)
	if v.Latest != "" {
		s += fmt.Sprintf("\nnewest release: %s", v.Latest)
	}
	switch v.Status {
	case statusUpdateAvailable:
		s += "\nupdate available: run 'appup download' to fetch it"
	case statusUpToDate:
		s += "\nalready up to date"
	}
	return s
}

func runVersion(commit, date string) error {
	writer, err := newWriter()
	if err != nil {
		return err
	}

	info := VersionInfo{Version: appupVersion, Commit: commit, Date: date}

	if !checkLatest {
		return writer.Write(info)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	url := versionURL
	if url == "" {
		url = cfg.VersionURL
	}
	if url == "" {
		return fmt.Errorf("no version URL: set version_url in appup.toml or pass --url")
	}

	result, err := fetchVersions(cfg, url)
	if err != nil {
		return err
	}
	info.Latest = result.Release

	cmp, err := update.CompareVersions(result.Release, update.NormalizeVersion(appupVersion))
	if err == nil {
		if cmp > 0 {
			info.Status = statusUpdateAvailable
		} else {
			info.Status = statusUpToDate
		}
	}

	return writer.Write(info)
}
