package update

import (
	"fmt"
	"strings"
)

// Channel identifies which prerelease line of a descriptor a version
// came from.
type Channel string

const (
	ChannelAlpha Channel = "alpha"
	ChannelBeta  Channel = "beta"
)

// PrereleaseVersion is one alpha= or beta= entry of a version descriptor.
type PrereleaseVersion struct {
	Channel Channel
	Version *Version
}

// Report is the parsed form of a version descriptor.
type Report struct {
	Release     *Version
	Prereleases []PrereleaseVersion
}

// ParseDescriptor parses a version descriptor document.
//
// The first line must carry the newest release version. Lines starting
// with "alpha=" or "beta=" carry prerelease versions. Anything else is
// ignored. A single malformed version invalidates the whole document.
func ParseDescriptor(body string) (*Report, error) {
	lines := strings.Split(strings.TrimSpace(body), "\n")

	first := strings.TrimSpace(lines[0])
	release, err := ParseVersion(first)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReleaseVersion, first)
	}

	report := &Report{Release: release}
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)

		var channel Channel
		var rest string
		switch {
		case strings.HasPrefix(line, "alpha="):
			channel, rest = ChannelAlpha, strings.TrimPrefix(line, "alpha=")
		case strings.HasPrefix(line, "beta="):
			channel, rest = ChannelBeta, strings.TrimPrefix(line, "beta=")
		default:
			continue
		}

		version, err := ParseVersion(rest)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPrereleaseVersion, rest)
		}
		report.Prereleases = append(report.Prereleases, PrereleaseVersion{
			Channel: channel,
			Version: version,
		})
	}

	return report, nil
}

// Experimental returns the newest prerelease strictly ahead of the
// release, if any.
func (r *Report) Experimental() (*Version, bool) {
	var best *Version
	for _, p := range r.Prereleases {
		if p.Version.IsGreaterThan(r.Release) && (best == nil || p.Version.IsGreaterThan(best)) {
			best = p.Version
		}
	}
	return best, best != nil
}
