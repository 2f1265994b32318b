package update

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var versionRegex = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)(?:-([a-zA-Z0-9.-]+))?$`)

// Version is a parsed semantic version. An empty Prerelease means a
// full release, which orders above any prerelease of the same triple.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
}

// ParseVersion parses strings like "2.4.2", "v2.4.2" and "2.5.0-beta.1".
func ParseVersion(s string) (*Version, error) {
	m := versionRegex.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("invalid version format: %s", s)
	}

	v := &Version{Prerelease: m[4]}
	v.Major, _ = strconv.Atoi(m[1])
	v.Minor, _ = strconv.Atoi(m[2])
	v.Patch, _ = strconv.Atoi(m[3])
	return v, nil
}

func (v *Version) String() string {
	if v.Prerelease == "" {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	return fmt.Sprintf("%d.%d.%d-%s", v.Major, v.Minor, v.Patch, v.Prerelease)
}

// Compare returns 1 when v is newer than other, -1 when older and 0
// when they are equal.
func (v *Version) Compare(other *Version) int {
	pairs := [3][2]int{
		{v.Major, other.Major},
		{v.Minor, other.Minor},
		{v.Patch, other.Patch},
	}
	for _, p := range pairs {
		if p[0] != p[1] {
			if p[0] > p[1] {
				return 1
			}
			return -1
		}
	}

	// A release outranks any prerelease of the same triple.
	switch {
	case v.Prerelease == "" && other.Prerelease != "":
		return 1
	case v.Prerelease != "" && other.Prerelease == "":
		return -1
	}

	return comparePrerelease(v.Prerelease, other.Prerelease)
}

// comparePrerelease orders dot-separated prerelease identifiers.
// Numeric identifiers compare numerically and rank below alphanumeric
// ones. When all shared identifiers are equal, the longer set is newer.
func comparePrerelease(a, b string) int {
	if a == b {
		return 0
	}

	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] == bs[i] {
			continue
		}

		an, aErr := strconv.Atoi(as[i])
		bn, bErr := strconv.Atoi(bs[i])

		switch {
		case aErr == nil && bErr == nil:
			if an != bn {
				if an > bn {
					return 1
				}
				return -1
			}
		case aErr == nil:
			return -1
		case bErr == nil:
			return 1
		default:
			if as[i] > bs[i] {
				return 1
			}
			return -1
		}
	}

	if len(as) > len(bs) {
		return 1
	}
	if len(as) < len(bs) {
		return -1
	}
	return 0
}

// IsGreaterThan reports whether v is newer than other.
func (v *Version) IsGreaterThan(other *Version) bool {
	return v.Compare(other) > 0
}

// IsLessThan reports whether v is older than other.
func (v *Version) IsLessThan(other *Version) bool {
	return v.Compare(other) < 0
}

// IsEqual reports whether v and other denote the same version.
func (v *Version) IsEqual(other *Version) bool {
	return v.Compare(other) == 0
}

// CompareVersions parses and compares two version strings.
func CompareVersions(v1, v2 string) (int, error) {
	ver1, err := ParseVersion(v1)
	if err != nil {
		return 0, fmt.Errorf("invalid version v1: %w", err)
	}

	ver2, err := ParseVersion(v2)
	if err != nil {
		return 0, fmt.Errorf("invalid version v2: %w", err)
	}

	return ver1.Compare(ver2), nil
}

// NormalizeVersion strips a leading 'v' from a version string.
func NormalizeVersion(s string) string {
	return strings.TrimPrefix(s, "v")
}
