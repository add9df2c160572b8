package manifest

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// devVersion is the version reported by builds without ldflags.
const devVersion = "dev"

// CheckRequires returns an error when version does not satisfy the
// manifest's semver constraint. Development builds and an empty constraint
// always pass.
func CheckRequires(constraint, version string) error {
	if constraint == "" || version == devVersion {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing version constraint %q: %w", constraint, err)
	}
	v, err := parseSemver(version)
	if err != nil {
		return fmt.Errorf("parsing version %q: %w", version, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("pbhook %s does not satisfy %q", version, constraint)
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
