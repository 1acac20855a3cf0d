// Package version exposes the build version of namesearch and checks it
// against semver constraints declared in configuration files.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is the build version. It is overridden at link time with
// -ldflags "-X github.com/rshade/namesearch/pkg/version.Version=x.y.z".
//
//nolint:gochecknoglobals // Set via ldflags.
var Version = "0.1.0-dev"

// GetVersion returns the build version string.
func GetVersion() string {
	return Version
}

// Satisfies reports whether the build version satisfies constraint.
// An empty constraint is always satisfied. Pre-release builds are compared
// by their release triple so that "0.1.0-dev" satisfies ">= 0.1.0".
func Satisfies(constraint string) (bool, error) {
	return satisfies(Version, constraint)
}

func satisfies(ver, constraint string) (bool, error) {
	constraint = strings.TrimSpace(constraint)
	if constraint == "" {
		return true, nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing version constraint %q: %w", constraint, err)
	}

	v, err := semver.NewVersion(ver)
	if err != nil {
		return false, fmt.Errorf("parsing build version %q: %w", ver, err)
	}

	if v.Prerelease() != "" {
		release, relErr := v.SetPrerelease("")
		if relErr != nil {
			return false, fmt.Errorf("stripping pre-release from %q: %w", ver, relErr)
		}
		v = &release
	}

	return c.Check(v), nil
}
