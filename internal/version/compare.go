package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckCompatibility checks if engine and client versions are compatible.
// Returns nil if compatible, error with details if not.
//
// Compatibility Rules:
//   - If either version is "main" (development build), compatibility check is skipped
//   - Major versions must match exactly
//   - Minor versions must match exactly
//   - Patch versions can differ (e.g., 1.2.0 is compatible with 1.2.5)
func CheckCompatibility(engineVersion, clientVersion string) error {
	// Strip 'v' prefix if present for consistency
	engineVersion = strings.TrimPrefix(engineVersion, "v")
	clientVersion = strings.TrimPrefix(clientVersion, "v")

	// Skip version check for "main" (development builds)
	if engineVersion == "main" || clientVersion == "main" {
		return nil
	}

	engineSemver, err := semver.NewVersion(engineVersion)
	if err != nil {
		return fmt.Errorf("invalid engine version '%s': %w", engineVersion, err)
	}

	clientSemver, err := semver.NewVersion(clientVersion)
	if err != nil {
		return fmt.Errorf("invalid client version '%s': %w", clientVersion, err)
	}

	if engineSemver.Major() != clientSemver.Major() {
		return fmt.Errorf("major version mismatch: engine is %d.x.x but client requires %d.x.x",
			engineSemver.Major(), clientSemver.Major())
	}

	if engineSemver.Minor() != clientSemver.Minor() {
		return fmt.Errorf("minor version mismatch: engine is %d.%d.x but client requires %d.%d.x",
			engineSemver.Major(), engineSemver.Minor(),
			clientSemver.Major(), clientSemver.Minor())
	}

	// Patch versions can differ, so we're compatible
	return nil
}
