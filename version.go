package tricolor

import "github.com/Masterminds/semver/v3"

// Version is this module's own semantic version, checked by host runtimes
// that embed it against their own minimum-compatibility constraint.
const Version = "0.1.0"

// CompatibleWith reports whether this package's Version satisfies a
// semver constraint string (e.g. ">= 0.1.0, < 0.2.0"), the same pattern
// Orizon's package manager uses to gate a dependency against a
// constraint before resolving it.
func CompatibleWith(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, err
	}

	v, err := semver.NewVersion(Version)
	if err != nil {
		return false, err
	}

	return c.Check(v), nil
}
