// Package version checks for newer seaplay releases.
package version

import (
	"fmt"
	"strings"
)

// Semver is a major.minor.patch release number.
type Semver struct {
	Major, Minor, Patch int
}

// Parse reads a version such as "v1.2.3" or "1.2.3". Suffixes after the patch are ignored.
func Parse(s string) (Semver, error) {
	var v Semver
	if _, err := fmt.Sscanf(strings.TrimPrefix(s, "v"), "%d.%d.%d", &v.Major, &v.Minor, &v.Patch); err != nil {
		return Semver{}, fmt.Errorf("parse version %q: %w", s, err)
	}
	return v, nil
}

func (v Semver) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns 1 if v is newer than o, -1 if older and 0 if equal.
func (v Semver) Compare(o Semver) int {
	for _, d := range [...]int{v.Major - o.Major, v.Minor - o.Minor, v.Patch - o.Patch} {
		switch {
		case d > 0:
			return 1
		case d < 0:
			return -1
		}
	}
	return 0
}

// Newer reports whether latest is a newer release than current.
func Newer(latest, current string) (bool, error) {
	l, err := Parse(latest)
	if err != nil {
		return false, err
	}
	c, err := Parse(current)
	if err != nil {
		return false, err
	}
	return l.Compare(c) > 0, nil
}
