package semver

import (
	"fmt"
	"sort"
	"strings"

	mm "github.com/Masterminds/semver/v3"
)

// Version is a semantic version.
//
// This is a thin wrapper around github.com/Masterminds/semver/v3.
type Version struct {
	v *mm.Version
}

// Constraint is a semantic version constraint.
//
// Examples:
// - ">=1.2.0 <2.0.0"
// - "^1.0.0"
// - "~1.4"
type Constraint struct {
	c *mm.Constraints
}

func ParseVersion(raw string) (Version, error) {
	v, err := mm.NewVersion(raw)
	if err != nil {
		return Version{}, fmt.Errorf("semver: parse version %q: %w", raw, err)
	}
	return Version{v: v}, nil
}

func MustParseVersion(raw string) Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

func ParseConstraint(raw string) (Constraint, error) {
	c, err := mm.NewConstraint(raw)
	if err != nil {
		return Constraint{}, fmt.Errorf("semver: parse constraint %q: %w", raw, err)
	}
	return Constraint{c: c}, nil
}

func MustParseConstraint(raw string) Constraint {
	c, err := ParseConstraint(raw)
	if err != nil {
		panic(err)
	}
	return c
}

func Satisfies(v Version, c Constraint) bool {
	if v.v == nil || c.c == nil {
		return false
	}
	return c.c.Check(v.v)
}

// Compare compares a and b, returning:
// -1 if a < b
//
//	0 if a == b
//	1 if a > b
func Compare(a, b Version) int {
	if a.v == nil && b.v == nil {
		return 0
	}
	if a.v == nil {
		return -1
	}
	if b.v == nil {
		return 1
	}
	return a.v.Compare(b.v)
}

// CompareRaw compares two version strings as they appear in package tokens.
//
// Versions such as "2.0" or "35.10" are coerced by the lenient parser. When
// either side does not parse, the plain string order is used so that the
// result stays total and deterministic.
func CompareRaw(a, b string) int {
	va, errA := ParseVersion(strings.TrimSpace(a))
	vb, errB := ParseVersion(strings.TrimSpace(b))
	if errA == nil && errB == nil {
		if c := Compare(va, vb); c != 0 {
			return c
		}
	}
	return strings.Compare(a, b)
}

// SortRaw orders raw version strings ascending by CompareRaw.
func SortRaw(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		return CompareRaw(versions[i], versions[j]) < 0
	})
}
