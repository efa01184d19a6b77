package smt

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a dot-split list of integer components, compared
// lexicographically per §9 Design Notes ("[4,3,2,1] >= [4,3,2]"). A missing
// trailing component compares as 0, so [4,3,2] >= [4,3,2] and
// [4,3,2,1] >= [4,3,2].
type Version []int

// ParseVersion splits a version string like "4.8.12" on '.' and parses
// each component as an integer. Non-numeric trailing noise (e.g. a git
// hash suffix some builds append) is truncated at the first
// unparseable component rather than erroring, since §4.A only needs the
// leading numeric components to pick a preamble.
func ParseVersion(s string) (Version, error) {
	fields := strings.Split(strings.TrimSpace(s), ".")
	out := make(Version, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			if len(out) == 0 {
				return nil, fmt.Errorf("smt: cannot parse version %q", s)
			}
			break
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("smt: empty version %q", s)
	}
	return out, nil
}

// MustParseVersion panics on a malformed literal; used only for the
// compile-time-known thresholds in this package (e.g. "4.3.2").
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare returns -1, 0, or 1 comparing v to other component-wise, treating
// a shorter version's missing trailing components as 0.
func (v Version) Compare(other Version) int {
	n := len(v)
	if len(other) > n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		a, b := 0, 0
		if i < len(v) {
			a = v[i]
		}
		if i < len(other) {
			b = other[i]
		}
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}
	return 0
}

// String renders the version back as dot-separated components.
func (v Version) String() string {
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ".")
}

// z3OptionEpoch is the version at/above which Z3's option names changed
// (§4.A "Startup").
var z3OptionEpoch = MustParseVersion("4.3.2")
