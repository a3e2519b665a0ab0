package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a MySQL server version such as 8.0.32.
type Version struct {
	Major   int
	Minor   int
	Release int
}

// ParseVersion accepts "8.0.32", "8.0", "8" and the numeric form "80032".
// An empty string yields the zero Version, which means "latest".
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, nil
	}
	if !strings.Contains(s, ".") {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid server version %q", s)
		}
		if n < 100 {
			return Version{Major: n}, nil
		}
		return Version{Major: n / 10000, Minor: n / 100 % 100, Release: n % 100}, nil
	}

	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return Version{}, fmt.Errorf("invalid server version %q", s)
	}
	var nums [3]int
	for i, p := range parts {
		// tolerate suffixes such as 8.0.32-log
		if j := strings.IndexFunc(p, func(r rune) bool { return r < '0' || r > '9' }); j >= 0 && i == len(parts)-1 {
			p = p[:j]
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid server version %q", s)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Release: nums[2]}, nil
}

// MustParseVersion is ParseVersion for constants. It panics on error.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Number returns the version in the numeric form used by versioned comments,
// e.g. 80032. The zero Version returns 0.
func (v Version) Number() int {
	return v.Major*10000 + v.Minor*100 + v.Release
}

// IsZero reports whether no version was set.
func (v Version) IsZero() bool {
	return v == Version{}
}

// AtLeast reports whether v >= other. The zero Version stands for the latest
// server and satisfies every requirement.
func (v Version) AtLeast(other Version) bool {
	if v.IsZero() {
		return true
	}
	return v.Number() >= other.Number()
}

func (v Version) String() string {
	if v.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Release)
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
