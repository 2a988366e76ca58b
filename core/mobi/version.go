package mobi

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
)

// Version is a kindlegen release, as printed in its banner:
// "Amazon kindlegen(Linux) V2.9 build 1028-0897292".
type Version struct {
	Major int
	Minor int
	Build int
}

// MinVersion is the oldest kindlegen known to accept idx: markup.
var MinVersion = Version{Major: 2, Minor: 0}

var bannerPattern = regexp.MustCompile(`(?i)kindlegen.*?\bV(\d+)\.(\d+)(?:\s+build\s+(\d+))?`)

// ParseVersion extracts the version from kindlegen's banner output.
func ParseVersion(banner string) (Version, error) {
	m := bannerPattern.FindStringSubmatch(banner)
	if m == nil {
		return Version{}, fmt.Errorf("no kindlegen version in output")
	}
	var v Version
	v.Major, _ = strconv.Atoi(m[1])
	v.Minor, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		v.Build, _ = strconv.Atoi(m[3])
	}
	return v, nil
}

func (v Version) String() string {
	if v.Build > 0 {
		return fmt.Sprintf("%d.%d build %d", v.Major, v.Minor, v.Build)
	}
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compare returns -1, 0 or +1 as v is older than, equal to or newer than
// other.
func (v Version) Compare(other Version) int {
	for _, d := range [][2]int{{v.Major, other.Major}, {v.Minor, other.Minor}, {v.Build, other.Build}} {
		if d[0] < d[1] {
			return -1
		}
		if d[0] > d[1] {
			return 1
		}
	}
	return 0
}

// Supported reports whether v is at least MinVersion.
func (v Version) Supported() bool {
	return v.Compare(MinVersion) >= 0
}

// DetectVersion runs the configured kindlegen without arguments and parses the
// banner it prints. Kindlegen exits non-zero when given no input, so only
// a launch failure or an unparseable banner is an error.
func (c *Compiler) DetectVersion(ctx context.Context) (Version, error) {
	if c.path == "" {
		return Version{}, fmt.Errorf("kindlegen path not set")
	}
	res, err := c.exec.Run(ctx, c.path, nil)
	if err != nil {
		return Version{}, fmt.Errorf("run %s: %w", c.path, err)
	}
	v, err := ParseVersion(decodeOutput(res.Stdout) + "\n" + decodeOutput(res.Stderr))
	if err != nil {
		return Version{}, fmt.Errorf("%s: %w", c.path, err)
	}
	c.log(ctx).Debug("kindlegen version", "path", c.path, "version", v.String())
	return v, nil
}
