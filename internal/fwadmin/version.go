// SPDX-License-Identifier: MPL-2.0

package fwadmin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// MinimumVersion is the oldest admin tool release the importers support.
const MinimumVersion = "10.0.0"

var (
	// ErrInvalidVersion is returned when the admin tool reports a version that is
	// not a dotted major.minor.patch triple.
	ErrInvalidVersion = errors.New("invalid admin tool version")

	// ErrVersionTooOld is the sentinel error wrapped by VersionTooOldError.
	ErrVersionTooOld = errors.New("admin tool version too old")
)

type (
	// Version is a parsed admin tool version.
	Version struct {
		Major int
		Minor int
		Patch int
		// Raw is the version text as printed by the tool.
		Raw string
	}

	// VersionTooOldError is returned by CheckMinimumVersion.
	VersionTooOldError struct {
		Have     Version
		Required string
	}
)

// String returns the version as printed by the tool.
func (v Version) String() string {
	if v.Raw != "" {
		return v.Raw
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// semver returns the canonical "vMAJOR.MINOR.PATCH" form.
func (v Version) semver() string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Error implements the error interface.
func (e *VersionTooOldError) Error() string {
	major, _, _ := strings.Cut(e.Required, ".")
	return fmt.Sprintf("FileWave Version %s.0 must be installed - you have version %s", major, e.Have)
}

// Unwrap returns ErrVersionTooOld for errors.Is() compatibility.
func (e *VersionTooOldError) Unwrap() error { return ErrVersionTooOld }

// ParseVersion parses a "major.minor.patch" string. Surrounding whitespace is ignored.
func ParseVersion(s string) (Version, error) {
	raw := strings.TrimSpace(s)
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w %q: want major.minor.patch", ErrInvalidVersion, raw)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("%w %q: component %q is not a number", ErrInvalidVersion, raw, p)
		}
		nums[i] = n
	}
	v := Version{Major: nums[0], Minor: nums[1], Patch: nums[2], Raw: raw}
	if !semver.IsValid(v.semver()) {
		return Version{}, fmt.Errorf("%w %q", ErrInvalidVersion, raw)
	}
	return v, nil
}

// CheckMinimumVersion returns a *VersionTooOldError when v is older than
// MinimumVersion.
func CheckMinimumVersion(v Version) error {
	if semver.Compare(v.semver(), "v"+MinimumVersion) < 0 {
		return &VersionTooOldError{Have: v, Required: MinimumVersion}
	}
	return nil
}

// Version queries the admin tool version (-v, no connection flags).
func (c *Client) Version(ctx context.Context) (Version, error) {
	out, err := c.Run(ctx, []string{"-v"}, WithoutConnection())
	if err != nil {
		return Version{}, err
	}
	return ParseVersion(out)
}
