// SPDX-License-Identifier: MPL-2.0

package importer

import (
	"strings"

	"github.com/facette/natsort"

	"github.com/filewave/fwtool/internal/fwadmin"
)

// Custom properties written onto filesets created by a gated import.
const (
	PropertyBundleID = "fw_app_bundle_id"
	PropertyVersion  = "fw_app_version"
)

// VersionAtLeast reports whether have is the same as or newer than want, comparing
// numeric chunks as numbers and everything else as text ("1.10" is newer than "1.9",
// "1.02" equals "1.2").
func VersionAtLeast(have, want string) bool {
	have, want = trimLeadingZeros(have), trimLeadingZeros(want)
	return have == want || !natsort.Compare(have, want)
}

// trimLeadingZeros drops leading zeros from every run of digits in v, keeping
// at least one digit per run.
func trimLeadingZeros(v string) string {
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); {
		if !isDigit(v[i]) {
			b.WriteByte(v[i])
			i++
			continue
		}
		j := i
		for j < len(v) && isDigit(v[j]) {
			j++
		}
		run := strings.TrimLeft(v[i:j], "0")
		if run == "" {
			run = "0"
		}
		b.WriteString(run)
		i = j
	}
	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// FindCurrent returns the first fileset whose custom properties identify
// bundleID at version or newer.
func FindCurrent(filesets []fwadmin.Fileset, bundleID, version string) (fwadmin.Fileset, bool) {
	for _, fs := range filesets {
		id, ok := fs.CustomProperties.Get(PropertyBundleID)
		if !ok || id != bundleID {
			continue
		}
		have, ok := fs.CustomProperties.Get(PropertyVersion)
		if !ok || have == "" {
			continue
		}
		if VersionAtLeast(have, version) {
			return fs, true
		}
	}
	return fwadmin.Fileset{}, false
}
