// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces the platform configuration directory in tests.
var configDirOverride string

// SetConfigDirOverride sets a custom configuration directory.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset clears test overrides.
func Reset() {
	configDirOverride = ""
}
