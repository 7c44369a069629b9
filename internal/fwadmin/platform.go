// SPDX-License-Identifier: MPL-2.0

package fwadmin

import (
	"errors"
	"fmt"
	"os"
	"path"
)

const (
	// Darwin is the runtime.GOOS value for macOS.
	Darwin = "darwin"
	// Windows is the runtime.GOOS value for Windows.
	Windows = "windows"
	// Linux is the runtime.GOOS value for Linux.
	Linux = "linux"

	// AdminPathEnv names the environment variable holding the FileWave install directory.
	AdminPathEnv = "FILEWAVE_ADMIN_PATH"
	// DefaultAdminPath is the install directory used when AdminPathEnv is unset.
	DefaultAdminPath = "/Applications/FileWave"
)

// ErrUnsupportedPlatform is the sentinel error wrapped by UnsupportedPlatformError.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// executableSubpaths maps each supported platform to the admin tool location
// relative to the install directory.
var executableSubpaths = map[string]string{
	Darwin:  "FileWave Admin.app/Contents/MacOS/FileWave Admin",
	Windows: "RelWithDebInfo/FileWaveAdmin.exe",
	Linux:   "FileWaveAdmin",
}

// UnsupportedPlatformError is returned when the admin tool has no known location
// on the host platform.
type UnsupportedPlatformError struct {
	Platform string
}

// Error implements the error interface.
func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform %q (supported: darwin, windows, linux)", e.Platform)
}

// Unwrap returns ErrUnsupportedPlatform for errors.Is() compatibility.
func (e *UnsupportedPlatformError) Unwrap() error { return ErrUnsupportedPlatform }

// AdminBaseDir returns the FileWave install directory from the environment,
// falling back to DefaultAdminPath.
func AdminBaseDir() string {
	if dir := os.Getenv(AdminPathEnv); dir != "" {
		return dir
	}
	return DefaultAdminPath
}

// ResolveExecutable returns the admin tool path for the given platform identifier
// (a runtime.GOOS value) below baseDir. An empty baseDir means AdminBaseDir().
//
// Paths are joined with forward slashes on every platform, matching the layout the
// FileWave installers produce.
func ResolveExecutable(goos, baseDir string) (string, error) {
	sub, ok := executableSubpaths[goos]
	if !ok {
		return "", &UnsupportedPlatformError{Platform: goos}
	}
	if baseDir == "" {
		baseDir = AdminBaseDir()
	}
	return path.Join(baseDir, sub), nil
}
