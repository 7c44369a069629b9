// SPDX-License-Identifier: MPL-2.0

package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/filewave/fwtool/internal/diskimage"
)

const (
	// StrategyPackage imports an installer package.
	StrategyPackage Strategy = "package"
	// StrategyDiskImage mounts a disk image and imports its contents.
	StrategyDiskImage Strategy = "disk-image"
	// StrategyFolder imports a directory tree.
	StrategyFolder Strategy = "folder"
)

// Strategy is the way an import source is handed to the admin tool.
type Strategy string

var packageExtensions = []string{".pkg", ".mpkg", ".msi"}

// IsPackage reports whether path has an installer package extension.
func IsPackage(path string) bool {
	return slices.Contains(packageExtensions, strings.ToLower(filepath.Ext(path)))
}

// SelectStrategy picks the import strategy for source. Package and disk image
// extensions take precedence over the file type, since bundle packages are
// directories.
func SelectStrategy(source string) (Strategy, error) {
	if IsPackage(source) {
		return StrategyPackage, nil
	}
	if strings.EqualFold(filepath.Ext(source), diskimage.Extension) {
		return StrategyDiskImage, nil
	}
	info, err := os.Stat(source)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrImportSourceMissing, source)
	}
	if info.IsDir() {
		return StrategyFolder, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedSource, source)
}

// firstPackage returns the first installer package at the top level of dir in
// name order, or "" when there is none.
func firstPackage(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if IsPackage(e.Name()) {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", nil
}
