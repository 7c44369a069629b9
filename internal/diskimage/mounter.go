// SPDX-License-Identifier: MPL-2.0

// Package diskimage attaches and detaches macOS disk images with hdiutil.
package diskimage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// Extension is the file extension of disk images.
const Extension = ".dmg"

// ErrNoMountPoint is returned when hdiutil attach succeeds without reporting a mount point.
var ErrNoMountPoint = errors.New("hdiutil reported no mount point")

type (
	// Mounter attaches a disk image and later detaches it.
	Mounter interface {
		Mount(ctx context.Context, imagePath string) (string, error)
		Unmount(ctx context.Context, mountPoint string) error
	}

	// ExecCommandFunc is the function signature for creating exec.Cmd.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// HdiutilOption configures an HdiutilMounter.
	HdiutilOption func(*HdiutilMounter)

	// HdiutilMounter mounts images read-only below a private temporary directory.
	HdiutilMounter struct {
		binary      string
		tempDir     string
		execCommand ExecCommandFunc
		logger      *log.Logger
	}
)

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) HdiutilOption {
	return func(m *HdiutilMounter) {
		m.execCommand = fn
	}
}

// WithTempDir sets the directory below which mount points are created.
func WithTempDir(dir string) HdiutilOption {
	return func(m *HdiutilMounter) {
		m.tempDir = dir
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) HdiutilOption {
	return func(m *HdiutilMounter) {
		m.logger = l
	}
}

// NewHdiutilMounter creates a Mounter backed by /usr/bin/hdiutil.
func NewHdiutilMounter(opts ...HdiutilOption) *HdiutilMounter {
	m := &HdiutilMounter{
		binary:      "/usr/bin/hdiutil",
		tempDir:     os.TempDir(),
		execCommand: exec.CommandContext,
		logger:      log.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AttachArgs constructs arguments for hdiutil attach.
//
// Generated command: attach -nobrowse -readonly -noverify -noautoopen -mountrandom <tmp> <image>
func (m *HdiutilMounter) AttachArgs(imagePath string) []string {
	return []string{"attach", "-nobrowse", "-readonly", "-noverify", "-noautoopen", "-mountrandom", m.tempDir, imagePath}
}

// DetachArgs constructs arguments for hdiutil detach.
func (m *HdiutilMounter) DetachArgs(mountPoint string) []string {
	return []string{"detach", mountPoint}
}

// Mount attaches imagePath and returns its mount point.
func (m *HdiutilMounter) Mount(ctx context.Context, imagePath string) (string, error) {
	cmd := m.execCommand(ctx, m.binary, m.AttachArgs(imagePath)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("attach %s: %w: %s", imagePath, err, strings.TrimSpace(string(out)))
	}
	mountPoint, err := ParseMountPoint(string(out))
	if err != nil {
		return "", fmt.Errorf("attach %s: %w", imagePath, err)
	}
	m.logger.Debug("mounted disk image", "image", imagePath, "mount_point", mountPoint)
	return mountPoint, nil
}

// Unmount detaches the image mounted at mountPoint.
func (m *HdiutilMounter) Unmount(ctx context.Context, mountPoint string) error {
	cmd := m.execCommand(ctx, m.binary, m.DetachArgs(mountPoint)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("detach %s: %w: %s", mountPoint, err, strings.TrimSpace(string(out)))
	}
	m.logger.Debug("unmounted disk image", "mount_point", mountPoint)
	return nil
}

// ParseMountPoint extracts the mount point from hdiutil attach output. Each
// output line lists a device, a partition type and, for mounted volumes, a mount
// point, separated by tabs.
func ParseMountPoint(out string) (string, error) {
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		fields := strings.Split(sc.Text(), "\t")
		last := strings.TrimSpace(fields[len(fields)-1])
		if len(fields) > 1 && strings.HasPrefix(last, "/") && !strings.HasPrefix(last, "/dev/") {
			return last, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return "", ErrNoMountPoint
}

// WithMounted mounts imagePath, calls fn with the mount point and unmounts the
// image exactly once, whether fn returns an error or panics. An unmount failure
// is joined with fn's error.
func WithMounted(ctx context.Context, m Mounter, imagePath string, fn func(mountPoint string) error) (err error) {
	mountPoint, err := m.Mount(ctx, imagePath)
	if err != nil {
		return err
	}
	defer func() {
		if uerr := m.Unmount(context.WithoutCancel(ctx), mountPoint); uerr != nil {
			err = errors.Join(err, uerr)
		}
	}()
	return fn(mountPoint)
}
