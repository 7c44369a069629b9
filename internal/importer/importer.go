// SPDX-License-Identifier: MPL-2.0

// Package importer provides the processors that validate the FileWave admin
// tool and import packages, disk images and folders as filesets.
package importer

import (
	"errors"
	"fmt"

	"github.com/filewave/fwtool/internal/diskimage"
	"github.com/filewave/fwtool/internal/processor"
)

// Processor names.
const (
	FWToolName           = "FWTool"
	FileWaveImporterName = "FileWaveImporter"
	FolderImporterName   = "FileWaveFolderImporter"
)

// Summary keys written by the processors in this package.
const (
	FWToolSummaryKey   = "fwtool_summary_result"
	FileWaveSummaryKey = "filewave_summary_result"
)

var (
	// ErrImportSourceMissing is returned when the import source does not exist.
	ErrImportSourceMissing = errors.New("import source does not exist")

	// ErrUnsupportedSource is returned when the import source is neither a
	// package, a disk image nor a directory.
	ErrUnsupportedSource = errors.New("unsupported import source")
)

type (
	// Option configures the processors in this package.
	Option func(*deps)

	// ImportError wraps a failed import with the source and fileset name.
	ImportError struct {
		Source  string
		Fileset string
		Err     error
	}

	deps struct {
		clients ClientFactory
		mounter diskimage.Mounter
		output  processor.OutputFunc
	}
)

// Error implements the error interface.
func (e *ImportError) Error() string {
	return fmt.Sprintf("Error importing '%s' into FileWave as a fileset called '%s', detail: %v", e.Source, e.Fileset, e.Err)
}

// Unwrap returns the underlying error.
func (e *ImportError) Unwrap() error { return e.Err }

// WithClientFactory sets the factory used to create admin clients.
func WithClientFactory(f ClientFactory) Option {
	return func(d *deps) {
		d.clients = f
	}
}

// WithMounter sets the disk image mounter.
func WithMounter(m diskimage.Mounter) Option {
	return func(d *deps) {
		d.mounter = m
	}
}

// WithOutput sets the progress message callback.
func WithOutput(fn processor.OutputFunc) Option {
	return func(d *deps) {
		d.output = fn
	}
}

func newDeps(opts []Option) deps {
	d := deps{
		clients: DefaultClientFactory(),
		mounter: diskimage.NewHdiutilMounter(),
		output:  processor.Discard,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// Register adds every processor in this package to r.
func Register(r *processor.Registry, opts ...Option) {
	r.Register(NewFWTool(opts...))
	r.Register(NewFileWaveImporter(opts...))
	r.Register(NewFolderImporter(opts...))
}
