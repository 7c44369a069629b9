// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for fwtool.
//
// This package implements the Cobra command hierarchy for the fwtool CLI:
// the processor commands (run, validate, import, import-folder), thin wrappers
// around the FileWave admin tool (clients, filesets, associations, image,
// model, admin) and configuration management.
package cmd
