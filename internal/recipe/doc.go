// SPDX-License-Identifier: MPL-2.0

// Package recipe loads processor inputs from recipe files and KEY=VALUE
// command-line overrides.
//
// A recipe is a flat document of input names to scalar values, written in CUE
// or TOML:
//
//	import_source: "/tmp/Firefox.pkg"
//	fw_fileset_name: "Firefox"
//	FW_RELAX_VERSION: true
package recipe
