// SPDX-License-Identifier: MPL-2.0

// Package cueutil compiles user CUE documents against an embedded schema and
// decodes them into Go values.
//
//	//go:embed config_schema.cue
//	var configSchema []byte
//
//	result, err := cueutil.ParseAndDecode[Config](
//	    configSchema, data, "#Config",
//	    cueutil.WithFilename(path),
//	    cueutil.WithConcrete(false),
//	)
//
// Errors carry the file name and the JSON-style path of the offending field,
// e.g. "config.cue: server.port: conflicting values".
package cueutil
