// SPDX-License-Identifier: MPL-2.0

// Package fwadmin wraps the FileWave Admin command-line tool.
//
// The Client resolves the platform-specific FileWaveAdmin executable, prepends the
// server connection flags (-u/-p/-H/-P) to every invocation and normalizes the tool's
// output: listings are decoded from JSON into flat ClientRecord, Fileset and Association
// records, and creation commands have their new identifier extracted from the tool's
// confirmation message.
//
// All calls are synchronous. Each operation runs exactly one subprocess and blocks
// until it exits.
package fwadmin
