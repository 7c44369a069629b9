// SPDX-License-Identifier: MPL-2.0

// Package config loads fwtool configuration with Viper, using CUE as the file format.
//
// The configuration file is config.cue in the fwtool configuration directory
// ($XDG_CONFIG_HOME/fwtool on Linux, ~/Library/Application Support/fwtool on
// macOS, %APPDATA%\fwtool on Windows). It is validated against the embedded
// #Config schema. The FW_* environment variables and FILEWAVE_ADMIN_PATH
// override file values.
package config
