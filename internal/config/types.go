// SPDX-License-Identifier: MPL-2.0

package config

import (
	"github.com/filewave/fwtool/internal/fwadmin"
)

type (
	// Config is the fwtool configuration.
	Config struct {
		// Server addresses the FileWave server.
		Server ServerConfig `json:"server" mapstructure:"server"`
		// Admin configures the local admin tool and its credentials.
		Admin AdminConfig `json:"admin" mapstructure:"admin"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// ServerConfig addresses the FileWave server.
	ServerConfig struct {
		Host string `json:"host" mapstructure:"host"`
		Port string `json:"port" mapstructure:"port"`
	}

	// AdminConfig configures the local admin tool.
	AdminConfig struct {
		User     string `json:"user" mapstructure:"user"`
		Password string `json:"password" mapstructure:"password"`
		// Path is the FileWave installation directory holding the admin tool.
		Path string `json:"path" mapstructure:"path"`
		// RelaxVersion continues with a warning when the admin tool is too old.
		RelaxVersion bool `json:"relax_version" mapstructure:"relax_version"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		// Verbose enables debug logging.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: fwadmin.DefaultHost,
			Port: fwadmin.DefaultPort,
		},
		Admin: AdminConfig{
			User:     fwadmin.DefaultUsername,
			Password: fwadmin.DefaultPassword,
			Path:     fwadmin.DefaultAdminPath,
		},
	}
}
