// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/filewave/fwtool/internal/fwadmin"
	"github.com/filewave/fwtool/internal/importer"
	"github.com/filewave/fwtool/internal/issue"
	"github.com/filewave/fwtool/internal/processor"
	"github.com/filewave/fwtool/pkg/cueutil"
)

const (
	// AppName is the application name.
	AppName = "fwtool"
	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema []byte

// envBindings maps configuration keys to the environment variables that override them.
var envBindings = []struct {
	key string
	env string
}{
	{"server.host", importer.InputServerHost},
	{"server.port", importer.InputServerPort},
	{"admin.user", importer.InputAdminUser},
	{"admin.password", importer.InputAdminPassword},
	{"admin.relax_version", importer.InputRelaxVersion},
	{"admin.path", fwadmin.AdminPathEnv},
}

// ConfigDir returns the fwtool configuration directory.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var base string
	switch runtime.GOOS {
	case fwadmin.Windows:
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case fwadmin.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			base = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(base, AppName), nil
}

// loadWithOptions builds a Viper instance from defaults, the config file and
// the environment, and returns the decoded Config with the file it came from.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("server.host", defaults.Server.Host)
	v.SetDefault("server.port", defaults.Server.Port)
	v.SetDefault("admin.user", defaults.Admin.User)
	v.SetDefault("admin.password", defaults.Admin.Password)
	v.SetDefault("admin.path", defaults.Admin.Path)
	v.SetDefault("admin.relax_version", defaults.Admin.RelaxVersion)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	for _, b := range envBindings {
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, "", fmt.Errorf("bind %s: %w", b.env, err)
		}
	}

	path, err := resolveConfigPath(opts)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithIssue(issue.ConfigLoadFailedID).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Run 'fwtool config show' to see the effective configuration").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, path, nil
}

// resolveConfigPath returns the config file to load, or "" to run on defaults.
// An explicit file must exist; the default location is optional.
func resolveConfigPath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithIssue(issue.ConfigLoadFailedID).
				WithSuggestion("Verify the file path passed to --config").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	dir := opts.ConfigDirPath
	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			return "", err
		}
	}
	p := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(p) {
		return p, nil
	}
	return "", nil
}

// loadCUEIntoViper validates a CUE file against #Config and merges it into v.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	res, err := cueutil.ParseAndDecode[map[string]any](configSchema, data, "#Config",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*res.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ProcessorDefaults returns the common processor inputs derived from cfg.
func (c *Config) ProcessorDefaults() processor.Env {
	return processor.Env{
		importer.InputServerHost:    c.Server.Host,
		importer.InputServerPort:    c.Server.Port,
		importer.InputAdminUser:     c.Admin.User,
		importer.InputAdminPassword: c.Admin.Password,
		importer.InputRelaxVersion:  c.Admin.RelaxVersion,
	}
}

// ConnectionOptions returns the admin client connection options derived from cfg.
func (c *Config) ConnectionOptions() fwadmin.Options {
	return fwadmin.Options{
		Username: c.Admin.User,
		Password: c.Admin.Password,
		Host:     c.Server.Host,
		Port:     c.Server.Port,
	}
}

// CreateDefaultConfig writes the default configuration to dir unless a
// config file already exists there, and returns the file path.
func CreateDefaultConfig(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	p := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(p) {
		return p, nil
	}
	if err := os.WriteFile(p, []byte(GenerateCUE(DefaultConfig())), 0o600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return p, nil
}

// GenerateCUE renders cfg as a config.cue document.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// fwtool configuration\n\n")

	sb.WriteString("server: {\n")
	fmt.Fprintf(&sb, "\thost: %q\n", cfg.Server.Host)
	fmt.Fprintf(&sb, "\tport: %q\n", cfg.Server.Port)
	sb.WriteString("}\n")

	sb.WriteString("\nadmin: {\n")
	fmt.Fprintf(&sb, "\tuser:          %q\n", cfg.Admin.User)
	fmt.Fprintf(&sb, "\tpassword:      %q\n", cfg.Admin.Password)
	fmt.Fprintf(&sb, "\tpath:          %q\n", cfg.Admin.Path)
	fmt.Fprintf(&sb, "\trelax_version: %v\n", cfg.Admin.RelaxVersion)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}
