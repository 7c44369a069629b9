// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/filewave/fwtool/internal/config"
)

const redactedPassword = "********"

// newConfigCommand creates the `fwtool config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage fwtool configuration",
		Long: `Manage fwtool configuration.

Configuration is stored in:
  - Linux: ~/.config/fwtool/config.cue
  - macOS: ~/Library/Application Support/fwtool/config.cue
  - Windows: %APPDATA%\fwtool\config.cue

The FW_SERVER_HOST, FW_SERVER_PORT, FW_ADMIN_USER, FW_ADMIN_PASSWORD,
FW_RELAX_VERSION and FILEWAVE_ADMIN_PATH environment variables override
values from the file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.fail(showConfig(cmd.Context(), app))
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Create the default configuration file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.fail(initConfig(app))
			},
		},
		&cobra.Command{
			Use:   "dump",
			Short: "Output the effective configuration as CUE",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := app.loadConfig(cmd.Context())
				if err != nil {
					return app.fail(err)
				}
				fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
				return nil
			},
		},
	)
	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.loadConfig(ctx)
	if err != nil {
		return err
	}

	w := app.stdout
	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("Config file"), configFileLabel(app.configPath))
	fmt.Fprintln(w)

	password := SubtitleStyle.Render("(empty)")
	if cfg.Admin.Password != "" {
		password = SuccessStyle.Render(redactedPassword)
	}

	fmt.Fprintf(w, "%s:\n", KeyStyle.Render("server"))
	fmt.Fprintf(w, "  host: %s\n", SuccessStyle.Render(cfg.Server.Host))
	fmt.Fprintf(w, "  port: %s\n", SuccessStyle.Render(cfg.Server.Port))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", KeyStyle.Render("admin"))
	fmt.Fprintf(w, "  user: %s\n", SuccessStyle.Render(cfg.Admin.User))
	fmt.Fprintf(w, "  password: %s\n", password)
	fmt.Fprintf(w, "  path: %s\n", SuccessStyle.Render(cfg.Admin.Path))
	fmt.Fprintf(w, "  relax_version: %s\n", SuccessStyle.Render(fmt.Sprintf("%v", cfg.Admin.RelaxVersion)))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", KeyStyle.Render("ui"))
	fmt.Fprintf(w, "  verbose: %s\n", SuccessStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	return nil
}

// configFileLabel names the config file that was read, or notes that only
// defaults and the environment apply.
func configFileLabel(explicit string) string {
	if explicit != "" {
		return explicit
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return SubtitleStyle.Render("(using defaults)")
	}
	p := filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt)
	if info, err := os.Stat(p); err == nil && !info.IsDir() {
		return p
	}
	return SubtitleStyle.Render("(using defaults)")
}

func initConfig(app *App) error {
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	p := filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt)
	if _, err := os.Stat(p); err == nil {
		fmt.Fprintf(app.stdout, "%s Config file already exists at %s\n", WarningStyle.Render("!"), p)
		return nil
	}

	created, err := config.CreateDefaultConfig(dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "%s Created %s\n", SuccessStyle.Render("✓"), created)
	return nil
}
