// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the fwtool command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fwtool",
		Short: "Import software into FileWave",
		Long: TitleStyle.Render("fwtool") + SubtitleStyle.Render(" - Import software into FileWave") + `

fwtool drives the FileWave Admin command-line tool to import packages,
disk images and folders as filesets. It runs the FWTool, FileWaveImporter
and FileWaveFolderImporter processors with inputs taken from the
configuration, a recipe file and KEY=VALUE overrides.

` + SubtitleStyle.Render("Examples:") + `
  fwtool validate                         Check the admin tool and server login
  fwtool import Firefox.pkg --name Firefox --bundle-id org.mozilla.firefox --app-version 128.0
  fwtool import-folder ./payload --name "Site Config"
  fwtool run FileWaveImporter --recipe Firefox.cue -k fw_fileset_group=Browsers
  fwtool filesets list                    List filesets on the server`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is <config dir>/fwtool/config.cue)")

	rootCmd.AddCommand(
		newRunCommand(app),
		newValidateCommand(app),
		newImportCommand(app),
		newImportFolderCommand(app),
		newProcessorsCommand(app),
		newClientsCommand(app),
		newFilesetsCommand(app),
		newAssociationsCommand(app),
		newImageCommand(app),
		newModelCommand(app),
		newAdminCommand(app),
		newConfigCommand(app),
	)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the production App and runs the command tree through fang.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
