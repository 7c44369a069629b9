// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/filewave/fwtool/internal/importer"
	"github.com/filewave/fwtool/internal/processor"
	"github.com/filewave/fwtool/internal/recipe"
)

type (
	// runRequest captures the inputs of one processor invocation.
	runRequest struct {
		// Processor is the registered processor name.
		Processor string
		// RecipePath is the --recipe file (optional).
		RecipePath string
		// Overrides are the raw -k KEY=VALUE pairs.
		Overrides []string
		// Inputs are values derived from command-specific flags. They take
		// precedence over the recipe and yield to Overrides.
		Inputs processor.Env
		// JSON selects JSON output instead of rendered summaries.
		JSON bool
	}

	// inputFlag binds a command flag to a processor input.
	inputFlag struct {
		name  string
		input string
		usage string
	}
)

// runFlags registers the flags shared by every processor command.
func runFlags(fs *pflag.FlagSet, req *runRequest) {
	fs.StringVar(&req.RecipePath, "recipe", "", "recipe file with processor inputs (.cue or .toml)")
	fs.StringArrayVarP(&req.Overrides, "key", "k", nil, "set a processor input as KEY=VALUE (repeatable)")
	fs.BoolVar(&req.JSON, "json", false, "print outputs and summaries as JSON")
}

// bindInputs registers string flags for inputs and returns a function that
// collects the flags the user set.
func bindInputs(fs *pflag.FlagSet, flags []inputFlag) func() processor.Env {
	values := make([]string, len(flags))
	for i, f := range flags {
		fs.StringVar(&values[i], f.name, "", f.usage)
	}
	return func() processor.Env {
		env := processor.Env{}
		for i, f := range flags {
			if fs.Changed(f.name) {
				env[f.input] = values[i]
			}
		}
		return env
	}
}

func newRunCommand(app *App) *cobra.Command {
	var req runRequest
	cmd := &cobra.Command{
		Use:   "run <processor>",
		Short: "Run a processor",
		Long: `Run a processor with inputs from the configuration, a recipe file and
KEY=VALUE overrides, in increasing order of precedence.

Run 'fwtool processors' to list the available processors.`,
		Example: `  fwtool run FWTool
  fwtool run FileWaveImporter --recipe Firefox.cue
  fwtool run FileWaveImporter -k fw_import_source=/tmp/Firefox.pkg -k fw_fileset_name=Firefox --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Processor = args[0]
			return app.fail(app.runProcessor(cmd.Context(), req))
		},
	}
	runFlags(cmd.Flags(), &req)
	return cmd
}

func newValidateCommand(app *App) *cobra.Command {
	var req runRequest
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the admin tool and the server login",
		Long: `Run the FWTool processor: check that FileWave Admin is installed and recent
enough, and that it can list filesets on the configured server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Processor = importer.FWToolName
			return app.fail(app.runProcessor(cmd.Context(), req))
		},
	}
	runFlags(cmd.Flags(), &req)
	return cmd
}

func newImportCommand(app *App) *cobra.Command {
	var req runRequest
	cmd := &cobra.Command{
		Use:   "import <source>",
		Short: "Import a package, disk image or folder as a fileset",
		Long: `Run the FileWaveImporter processor on source.

Packages (.pkg, .mpkg, .msi) are imported directly. Disk images (.dmg) are
mounted and the first package inside is imported, or the whole volume as a
folder when it holds none. Directories are imported as folders.

When both --bundle-id and --app-version are given, the import is skipped if a
fileset already carries the same or a newer version of the application.`,
		Example: `  fwtool import Firefox-128.0.pkg --name "Firefox 128.0" --bundle-id org.mozilla.firefox --app-version 128.0`,
		Args:    cobra.ExactArgs(1),
	}
	inputs := bindInputs(cmd.Flags(), []inputFlag{
		{name: "name", input: importer.InputFilesetName, usage: "fileset name"},
		{name: "group", input: importer.InputFilesetGroup, usage: "fileset group to import into"},
		{name: "root", input: importer.InputDestinationRoot, usage: "destination root on clients (default /Applications)"},
		{name: "bundle-id", input: importer.InputAppBundleID, usage: "application bundle identifier for the version check"},
		{name: "app-version", input: importer.InputAppVersion, usage: "application version for the version check"},
	})
	runFlags(cmd.Flags(), &req)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		req.Processor = importer.FileWaveImporterName
		req.Inputs = inputs()
		req.Inputs.Set(importer.InputImportSource, args[0])
		return app.fail(app.runProcessor(cmd.Context(), req))
	}
	return cmd
}

func newImportFolderCommand(app *App) *cobra.Command {
	var req runRequest
	cmd := &cobra.Command{
		Use:   "import-folder <folder>",
		Short: "Import a folder as a fileset",
		Long: `Run the FileWaveFolderImporter processor: import folder as a fileset
without checking the admin tool version first.`,
		Example: `  fwtool import-folder ./payload --name "Site Config" --root /Library/Site`,
		Args:    cobra.ExactArgs(1),
	}
	inputs := bindInputs(cmd.Flags(), []inputFlag{
		{name: "name", input: importer.InputFolderName, usage: "fileset name"},
		{name: "group", input: importer.InputFolderGroup, usage: "fileset group to import into"},
		{name: "root", input: importer.InputFolderRoot, usage: "destination root on clients"},
	})
	runFlags(cmd.Flags(), &req)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		req.Processor = importer.FolderImporterName
		req.Inputs = inputs()
		req.Inputs.Set(importer.InputFolderSource, args[0])
		return app.fail(app.runProcessor(cmd.Context(), req))
	}
	return cmd
}

func newProcessorsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "processors [name]",
		Short: "List processors or describe one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return app.fail(err)
			}
			reg := app.registry(cfg)

			if len(args) == 0 {
				for _, name := range reg.Names() {
					p, _ := reg.Get(name)
					fmt.Fprintf(app.stdout, "%s  %s\n", KeyStyle.Render(name), SubtitleStyle.Render(p.Description()))
				}
				return nil
			}

			p, err := reg.Get(args[0])
			if err != nil {
				return app.fail(err)
			}
			return app.fail(app.renderMarkdown(processorMarkdown(p)))
		},
	}
}

// runProcessor assembles the environment for req, runs the processor and
// prints its results.
func (a *App) runProcessor(ctx context.Context, req runRequest) error {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return err
	}

	p, err := a.registry(cfg).Get(req.Processor)
	if err != nil {
		return err
	}

	var recipeEnv processor.Env
	if req.RecipePath != "" {
		if recipeEnv, err = recipe.Load(req.RecipePath); err != nil {
			return err
		}
	}
	overrides, err := recipe.ParseOverrides(req.Overrides)
	if err != nil {
		return err
	}

	env := recipe.Layer(cfg.ProcessorDefaults(), recipeEnv, req.Inputs, overrides)
	a.logger.Debug("running processor", "processor", p.Name(), "inputs", len(env))

	if err := processor.Run(ctx, p, env); err != nil {
		return err
	}
	return a.writeResult(p, env, req.JSON)
}
