// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/filewave/fwtool/internal/config"
	"github.com/filewave/fwtool/internal/diskimage"
	"github.com/filewave/fwtool/internal/fwadmin"
	"github.com/filewave/fwtool/internal/importer"
	"github.com/filewave/fwtool/internal/processor"
)

const defaultMarkdownStyle = "auto"

type (
	// App wires CLI services and shared dependencies. It is the composition root
	// for the CLI layer: every Cobra handler receives an App and reaches the
	// configuration, the admin tool and the processors through it.
	App struct {
		Config        ConfigProvider
		Mounter       diskimage.Mounter
		clientOptions []fwadmin.ClientOption
		markdownStyle string
		stdout        io.Writer
		stderr        io.Writer
		logger        *log.Logger

		// Global flag values, bound by the root command.
		verbose    bool
		configPath string
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config  ConfigProvider
		Mounter diskimage.Mounter
		// ClientOptions are applied after the configured admin path, so tests
		// can replace the executable and the process launcher.
		ClientOptions []fwadmin.ClientOption
		// MarkdownStyle is the glamour style for summaries and issue guidance.
		MarkdownStyle string
		Stdout        io.Writer
		Stderr        io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.MarkdownStyle == "" {
		deps.MarkdownStyle = defaultMarkdownStyle
	}

	logger := log.NewWithOptions(deps.Stderr, log.Options{
		Prefix: config.AppName,
	})
	if deps.Mounter == nil {
		deps.Mounter = diskimage.NewHdiutilMounter(diskimage.WithLogger(logger))
	}

	return &App{
		Config:        deps.Config,
		Mounter:       deps.Mounter,
		clientOptions: deps.ClientOptions,
		markdownStyle: deps.MarkdownStyle,
		stdout:        deps.Stdout,
		stderr:        deps.Stderr,
		logger:        logger,
	}
}

// loadConfig loads configuration honoring --config and raises the log level
// when verbose output is requested by flag or by the ui.verbose setting.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.configPath})
	if err != nil {
		return nil, err
	}
	if a.verbose || cfg.UI.Verbose {
		a.logger.SetLevel(log.DebugLevel)
	}
	return cfg, nil
}

// clientFactory returns a ClientFactory bound to the configured install
// directory and the App's logger.
func (a *App) clientFactory(cfg *config.Config) importer.ClientFactory {
	opts := []fwadmin.ClientOption{
		fwadmin.WithAdminPath(cfg.Admin.Path),
		fwadmin.WithLogger(a.logger),
	}
	return importer.DefaultClientFactory(append(opts, a.clientOptions...)...)
}

// adminClient loads configuration and creates an admin client for it.
func (a *App) adminClient(ctx context.Context) (*fwadmin.Client, error) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	return a.clientFactory(cfg)(cfg.ConnectionOptions())
}

// registry returns the processors available to run, wired to cfg.
func (a *App) registry(cfg *config.Config) *processor.Registry {
	r := processor.NewRegistry()
	importer.Register(r,
		importer.WithClientFactory(a.clientFactory(cfg)),
		importer.WithMounter(a.Mounter),
		importer.WithOutput(a.logger.Infof),
	)
	return r
}
