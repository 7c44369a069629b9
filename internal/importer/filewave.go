// SPDX-License-Identifier: MPL-2.0

package importer

import (
	"context"
	"fmt"
	"os"

	"github.com/filewave/fwtool/internal/diskimage"
	"github.com/filewave/fwtool/internal/fwadmin"
	"github.com/filewave/fwtool/internal/processor"
)

// FileWaveImporter input and output names.
const (
	InputImportSource    = "fw_import_source"
	InputFilesetName     = "fw_fileset_name"
	InputFilesetGroup    = "fw_fileset_group"
	InputDestinationRoot = "fw_destination_root"
	InputAppBundleID     = "fw_app_bundle_id"
	InputAppVersion      = "fw_app_version"

	OutputFilesetID     = "fw_fileset_id"
	OutputImportSkipped = "fw_import_skipped"

	// DefaultDestinationRoot is where imported content lands on clients.
	DefaultDestinationRoot = "/Applications"

	// rootGroup names the implicit top-level fileset group in summaries.
	rootGroup = "Root"
)

// FileWaveImporter imports a package, disk image or folder as a fileset,
// skipping the import when a fileset already carries the same or a newer
// version of the application.
type FileWaveImporter struct {
	deps
	validator *FWTool
}

// NewFileWaveImporter creates the generic import processor.
func NewFileWaveImporter(opts ...Option) *FileWaveImporter {
	return &FileWaveImporter{
		deps:      newDeps(opts),
		validator: NewFWTool(opts...),
	}
}

// Name implements processor.Processor.
func (p *FileWaveImporter) Name() string { return FileWaveImporterName }

// Description implements processor.Processor.
func (p *FileWaveImporter) Description() string {
	return "Imports a path as a fileset into FileWave. The path points to a package, a disk image or a folder."
}

// InputVariables implements processor.Processor.
func (p *FileWaveImporter) InputVariables() map[string]processor.InputVariable {
	inputs := CommonInputs()
	inputs[InputImportSource] = processor.InputVariable{
		Required:    true,
		Description: "The package, disk image or folder that will be imported into the FileWave fileset.",
	}
	inputs[InputFilesetName] = processor.InputVariable{
		Required:    true,
		Description: "The name of the fileset to be created (will be made unique if it isn't already).",
	}
	inputs[InputFilesetGroup] = processor.InputVariable{
		Description: "The fileset group to import into. Created if it does not exist; may be left blank.",
	}
	inputs[InputDestinationRoot] = processor.InputVariable{
		Default:     DefaultDestinationRoot,
		Description: "The location at which to place all the imported data. Defaults to " + DefaultDestinationRoot,
	}
	inputs[InputAppBundleID] = processor.InputVariable{
		Description: "Bundle identifier used to skip imports of versions already present. Defaults to bundleid.",
	}
	inputs[InputAppVersion] = processor.InputVariable{
		Description: "Application version used to skip imports of versions already present. Defaults to version.",
	}
	return inputs
}

// OutputVariables implements processor.Processor.
func (p *FileWaveImporter) OutputVariables() map[string]processor.OutputVariable {
	return map[string]processor.OutputVariable{
		OutputFilesetID:     {Description: "The resulting FileWave fileset ID for the newly created fileset."},
		OutputImportSkipped: {Description: "True when an existing fileset already provides this version."},
		FileWaveSummaryKey:  {Description: "Summary of what was imported into FileWave."},
		FWToolSummaryKey:    {Description: "The results of the installation/validation check."},
	}
}

// Main implements processor.Processor.
func (p *FileWaveImporter) Main(ctx context.Context, env processor.Env) error {
	tc, err := p.validator.validate(ctx, env)
	if err != nil {
		return err
	}

	source := env.String(InputImportSource)
	if _, err := os.Stat(source); err != nil {
		return fmt.Errorf("%w: %s", ErrImportSourceMissing, source)
	}

	req := fwadmin.ImportRequest{
		Path:  source,
		Name:  env.String(InputFilesetName),
		Root:  env.String(InputDestinationRoot),
		Group: env.String(InputFilesetGroup),
	}
	bundleID := firstNonEmpty(env.String(InputAppBundleID), env.String("bundleid"))
	version := firstNonEmpty(env.String(InputAppVersion), env.String("version"))
	gated := bundleID != "" && version != ""

	if gated {
		if tc.ListErr != nil {
			return fmt.Errorf("list filesets for version check: %w", tc.ListErr)
		}
		if existing, ok := FindCurrent(tc.Filesets, bundleID, version); ok {
			p.skip(env, req, existing, bundleID, version)
			return nil
		}
	}

	id, err := p.importSource(ctx, tc.Client, req)
	if err == nil && gated {
		err = tagFileset(ctx, tc.Client, id, bundleID, version)
	}
	if err != nil {
		return &ImportError{Source: source, Fileset: req.Name, Err: err}
	}

	env.Set(OutputFilesetID, id)
	env.Set(OutputImportSkipped, false)
	env.SetSummary(FileWaveSummaryKey, filesetSummary("The following fileset was imported:", id, req))
	p.output("Created Fileset <%s> from '%s' at root '%s'", req.Name, source, req.Root)
	return nil
}

func (p *FileWaveImporter) skip(env processor.Env, req fwadmin.ImportRequest, existing fwadmin.Fileset, bundleID, version string) {
	p.output("Fileset %s already provides %s %s, skipping import of '%s'", existing.ID, bundleID, version, req.Path)
	env.Set(OutputFilesetID, existing.ID.String())
	env.Set(OutputImportSkipped, true)
	env.SetSummary(FileWaveSummaryKey, filesetSummary("An existing fileset is already up to date:", existing.ID.String(), req))
}

// importSource hands source to the admin tool using the strategy its type calls for.
func (p *FileWaveImporter) importSource(ctx context.Context, client *fwadmin.Client, req fwadmin.ImportRequest) (string, error) {
	strategy, err := SelectStrategy(req.Path)
	if err != nil {
		return "", err
	}

	switch strategy {
	case StrategyPackage:
		return client.ImportPackage(ctx, req)
	case StrategyDiskImage:
		var id string
		err := diskimage.WithMounted(ctx, p.mounter, req.Path, func(mountPoint string) error {
			pkg, err := firstPackage(mountPoint)
			if err != nil {
				return err
			}
			inner := req
			if pkg != "" {
				inner.Path = pkg
				id, err = client.ImportPackage(ctx, inner)
				return err
			}
			inner.Path = mountPoint
			id, err = client.ImportFolder(ctx, inner)
			return err
		})
		return id, err
	default:
		return client.ImportFolder(ctx, req)
	}
}

func tagFileset(ctx context.Context, client *fwadmin.Client, id, bundleID, version string) error {
	if err := client.SetProperty(ctx, id, PropertyBundleID, bundleID); err != nil {
		return err
	}
	return client.SetProperty(ctx, id, PropertyVersion, version)
}

func filesetSummary(text, id string, req fwadmin.ImportRequest) processor.SummaryResult {
	return processor.SummaryResult{
		SummaryText:  text,
		ReportFields: []string{"fw_fileset_id", "fw_fileset_group", "fw_fileset_name"},
		Data: map[string]string{
			"fw_fileset_id":    id,
			"fw_fileset_group": firstNonEmpty(req.Group, rootGroup),
			"fw_fileset_name":  req.Name,
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
