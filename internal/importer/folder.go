// SPDX-License-Identifier: MPL-2.0

package importer

import (
	"context"
	"fmt"
	"os"

	"github.com/filewave/fwtool/internal/fwadmin"
	"github.com/filewave/fwtool/internal/processor"
)

// FolderImporter input and output names.
const (
	InputFolderSource = "import_source"
	InputFolderName   = "fileset_name"
	InputFolderGroup  = "fileset_group"
	InputFolderRoot   = "destination_root"

	OutputFolderFilesetID = "fileset_id"
)

// FolderImporter imports a directory as a fileset without validating the
// admin tool version first.
type FolderImporter struct {
	deps
}

// NewFolderImporter creates the folder import processor.
func NewFolderImporter(opts ...Option) *FolderImporter {
	return &FolderImporter{deps: newDeps(opts)}
}

// Name implements processor.Processor.
func (p *FolderImporter) Name() string { return FolderImporterName }

// Description implements processor.Processor.
func (p *FolderImporter) Description() string {
	return "Imports a directory as a fileset into FileWave."
}

// InputVariables implements processor.Processor.
func (p *FolderImporter) InputVariables() map[string]processor.InputVariable {
	inputs := CommonInputs()
	delete(inputs, InputRelaxVersion)
	inputs[InputFolderSource] = processor.InputVariable{
		Required:    true,
		Description: "The folder that will be imported into the FileWave fileset.",
	}
	inputs[InputFolderName] = processor.InputVariable{
		Required:    true,
		Description: "The name of the fileset to be created (will be made unique if it isn't already).",
	}
	inputs[InputFolderGroup] = processor.InputVariable{
		Description: "The fileset group to import into. Created if it does not exist; may be left blank.",
	}
	inputs[InputFolderRoot] = processor.InputVariable{
		Default:     DefaultDestinationRoot,
		Description: "The location at which to place all the imported data. Defaults to " + DefaultDestinationRoot,
	}
	return inputs
}

// OutputVariables implements processor.Processor.
func (p *FolderImporter) OutputVariables() map[string]processor.OutputVariable {
	return map[string]processor.OutputVariable{
		OutputFolderFilesetID: {Description: "The resulting FileWave fileset ID for the newly created fileset."},
		FileWaveSummaryKey:    {Description: "Summary of what was imported into FileWave."},
	}
}

// Main implements processor.Processor.
func (p *FolderImporter) Main(ctx context.Context, env processor.Env) error {
	req := fwadmin.ImportRequest{
		Path:  env.String(InputFolderSource),
		Name:  env.String(InputFolderName),
		Root:  env.String(InputFolderRoot),
		Group: env.String(InputFolderGroup),
	}
	if _, err := os.Stat(req.Path); err != nil {
		return fmt.Errorf("%w: %s", ErrImportSourceMissing, req.Path)
	}

	client, err := p.clients(ConnectionOptions(env))
	if err != nil {
		return fmt.Errorf("create admin client: %w", err)
	}

	id, err := client.ImportFolder(ctx, req)
	if err != nil {
		return &ImportError{Source: req.Path, Fileset: req.Name, Err: err}
	}

	env.Set(OutputFolderFilesetID, id)
	env.SetSummary(FileWaveSummaryKey, processor.SummaryResult{
		SummaryText:  "The following fileset was imported:",
		ReportFields: []string{"fileset_id", "fileset_group", "fileset_name"},
		Data: map[string]string{
			"fileset_id":    id,
			"fileset_group": req.Group,
			"fileset_name":  req.Name,
		},
	})
	p.output("Created Fileset <%s> from folder '%s' at root '%s'", req.Name, req.Path, req.Root)
	return nil
}
