// SPDX-License-Identifier: MPL-2.0

package importer

import (
	"context"

	"github.com/filewave/fwtool/internal/processor"
)

// FWTool validates that the FileWave admin tool is installed and can reach the server.
type FWTool struct {
	deps
}

// NewFWTool creates the validation processor.
func NewFWTool(opts ...Option) *FWTool {
	return &FWTool{deps: newDeps(opts)}
}

// Name implements processor.Processor.
func (p *FWTool) Name() string { return FWToolName }

// Description implements processor.Processor.
func (p *FWTool) Description() string {
	return "Validates that the FileWave Admin Command Line tools are available on this machine."
}

// InputVariables implements processor.Processor.
func (p *FWTool) InputVariables() map[string]processor.InputVariable {
	return CommonInputs()
}

// OutputVariables implements processor.Processor.
func (p *FWTool) OutputVariables() map[string]processor.OutputVariable {
	return map[string]processor.OutputVariable{
		FWToolSummaryKey: {Description: "The results of the installation/validation check."},
	}
}

// Main implements processor.Processor.
func (p *FWTool) Main(ctx context.Context, env processor.Env) error {
	_, err := p.validate(ctx, env)
	return err
}

// validate runs the toolchain check and publishes its summary.
func (p *FWTool) validate(ctx context.Context, env processor.Env) (*Toolchain, error) {
	tc, err := NewToolchain(ctx, env, p.clients, p.output)
	if err != nil {
		return nil, err
	}
	p.output("Path to Admin Tool: %s", tc.Client.Executable())
	if tc.ListErr != nil {
		p.output("%v", tc.ListErr)
	}
	env.SetSummary(FWToolSummaryKey, tc.Summary())
	return tc, nil
}
