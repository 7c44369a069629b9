// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/filewave/fwtool/internal/processor"
)

// runResult is the --json rendering of a processor run.
type runResult struct {
	Processor string                             `json:"processor"`
	Outputs   map[string]any                     `json:"outputs"`
	Summaries map[string]processor.SummaryResult `json:"summaries"`
}

// writeResult prints the declared outputs and summaries left in env by p.
// Inputs are never echoed, so credentials stay out of the output.
func (a *App) writeResult(p processor.Processor, env processor.Env, asJSON bool) error {
	summaries, keys := env.Summaries()

	if asJSON {
		res := runResult{
			Processor: p.Name(),
			Outputs:   make(map[string]any),
			Summaries: summaries,
		}
		for name := range p.OutputVariables() {
			if strings.HasSuffix(name, processor.SummarySuffix) {
				continue
			}
			if v, ok := env.Lookup(name); ok {
				res.Outputs[name] = v
			}
		}
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	if len(keys) == 0 {
		return nil
	}
	return a.renderMarkdown(summaryMarkdown(summaries, keys))
}

// renderMarkdown renders md with glamour in the App's style and prints it.
func (a *App) renderMarkdown(md string) error {
	out, err := glamour.Render(md, a.markdownStyle)
	if err != nil {
		return fmt.Errorf("render output: %w", err)
	}
	_, err = fmt.Fprint(a.stdout, out)
	return err
}

// summaryMarkdown renders each summary as a heading, its text and a table of
// its report fields.
func summaryMarkdown(summaries map[string]processor.SummaryResult, keys []string) string {
	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteString("\n")
		}
		s := summaries[key]
		fmt.Fprintf(&b, "## %s\n\n", strings.TrimSuffix(key, processor.SummarySuffix))
		if s.SummaryText != "" {
			fmt.Fprintf(&b, "%s\n\n", s.SummaryText)
		}
		rows := s.Rows()
		if len(rows) == 0 {
			continue
		}
		b.WriteString("| Field | Value |\n| --- | --- |\n")
		for _, r := range rows {
			fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(r.Field), escapeCell(r.Value))
		}
	}
	return b.String()
}

// processorMarkdown describes p's inputs and outputs.
func processorMarkdown(p processor.Processor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n## Inputs\n\n", p.Name(), p.Description())
	b.WriteString("| Name | Required | Default | Description |\n| --- | --- | --- | --- |\n")
	inputs := p.InputVariables()
	for _, name := range slices.Sorted(maps.Keys(inputs)) {
		in := inputs[name]
		def := ""
		if in.Default != nil {
			def = fmt.Sprint(in.Default)
		}
		required := "no"
		if in.Required {
			required = "yes"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", name, required, escapeCell(def), escapeCell(in.Description))
	}

	b.WriteString("\n## Outputs\n\n| Name | Description |\n| --- | --- |\n")
	outputs := p.OutputVariables()
	for _, name := range slices.Sorted(maps.Keys(outputs)) {
		fmt.Fprintf(&b, "| %s | %s |\n", name, escapeCell(outputs[name].Description))
	}
	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
