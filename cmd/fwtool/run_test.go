// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/filewave/fwtool/internal/importer"
	"github.com/filewave/fwtool/internal/processor"
	"github.com/filewave/fwtool/internal/recipe"
)

func TestValidateCommand(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	if err := env.execute("validate", "--json"); err != nil {
		t.Fatalf("validate error: %v\nstderr: %s", err, env.stderr.String())
	}

	res := env.decodeResult(t)
	if res.Processor != importer.FWToolName {
		t.Errorf("Processor = %q, want %q", res.Processor, importer.FWToolName)
	}
	summary, ok := res.Summaries[importer.FWToolSummaryKey]
	if !ok {
		t.Fatalf("missing %s in %v", importer.FWToolSummaryKey, res.Summaries)
	}
	if got := summary.Data["fw_can_list_filesets"]; got != "Yes" {
		t.Errorf("fw_can_list_filesets = %q, want Yes", got)
	}
	if got := summary.Data["fw_server_host"]; got != "fw.example.com" {
		t.Errorf("fw_server_host = %q, want the configured host", got)
	}
	if strings.Contains(env.stdout.String(), "secret") {
		t.Error("output leaks the admin password")
	}
}

func TestValidateCommand_RendersSummary(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	if err := env.execute("validate"); err != nil {
		t.Fatalf("validate error: %v", err)
	}
	out := env.stdout.String()
	for _, want := range []string{"fw_admin_console_version", "10.2.0", importer.ValidationOK} {
		if !containsText(out, want) {
			t.Errorf("rendered summary missing %q:\n%s", want, out)
		}
	}
}

func TestImportCommand_Package(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	pkg := touch(t, t.TempDir(), "Firefox.pkg")

	err := env.execute("import", pkg, "--name", "Firefox", "--group", "Browsers", "--json")
	if err != nil {
		t.Fatalf("import error: %v\nstderr: %s", err, env.stderr.String())
	}

	res := env.decodeResult(t)
	if got := res.Outputs[importer.OutputFilesetID]; got != "77" {
		t.Errorf("%s = %v, want 77", importer.OutputFilesetID, got)
	}
	if _, ok := res.Summaries[importer.FileWaveSummaryKey]; !ok {
		t.Errorf("missing %s", importer.FileWaveSummaryKey)
	}

	calls := env.admin.callsTo("--importPackage")
	if len(calls) != 1 {
		t.Fatalf("importPackage calls = %v", calls)
	}
	want := []string{"--importPackage", pkg, "--name", "Firefox", "--root", importer.DefaultDestinationRoot, "--filesetgroup", "Browsers"}
	if !slices.Equal(calls[0], want) {
		t.Errorf("importPackage args = %v, want %v", calls[0], want)
	}
}

func TestImportCommand_SkipsCurrentVersion(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.admin.on("--listFilesets", filesetsJSON, 0)
	pkg := touch(t, t.TempDir(), "Firefox.pkg")

	err := env.execute("import", pkg, "--name", "Firefox", "--bundle-id", "org.mozilla.firefox", "--app-version", "127.0", "--json")
	if err != nil {
		t.Fatalf("import error: %v", err)
	}

	res := env.decodeResult(t)
	if got := res.Outputs[importer.OutputImportSkipped]; got != true {
		t.Errorf("%s = %v, want true", importer.OutputImportSkipped, got)
	}
	if got := res.Outputs[importer.OutputFilesetID]; got != "42" {
		t.Errorf("%s = %v, want the existing fileset 42", importer.OutputFilesetID, got)
	}
	if calls := env.admin.callsTo("--importPackage"); len(calls) != 0 {
		t.Errorf("unexpected import: %v", calls)
	}
}

func TestImportCommand_InputPrecedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pkg := touch(t, dir, "Firefox.pkg")
	recipePath := filepath.Join(dir, "Firefox.toml")
	content := "fw_import_source = \"" + filepath.ToSlash(pkg) + "\"\n" +
		"fw_fileset_name = \"from-recipe\"\n" +
		"fw_fileset_group = \"recipe-group\"\n" +
		"fw_destination_root = \"/Recipe\"\n"
	if err := os.WriteFile(recipePath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	env := newTestEnv(t)
	err := env.execute("import", pkg,
		"--recipe", recipePath,
		"--name", "from-flag",
		"--group", "flag-group",
		"-k", "fw_fileset_name=from-override",
	)
	if err != nil {
		t.Fatalf("import error: %v\nstderr: %s", err, env.stderr.String())
	}

	calls := env.admin.callsTo("--importPackage")
	if len(calls) != 1 {
		t.Fatalf("importPackage calls = %v", calls)
	}
	want := []string{"--importPackage", pkg, "--name", "from-override", "--root", "/Recipe", "--filesetgroup", "flag-group"}
	if !slices.Equal(calls[0], want) {
		t.Errorf("importPackage args = %v, want %v", calls[0], want)
	}
}

func TestImportFolderCommand(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	dir := t.TempDir()

	if err := env.execute("import-folder", dir, "--name", "Site Config", "--root", "/Library/Site", "--json"); err != nil {
		t.Fatalf("import-folder error: %v", err)
	}

	res := env.decodeResult(t)
	if got := res.Outputs[importer.OutputFolderFilesetID]; got != "78" {
		t.Errorf("%s = %v, want 78", importer.OutputFolderFilesetID, got)
	}
	if calls := env.admin.callsTo("-v"); len(calls) != 0 {
		t.Errorf("folder import checked the version: %v", calls)
	}
	want := []string{"--importFolder", dir, "--name", "Site Config", "--root", "/Library/Site"}
	if calls := env.admin.callsTo("--importFolder"); len(calls) != 1 || !slices.Equal(calls[0], want) {
		t.Errorf("importFolder calls = %v, want [%v]", calls, want)
	}
}

func TestRunCommand_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{
			name:    "unknown processor",
			args:    []string{"run", "NoSuchProcessor"},
			wantErr: processor.ErrProcessorNotRegistered,
		},
		{
			name:    "malformed override",
			args:    []string{"run", importer.FWToolName, "-k", "FW_SERVER_HOST"},
			wantErr: recipe.ErrMalformedOverride,
		},
		{
			name:    "missing source",
			args:    []string{"run", importer.FileWaveImporterName, "-k", "fw_import_source=/nonexistent/Firefox.pkg", "-k", "fw_fileset_name=Firefox"},
			wantErr: importer.ErrImportSourceMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)
			err := env.execute(tt.args...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			var exitErr *ExitError
			if !errors.As(err, &exitErr) || exitErr.Code != 1 {
				t.Errorf("error = %#v, want ExitError with code 1", err)
			}
		})
	}
}

func TestRunCommand_MissingRequiredInput(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	err := env.execute("run", importer.FileWaveImporterName, "-k", importer.InputFilesetName+"=Firefox")

	var missing *processor.MissingInputError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *processor.MissingInputError", err)
	}
	if missing.Input != importer.InputImportSource {
		t.Errorf("Input = %q, want %q", missing.Input, importer.InputImportSource)
	}
	if !strings.Contains(env.stderr.String(), "Missing processor input") {
		t.Errorf("stderr lacks issue guidance:\n%s", env.stderr.String())
	}
}

func TestProcessorsCommand(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	if err := env.execute("processors"); err != nil {
		t.Fatalf("processors error: %v", err)
	}
	for _, name := range []string{importer.FWToolName, importer.FileWaveImporterName, importer.FolderImporterName} {
		if !strings.Contains(env.stdout.String(), name) {
			t.Errorf("processor list missing %s:\n%s", name, env.stdout.String())
		}
	}

	env.stdout.Reset()
	if err := env.execute("processors", importer.FolderImporterName); err != nil {
		t.Fatalf("processors %s error: %v", importer.FolderImporterName, err)
	}
	for _, want := range []string{importer.FolderImporterName, "Inputs", "Outputs"} {
		if !strings.Contains(env.stdout.String(), want) {
			t.Errorf("description missing %q:\n%s", want, env.stdout.String())
		}
	}
}
