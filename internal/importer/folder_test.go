// SPDX-License-Identifier: MPL-2.0

package importer

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/filewave/fwtool/internal/processor"
)

func TestFolderImporter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	admin := newScriptedAdmin()
	var out outputLog
	p := NewFolderImporter(WithClientFactory(admin.factory()), WithOutput(out.output))
	env := processor.Env{
		InputFolderSource: dir,
		InputFolderName:   "Evernote",
		InputFolderGroup:  "AutoPkg Import",
	}

	if err := processor.Run(context.Background(), p, env); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(admin.callsTo("-v")) != 0 {
		t.Error("folder importer checked the admin tool version")
	}
	want := []string{"--importFolder", dir, "--name", "Evernote", "--root", "/Applications", "--filesetgroup", "AutoPkg Import"}
	calls := admin.callsTo("--importFolder")
	if len(calls) != 1 || !slices.Equal(calls[0], want) {
		t.Fatalf("import calls = %v, want [%v]", calls, want)
	}
	if conn := admin.calls[0][:8]; !slices.Equal(conn, []string{"-u", "fwadmin", "-p", "filewave", "-H", "localhost", "-P", "20016"}) {
		t.Errorf("connection args = %v, want defaults", conn)
	}

	if env.String(OutputFolderFilesetID) != "78" {
		t.Errorf("fileset_id = %q, want 78", env.String(OutputFolderFilesetID))
	}
	summary := env[FileWaveSummaryKey].(processor.SummaryResult)
	if !slices.Equal(summary.ReportFields, []string{"fileset_id", "fileset_group", "fileset_name"}) {
		t.Errorf("report fields = %v", summary.ReportFields)
	}
	if summary.Data["fileset_group"] != "AutoPkg Import" {
		t.Errorf("fileset_group = %q", summary.Data["fileset_group"])
	}
	wantMsg := "Created Fileset <Evernote> from folder '" + dir + "' at root '/Applications'"
	if !slices.Contains(out.lines, wantMsg) {
		t.Errorf("output = %v, want %q", out.lines, wantMsg)
	}
}

func TestFolderImporter_RequiredInputs(t *testing.T) {
	t.Parallel()

	p := NewFolderImporter(WithClientFactory(newScriptedAdmin().factory()))
	err := processor.Run(context.Background(), p, processor.Env{InputFolderSource: t.TempDir()})

	var missing *processor.MissingInputError
	if !errors.As(err, &missing) || missing.Input != InputFolderName {
		t.Errorf("Run() error = %v, want missing %s", err, InputFolderName)
	}
}

func TestFolderImporter_MissingSource(t *testing.T) {
	t.Parallel()

	admin := newScriptedAdmin()
	p := NewFolderImporter(WithClientFactory(admin.factory()))
	env := processor.Env{
		InputFolderSource: filepath.Join(t.TempDir(), "missing"),
		InputFolderName:   "Evernote",
	}

	if err := processor.Run(context.Background(), p, env); !errors.Is(err, ErrImportSourceMissing) {
		t.Errorf("Run() error = %v, want ErrImportSourceMissing", err)
	}
	if len(admin.calls) != 0 {
		t.Errorf("admin tool invoked: %v", admin.calls)
	}
}
