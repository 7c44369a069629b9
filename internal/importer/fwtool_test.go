// SPDX-License-Identifier: MPL-2.0

package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/filewave/fwtool/internal/fwadmin"
	"github.com/filewave/fwtool/internal/processor"
)

func TestFWTool_Summary(t *testing.T) {
	t.Parallel()

	admin := newScriptedAdmin()
	var out outputLog
	p := NewFWTool(WithClientFactory(admin.factory()), WithOutput(out.output))
	env := connectionEnv()

	if err := processor.Run(context.Background(), p, env); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	summary, ok := env[FWToolSummaryKey].(processor.SummaryResult)
	if !ok {
		t.Fatalf("%s = %#v", FWToolSummaryKey, env[FWToolSummaryKey])
	}
	want := map[string]string{
		"fw_admin_console_version": "10.2.0",
		"fw_admin_user":            "autopkg",
		"fw_server_host":           "fw.example.com",
		"fw_server_port":           fwadmin.DefaultPort,
		"fw_can_list_filesets":     "Yes",
		"fw_message":               ValidationOK,
	}
	for k, v := range want {
		if summary.Data[k] != v {
			t.Errorf("summary[%s] = %q, want %q", k, summary.Data[k], v)
		}
	}
	if len(summary.ReportFields) != len(want) {
		t.Errorf("report fields = %v", summary.ReportFields)
	}
	if !out.contains("Path to Admin Tool: /opt/FileWave/FileWaveAdmin") {
		t.Errorf("output = %v, want admin tool path", out.lines)
	}
	if out.contains("super-user") {
		t.Error("super-user warning for a non-default account")
	}
}

func TestFWTool_SuperUserWarning(t *testing.T) {
	t.Parallel()

	admin := newScriptedAdmin()
	var out outputLog
	p := NewFWTool(WithClientFactory(admin.factory()), WithOutput(out.output))

	if err := processor.Run(context.Background(), p, processor.Env{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !out.contains("WARNING: You are using the FileWave super-user account (fwadmin)") {
		t.Errorf("output = %v, want super-user warning", out.lines)
	}
}

func TestFWTool_VersionTooOld(t *testing.T) {
	t.Parallel()

	admin := newScriptedAdmin().on("-v", "9.4.1", 0)
	p := NewFWTool(WithClientFactory(admin.factory()))

	err := processor.Run(context.Background(), p, connectionEnv())
	if !errors.Is(err, fwadmin.ErrVersionTooOld) {
		t.Fatalf("Run() error = %v, want ErrVersionTooOld", err)
	}
	if len(admin.callsTo("--listFilesets")) != 0 {
		t.Error("filesets probed after a failed version check")
	}
}

func TestFWTool_RelaxedVersion(t *testing.T) {
	t.Parallel()

	admin := newScriptedAdmin().on("-v", "9.4.1", 0)
	var out outputLog
	p := NewFWTool(WithClientFactory(admin.factory()), WithOutput(out.output))
	env := connectionEnv()
	env.Set(InputRelaxVersion, "yes")

	if err := processor.Run(context.Background(), p, env); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !out.contains("FileWave Version 10.0 must be installed - you have version 9.4.1") {
		t.Errorf("output = %v, want version warning", out.lines)
	}
}

func TestFWTool_ListingFailureMapsExitStatus(t *testing.T) {
	t.Parallel()

	admin := newScriptedAdmin().on("--listFilesets", "login failed", 108)
	p := NewFWTool(WithClientFactory(admin.factory()))
	env := connectionEnv()

	if err := processor.Run(context.Background(), p, env); err != nil {
		t.Fatalf("Run() error = %v, want listing failure recorded in summary", err)
	}
	summary := env[FWToolSummaryKey].(processor.SummaryResult)
	if summary.Data["fw_can_list_filesets"] != "No" {
		t.Errorf("fw_can_list_filesets = %q", summary.Data["fw_can_list_filesets"])
	}
	if summary.Data["fw_message"] != "Login Error or Version Mismatch" {
		t.Errorf("fw_message = %q", summary.Data["fw_message"])
	}
}

func TestFWTool_ClientFactoryError(t *testing.T) {
	t.Parallel()

	factory := DefaultClientFactory(fwadmin.WithPlatform("plan9"))
	err := processor.Run(context.Background(), NewFWTool(WithClientFactory(factory)), processor.Env{})
	if !errors.Is(err, fwadmin.ErrUnsupportedPlatform) {
		t.Errorf("Run() error = %v, want ErrUnsupportedPlatform", err)
	}
}
