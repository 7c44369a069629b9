// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/filewave/fwtool/internal/config"
	"github.com/filewave/fwtool/internal/issue"
)

func TestConfigShow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	if err := env.execute("--config", "/etc/fwtool.cue", "config", "show"); err != nil {
		t.Fatalf("config show error: %v", err)
	}
	out := env.stdout.String()
	for _, want := range []string{"/etc/fwtool.cue", "fw.example.com", "autopkg", redactedPassword} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "secret") {
		t.Error("config show leaks the admin password")
	}
}

func TestConfigDump(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	if err := env.execute("config", "dump"); err != nil {
		t.Fatalf("config dump error: %v", err)
	}
	if !strings.Contains(env.stdout.String(), `host: "fw.example.com"`) {
		t.Errorf("config dump output:\n%s", env.stdout.String())
	}
}

func TestConfigLoadFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	loadErr := issue.NewErrorContext().
		WithOperation("load configuration").
		WithIssue(issue.ConfigLoadFailedID).
		Wrap(errors.New("config.cue: server.port: invalid value")).
		BuildError()
	env.app.Config = staticConfig{err: loadErr}

	err := env.execute("validate")
	if !errors.Is(err, loadErr) {
		t.Fatalf("error = %v, want the config load error", err)
	}
	if len(env.admin.calls) != 0 {
		t.Errorf("admin tool ran despite the config error: %v", env.admin.calls)
	}
}

func TestConfigInit(t *testing.T) {
	// Not parallel: overrides the package-level config directory.
	dir := t.TempDir()
	config.SetConfigDirOverride(dir)
	t.Cleanup(config.Reset)

	env := newTestEnv(t)
	if err := env.execute("config", "init"); err != nil {
		t.Fatalf("config init error: %v", err)
	}
	p := filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt)
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if string(data) != config.GenerateCUE(config.DefaultConfig()) {
		t.Errorf("unexpected config content:\n%s", data)
	}

	env.stdout.Reset()
	if err := env.execute("config", "init"); err != nil {
		t.Fatalf("second config init error: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "already exists") {
		t.Errorf("second init output = %q", env.stdout.String())
	}
}
