// SPDX-License-Identifier: MPL-2.0

package cmd

import "testing"

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got := getVersionString(); got != "dev (built from source)" {
			t.Errorf("getVersionString() = %q", got)
		}
	})
}

func TestNewRootCommand_Tree(t *testing.T) {
	t.Parallel()

	root := NewRootCommand(NewApp(Dependencies{Config: staticConfig{}}))

	paths := [][]string{
		{"run"}, {"validate"}, {"import"}, {"import-folder"}, {"processors"},
		{"clients", "list"},
		{"filesets", "list"}, {"filesets", "create"}, {"filesets", "delete"}, {"filesets", "set-property"},
		{"associations", "list"}, {"associations", "create"}, {"associations", "delete"},
		{"image", "import"}, {"model", "update"},
		{"admin", "version"}, {"admin", "help"}, {"admin", "path"},
		{"config", "show"}, {"config", "init"}, {"config", "dump"},
	}
	for _, p := range paths {
		cmd, rest, err := root.Find(p)
		if err != nil || len(rest) != 0 || cmd.Name() != p[len(p)-1] {
			t.Errorf("command %v not found (got %v, rest %v, err %v)", p, cmd.Name(), rest, err)
		}
	}

	for _, name := range []string{"verbose", "config"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing global flag --%s", name)
		}
	}
}
