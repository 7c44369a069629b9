// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestCatalog(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != int(RecipeParseErrorID) {
		t.Fatalf("Values() returned %d entries, want %d", len(values), RecipeParseErrorID)
	}
	for i, is := range values {
		if want := ID(i + 1); is.ID() != want {
			t.Errorf("Values()[%d].ID() = %d, want %d", i, is.ID(), want)
		}
		if Get(is.ID()) != is {
			t.Errorf("Get(%d) does not return the catalog entry", is.ID())
		}
		if strings.TrimSpace(string(is.MarkdownMsg())) == "" {
			t.Errorf("issue %d has no guidance", is.ID())
		}
	}
	if Get(0) != nil {
		t.Error("Get(0) should return nil")
	}
}

func TestIssue_DocLinksClone(t *testing.T) {
	t.Parallel()

	is := &Issue{id: 99, mdMsg: "# x", docLinks: []HTTPLink{"https://kb.filewave.com"}}
	links := is.DocLinks()
	links[0] = "modified"
	if is.DocLinks()[0] != "https://kb.filewave.com" {
		t.Error("DocLinks() should return a clone")
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	out, err := Get(AdminVersionTooOldID).Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "FileWave Admin is too old!") {
		t.Errorf("Render() = %q, want heading text", out)
	}
	if !strings.Contains(out, "FW_RELAX_VERSION=true") {
		t.Errorf("Render() = %q, want code block", out)
	}
}
