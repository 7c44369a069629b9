// SPDX-License-Identifier: MPL-2.0

package processor

import (
	"slices"
	"testing"
)

func TestEnv_Bool(t *testing.T) {
	t.Parallel()

	env := Env{
		"bool":     true,
		"yes":      "YES",
		"one":      "1",
		"true":     " true ",
		"no":       "no",
		"zero":     int64(0),
		"float":    1.0,
		"nil":      nil,
		"fallback": []string{"x"},
	}

	tests := []struct {
		key  string
		want bool
	}{
		{"bool", true},
		{"yes", true},
		{"one", true},
		{"true", true},
		{"no", false},
		{"zero", false},
		{"float", true},
		{"nil", false},
		{"fallback", false},
		{"absent", false},
	}
	for _, tt := range tests {
		if got := env.Bool(tt.key); got != tt.want {
			t.Errorf("Bool(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestEnv_String(t *testing.T) {
	t.Parallel()

	env := Env{"s": "text", "n": int64(20016), "b": false, "nil": nil}
	for key, want := range map[string]string{"s": "text", "n": "20016", "b": "false", "nil": "", "absent": ""} {
		if got := env.String(key); got != want {
			t.Errorf("String(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestEnv_MergeAndClone(t *testing.T) {
	t.Parallel()

	base := Env{"a": "1", "b": "2"}
	clone := base.Clone()
	clone.Merge(Env{"b": "3", "c": "4"})
	clone.Delete("a")

	if base.String("b") != "2" || base.String("a") != "1" {
		t.Errorf("Clone shares storage with original: %v", base)
	}
	if clone.String("b") != "3" || clone.String("c") != "4" {
		t.Errorf("Merge() = %v", clone)
	}
	if _, ok := clone.Lookup("a"); ok {
		t.Error("Delete() left key behind")
	}
}

func TestEnv_Summaries(t *testing.T) {
	t.Parallel()

	env := Env{}
	env.SetSummary("fwtool_summary_result", SummaryResult{SummaryText: "old"})
	env.SetSummary("fwtool_summary_result", SummaryResult{
		SummaryText:  "new",
		ReportFields: []string{"b", "a"},
		Data:         map[string]string{"a": "1", "b": "2"},
	})
	env.Set("not_a_summary_result", "text")

	got, keys := env.Summaries()
	if !slices.Equal(keys, []string{"fwtool_summary_result"}) {
		t.Fatalf("Summaries() keys = %v", keys)
	}
	s := got["fwtool_summary_result"]
	if s.SummaryText != "new" {
		t.Errorf("summary not replaced: %q", s.SummaryText)
	}
	rows := s.Rows()
	if len(rows) != 2 || rows[0] != (SummaryRow{Field: "b", Value: "2"}) || rows[1] != (SummaryRow{Field: "a", Value: "1"}) {
		t.Errorf("Rows() = %v, want declared field order", rows)
	}
}
