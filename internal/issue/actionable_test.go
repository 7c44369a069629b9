// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "list filesets"},
			want: "failed to list filesets",
		},
		{
			name: "operation with resource",
			err:  &ActionableError{Operation: "import fileset", Resource: "/tmp/Firefox.pkg"},
			want: "failed to import fileset: /tmp/Firefox.pkg",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "import fileset",
				Resource:  "/tmp/Firefox.pkg",
				Cause:     errors.New("exit status 109"),
			},
			want: "failed to import fileset: /tmp/Firefox.pkg: exit status 109",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	root := errors.New("connection refused")
	err := NewErrorContext().
		WithOperation("list clients").
		WithResource("fw.example.com:20016").
		WithSuggestion("Check FW_SERVER_HOST").
		WithSuggestion("Check FW_SERVER_PORT").
		Wrap(fmt.Errorf("run admin tool: %w", root)).
		Build()

	short := err.Format(false)
	if !strings.Contains(short, "  • Check FW_SERVER_HOST") || !strings.Contains(short, "  • Check FW_SERVER_PORT") {
		t.Errorf("Format(false) = %q, want suggestions", short)
	}
	if strings.Contains(short, "Error chain") {
		t.Error("Format(false) includes the error chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "1. run admin tool: connection refused") || !strings.Contains(verbose, "2. connection refused") {
		t.Errorf("Format(true) = %q, want numbered error chain", verbose)
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without operation should return nil")
	}

	cause := errors.New("boom")
	err := NewErrorContext().WithOperation("validate").WithIssue(LoginFailedID).Wrap(cause).BuildError()
	if !errors.Is(err, cause) {
		t.Error("BuildError() does not unwrap to the cause")
	}
	var ae *ActionableError
	if !errors.As(err, &ae) || ae.Issue != LoginFailedID {
		t.Errorf("BuildError() = %#v, want issue %d", err, LoginFailedID)
	}
}

func TestWrapWithContext(t *testing.T) {
	t.Parallel()

	if WrapWithContext(nil, "op", "res") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}
	got := WrapWithContext(errors.New("denied"), "delete fileset", "42")
	if got.Error() != "failed to delete fileset: 42: denied" {
		t.Errorf("Error() = %q", got.Error())
	}
}
