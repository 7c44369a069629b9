// SPDX-License-Identifier: MPL-2.0

package fwadmin

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Version
		wantErr bool
	}{
		{in: "10.0.2", want: Version{Major: 10, Minor: 0, Patch: 2, Raw: "10.0.2"}},
		{in: " 11.2.0\n", want: Version{Major: 11, Minor: 2, Patch: 0, Raw: "11.2.0"}},
		{in: "9.1", wantErr: true},
		{in: "10.x.1", wantErr: true},
		{in: "10.0.0.1", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseVersion(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidVersion) {
					t.Fatalf("ParseVersion(%q) error = %v, want ErrInvalidVersion", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseVersion(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCheckMinimumVersion(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		in  string
		old bool
	}{
		{"9.9.9", true},
		{"10.0.0", false},
		{"10.1.3", false},
		{"12.0.0", false},
	} {
		v, err := ParseVersion(tt.in)
		if err != nil {
			t.Fatalf("ParseVersion(%q) error = %v", tt.in, err)
		}
		err = CheckMinimumVersion(v)
		if got := errors.Is(err, ErrVersionTooOld); got != tt.old {
			t.Errorf("CheckMinimumVersion(%s) = %v, want too old = %v", tt.in, err, tt.old)
		}
	}

	v, _ := ParseVersion("9.2.1")
	err := CheckMinimumVersion(v)
	if want := "FileWave Version 10.0 must be installed - you have version 9.2.1"; err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestClient_Version(t *testing.T) {
	t.Parallel()

	fake := newFakeAdmin("10.2.1\n", 0)
	v, err := fake.client(t).Version(context.Background())
	if err != nil {
		t.Fatalf("Version() error = %v", err)
	}
	if v.Major != 10 || v.Minor != 2 || v.Patch != 1 {
		t.Errorf("Version() = %+v", v)
	}
	if got := fake.lastArgs(t); !slices.Equal(got, []string{"-v"}) {
		t.Errorf("args = %v, want [-v] without connection flags", got)
	}
}
