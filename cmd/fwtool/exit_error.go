// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/filewave/fwtool/internal/fwadmin"
)

// ExitError carries the process exit status out of a RunE handler. Failed
// admin tool invocations keep the tool's own status.
type ExitError struct {
	Code fwadmin.ExitCode
	Err  error
}

// Error returns the wrapped error's message, or the bare status.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exited with status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}
