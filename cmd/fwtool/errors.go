// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"io/fs"
	"os/exec"
	"strings"

	"github.com/filewave/fwtool/internal/fwadmin"
	"github.com/filewave/fwtool/internal/importer"
	"github.com/filewave/fwtool/internal/issue"
	"github.com/filewave/fwtool/internal/processor"
)

// loginErrorCode is the admin tool's exit status for a rejected login.
const loginErrorCode fwadmin.ExitCode = 108

// classifyError maps a command failure to an issue catalog entry. It returns
// zero when no catalog entry applies.
func classifyError(err error) issue.ID {
	var (
		cmdErr     *fwadmin.CommandError
		missingErr *processor.MissingInputError
		ae         *issue.ActionableError
	)

	switch {
	case errors.Is(err, importer.ErrImportSourceMissing):
		return issue.ImportSourceMissingID
	case errors.Is(err, importer.ErrUnsupportedSource):
		return issue.UnsupportedSourceID
	case errors.Is(err, fwadmin.ErrUnsupportedPlatform):
		return issue.UnsupportedPlatformID
	case errors.Is(err, fwadmin.ErrVersionTooOld):
		return issue.AdminVersionTooOldID
	case errors.As(err, &missingErr):
		return issue.MissingInputID
	case errors.As(err, &cmdErr):
		if cmdErr.ExitCode == loginErrorCode {
			return issue.LoginFailedID
		}
		return issue.AdminCommandFailedID
	case errors.As(err, &ae) && ae.Issue != 0:
		return ae.Issue
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return issue.AdminToolNotFoundID
	}
	return 0
}

// exitCode returns the process exit status for err: the admin tool's own
// status when it exited with one, 1 otherwise. A tool killed by a signal
// reports -1 and maps to 1.
func exitCode(err error) fwadmin.ExitCode {
	var cmdErr *fwadmin.CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode > 0 {
		return cmdErr.ExitCode
	}
	return 1
}

// fail renders the guidance for err on stderr and returns an ExitError for it.
// The error message itself is printed by fang.
func (a *App) fail(err error) error {
	if err == nil {
		return nil
	}

	var b strings.Builder
	var ae *issue.ActionableError
	if errors.As(err, &ae) && len(ae.Suggestions) > 0 {
		b.WriteString("\n")
		for _, s := range ae.Suggestions {
			b.WriteString(WarningStyle.Render("  • "+s) + "\n")
		}
	}

	if id := classifyError(err); id != 0 {
		if entry := issue.Get(id); entry != nil {
			rendered, renderErr := entry.Render(a.markdownStyle)
			if renderErr != nil {
				a.logger.Warn("failed to render issue guidance", "issue", id, "error", renderErr)
			} else {
				b.WriteString(rendered)
			}
		}
	}

	if a.verbose && ae != nil {
		b.WriteString(SubtitleStyle.Render(ae.Format(true)) + "\n")
	}

	if b.Len() > 0 {
		_, _ = a.stderr.Write([]byte(b.String()))
	}
	return &ExitError{Code: exitCode(err), Err: err}
}
