// SPDX-License-Identifier: MPL-2.0

package fwadmin

import "strconv"

type (
	// ExitCode is a process exit status returned by the admin tool.
	ExitCode int

	// ExitStatus describes one of the admin tool's documented exit codes.
	ExitStatus struct {
		Code        ExitCode
		Name        string
		Description string
	}
)

var exitStatuses = map[ExitCode]ExitStatus{
	0:   {0, "kExitOK", "No Error"},
	100: {100, "kExitUnknownError", "Unknown Error"},
	101: {101, "kExitFilesetNotExists", "The given fileset does not exist"},
	102: {102, "kExitClientNotExists", "The given client does not exist"},
	103: {103, "kExitGroupNotExists", "The given group does not exist"},
	104: {104, "kExitTargetIsNotGroup", "The given target does not exist"},
	105: {105, "kExitDBError", "Database internal error"},
	106: {106, "kExitFilesetUploadError", "Error while uploading fileset"},
	107: {107, "kExitModelUpdateError", "Error while updating the model"},
	108: {108, "kExitLoginError", "Login Error or Version Mismatch"},
	109: {109, "kExitImportFilesetError", "Error while importing a fileset"},
	110: {110, "kExitUnknownImportType", "Package type not supported for import"},
	111: {111, "kExitParseError", "Command line parse failed"},
	112: {112, "kExitAssociationToImagingFilesetError", "Can't create association with an imaging fileset"},
	113: {113, "kExitGroupCreationError", "Can't create a new fileset group"},
	114: {114, "kExitFilesetMergeError", "Cannot merge files in the fileset"},
}

// String returns the decimal representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }


// DescribeExitStatus returns the documented status for code. The second return
// value is false for codes the admin tool does not document; the status then
// carries a generic description.
func DescribeExitStatus(code ExitCode) (ExitStatus, bool) {
	if st, ok := exitStatuses[code]; ok {
		return st, true
	}
	return ExitStatus{
		Code:        code,
		Name:        "kExitUndocumented",
		Description: "Admin tool exited with status " + code.String(),
	}, false
}
