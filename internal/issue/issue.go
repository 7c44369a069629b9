// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

// Catalog entries.
const (
	AdminToolNotFoundID ID = iota + 1
	UnsupportedPlatformID
	AdminVersionTooOldID
	LoginFailedID
	AdminCommandFailedID
	ImportSourceMissingID
	UnsupportedSourceID
	MissingInputID
	ConfigLoadFailedID
	RecipeParseErrorID
)

type (
	// ID identifies a catalog entry.
	ID int

	// MarkdownMsg is Markdown guidance rendered for the user.
	MarkdownMsg string

	// HTTPLink is a documentation URL.
	HTTPLink string

	// Issue is a catalog entry with Markdown guidance.
	Issue struct {
		id       ID
		mdMsg    MarkdownMsg
		docLinks []HTTPLink
	}
)

var (
	render = glamour.Render

	adminToolNotFoundIssue = &Issue{
		id: AdminToolNotFoundID,
		mdMsg: `
# FileWave Admin not found!

The FileWave Admin application could not be started from its expected location.

## Things you can try:
- Install FileWave Admin, version 10.0 or later
- Point fwtool at a custom install location:
~~~
$ export FILEWAVE_ADMIN_PATH=/path/to/FileWave
$ fwtool admin path
~~~`,
	}

	unsupportedPlatformIssue = &Issue{
		id: UnsupportedPlatformID,
		mdMsg: `
# Platform not supported!

FileWave Admin is only available on macOS, Windows and Linux.`,
	}

	adminVersionTooOldIssue = &Issue{
		id: AdminVersionTooOldID,
		mdMsg: `
# FileWave Admin is too old!

Importing filesets requires FileWave Admin 10.0 or later.

## Things you can try:
- Upgrade FileWave Admin
- Continue anyway with a relaxed version check:
~~~
$ fwtool validate -k FW_RELAX_VERSION=true
~~~`,
	}

	loginFailedIssue = &Issue{
		id: LoginFailedID,
		mdMsg: `
# Could not log in to the FileWave server!

The admin tool rejected the credentials or its version does not match the server.

## Things you can try:
- Check FW_ADMIN_USER and FW_ADMIN_PASSWORD
- Check FW_SERVER_HOST and FW_SERVER_PORT
- Make sure FileWave Admin and the server run the same version`,
	}

	adminCommandFailedIssue = &Issue{
		id: AdminCommandFailedID,
		mdMsg: `
# The FileWave admin tool reported an error!

## Things you can try:
- Re-run with verbose output to see the exact command line:
~~~
$ fwtool --verbose ...
~~~
- Run the admin tool's own help to check the flags it supports:
~~~
$ fwtool admin help
~~~`,
	}

	importSourceMissingIssue = &Issue{
		id: ImportSourceMissingID,
		mdMsg: `
# Import source not found!

The package, disk image or folder to import does not exist.

## Things you can try:
- Check the path passed as fw_import_source or import_source
- Make sure the download step of your recipe ran first`,
	}

	unsupportedSourceIssue = &Issue{
		id: UnsupportedSourceID,
		mdMsg: `
# Unsupported import source!

FileWave filesets can be imported from:
- installer packages (.pkg, .mpkg, .msi)
- disk images (.dmg)
- folders`,
	}

	missingInputIssue = &Issue{
		id: MissingInputID,
		mdMsg: `
# Missing processor input!

## Things you can try:
- Set the input in your recipe file
- Pass it on the command line:
~~~
$ fwtool run FileWaveImporter -k fw_fileset_name=Firefox
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedID,
		mdMsg: `
# Failed to load configuration!

## Things you can try:
- Check the CUE syntax of your config file
- Compare it against the defaults:
~~~
server: {host: "localhost", port: "20016"}
admin: {user: "fwadmin", path: "/Applications/FileWave"}
~~~`,
	}

	recipeParseErrorIssue = &Issue{
		id: RecipeParseErrorID,
		mdMsg: `
# Failed to parse recipe inputs!

Recipe files are CUE (.cue) or TOML (.toml) documents of flat key/value inputs.

## Example:
~~~toml
fw_import_source = "/tmp/Firefox.pkg"
fw_fileset_name = "Firefox"
fw_fileset_group = "Browsers"
~~~`,
	}

	issues = map[ID]*Issue{
		adminToolNotFoundIssue.ID():   adminToolNotFoundIssue,
		unsupportedPlatformIssue.ID(): unsupportedPlatformIssue,
		adminVersionTooOldIssue.ID():  adminVersionTooOldIssue,
		loginFailedIssue.ID():         loginFailedIssue,
		adminCommandFailedIssue.ID():  adminCommandFailedIssue,
		importSourceMissingIssue.ID(): importSourceMissingIssue,
		unsupportedSourceIssue.ID():   unsupportedSourceIssue,
		missingInputIssue.ID():        missingInputIssue,
		configLoadFailedIssue.ID():    configLoadFailedIssue,
		recipeParseErrorIssue.ID():    recipeParseErrorIssue,
	}
)

// ID returns the catalog identifier.
func (i *Issue) ID() ID {
	return i.id
}

// MarkdownMsg returns the raw Markdown guidance.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// DocLinks returns a copy of the documentation links.
func (i *Issue) DocLinks() []HTTPLink {
	return slices.Clone(i.docLinks)
}

// Render renders the guidance for the terminal with the given glamour style.
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		var extra strings.Builder
		extra.WriteString("\n\n## See also:\n")
		for _, link := range i.docLinks {
			extra.WriteString("- [" + string(link) + "](" + string(link) + ")\n")
		}
		md += extra.String()
	}
	return render(md, stylePath)
}

// Values returns every catalog entry in ID order.
func Values() []*Issue {
	ids := maps.Keys(issues)
	slices.Sort(ids)
	out := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		out = append(out, issues[id])
	}
	return out
}

// Get returns the catalog entry for id, or nil.
func Get(id ID) *Issue {
	return issues[id]
}
