// SPDX-License-Identifier: MPL-2.0

package fwadmin

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
)

var (
	importedFilesetPattern = regexp.MustCompile(`new fileset with ID (?P<id>.+) was created`)
	importedImagePattern   = regexp.MustCompile(`new imaging fileset with ID (?P<id>.+) was created`)
	createdFilesetPattern  = regexp.MustCompile(`new fileset (?P<id>.+) created with name (?P<name>.+)`)
)

type (
	// ImportRequest describes a folder or package import.
	ImportRequest struct {
		// Path is the folder or package to import.
		Path string
		// Name is the fileset name (optional).
		Name string
		// Root is the destination root on clients (optional).
		Root string
		// Group is the fileset group to import into (optional).
		Group string
	}

	// AssociationRequest describes a client-to-fileset association.
	AssociationRequest struct {
		ClientID       string
		FilesetID      string
		Kiosk          bool
		SoftwareUpdate bool
	}
)

// --- Argument Builders ---

// ImportFolderArgs constructs arguments for a folder import.
//
// Generated command: --importFolder <path> [--name n] [--root r] [--filesetgroup g]
func ImportFolderArgs(req ImportRequest) []string {
	return importArgs("--importFolder", req)
}

// ImportPackageArgs constructs arguments for a package import.
//
// Generated command: --importPackage <path> [--name n] [--root r] [--filesetgroup g]
func ImportPackageArgs(req ImportRequest) []string {
	return importArgs("--importPackage", req)
}

func importArgs(flag string, req ImportRequest) []string {
	args := []string{flag, req.Path}
	if req.Name != "" {
		args = append(args, "--name", req.Name)
	}
	if req.Root != "" {
		args = append(args, "--root", req.Root)
	}
	if req.Group != "" {
		args = append(args, "--filesetgroup", req.Group)
	}
	return args
}

// CreateAssociationArgs constructs arguments for an association.
//
// Generated command: --createAssociation --clientgroup <c> --fileset <f> [--kiosk] [--software_update]
func CreateAssociationArgs(req AssociationRequest) []string {
	args := []string{"--createAssociation", "--clientgroup", req.ClientID, "--fileset", req.FilesetID}
	if req.Kiosk {
		args = append(args, "--kiosk")
	}
	if req.SoftwareUpdate {
		args = append(args, "--software_update")
	}
	return args
}

// CreateFilesetArgs constructs arguments for an empty fileset.
//
// Generated command: --createFileset <name> [--filesetgroup g]
func CreateFilesetArgs(name, group string) []string {
	args := []string{"--createFileset", name}
	if group != "" {
		args = append(args, "--filesetgroup", group)
	}
	return args
}

// SetPropertyArgs constructs arguments for a custom property update.
func SetPropertyArgs(filesetID, key, value string) []string {
	return []string{"--fileset", filesetID, "--setProperty", "--key", key, "--value", value}
}

// --- Listings ---

// Clients lists every client and client group, flattened depth-first.
func (c *Client) Clients(ctx context.Context) ([]ClientRecord, error) {
	var roots []*clientNode
	if err := c.list(ctx, "--listClients", &roots); err != nil {
		return nil, err
	}
	return flattenClients(roots), nil
}

// Filesets lists every fileset and fileset group, flattened depth-first.
func (c *Client) Filesets(ctx context.Context) ([]Fileset, error) {
	var roots []*filesetNode
	if err := c.list(ctx, "--listFilesets", &roots); err != nil {
		return nil, err
	}
	return flattenFilesets(roots), nil
}

// Associations lists every association.
func (c *Client) Associations(ctx context.Context) ([]Association, error) {
	var assocs []Association
	if err := c.list(ctx, "--listAssociations", &assocs); err != nil {
		return nil, err
	}
	return assocs, nil
}

func (c *Client) list(ctx context.Context, flag string, v any) error {
	out, err := c.Run(ctx, []string{flag})
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(out), v); err != nil {
		return fmt.Errorf("decode %s output: %w", flag, err)
	}
	return nil
}

// --- Associations ---

// CreateAssociation binds a fileset to a client or client group.
func (c *Client) CreateAssociation(ctx context.Context, req AssociationRequest) error {
	_, err := c.Run(ctx, CreateAssociationArgs(req))
	return err
}

// CreateAssociationExpectingFailure attempts an association that the server must
// reject, such as one targeting an imaging fileset.
func (c *Client) CreateAssociationExpectingFailure(ctx context.Context, req AssociationRequest) (Result, error) {
	return c.RunExpectingFailure(ctx, CreateAssociationArgs(req))
}

// DeleteAssociation removes an association.
func (c *Client) DeleteAssociation(ctx context.Context, id string) error {
	_, err := c.Run(ctx, []string{"--deleteAssociation", id})
	return err
}

// --- Filesets ---

// ImportFolder imports a directory as a new fileset and returns its ID.
func (c *Client) ImportFolder(ctx context.Context, req ImportRequest) (string, error) {
	return c.create(ctx, "import folder", ImportFolderArgs(req), importedFilesetPattern)
}

// ImportPackage imports a package as a new fileset and returns its ID.
func (c *Client) ImportPackage(ctx context.Context, req ImportRequest) (string, error) {
	return c.create(ctx, "import package", ImportPackageArgs(req), importedFilesetPattern)
}

// ImportImage imports a disk image as a new imaging fileset and returns its ID.
func (c *Client) ImportImage(ctx context.Context, path string) (string, error) {
	return c.create(ctx, "import image", []string{"--importImage", path}, importedImagePattern)
}

// ImportImageExpectingFailure attempts an image import that the server must reject.
func (c *Client) ImportImageExpectingFailure(ctx context.Context, path string) (Result, error) {
	return c.RunExpectingFailure(ctx, []string{"--importImage", path})
}

// CreateFileset creates an empty fileset, optionally inside group, and returns its ID.
func (c *Client) CreateFileset(ctx context.Context, name, group string) (string, error) {
	return c.create(ctx, "create fileset", CreateFilesetArgs(name, group), createdFilesetPattern)
}

// DeleteFileset removes a fileset and returns its ID.
func (c *Client) DeleteFileset(ctx context.Context, id string) (string, error) {
	if _, err := c.Run(ctx, []string{"--deleteFileset", id}); err != nil {
		return "", err
	}
	c.notifyRemoved(id)
	return id, nil
}

// SetProperty sets a custom property on a fileset.
func (c *Client) SetProperty(ctx context.Context, filesetID, key, value string) error {
	_, err := c.Run(ctx, SetPropertyArgs(filesetID, key, value))
	return err
}

// UpdateModel asks the server to recompute deployment assignments.
func (c *Client) UpdateModel(ctx context.Context) error {
	_, err := c.Run(ctx, []string{"--updateModel"})
	return err
}

// Help returns the admin tool's usage text.
func (c *Client) Help(ctx context.Context) (string, error) {
	return c.Run(ctx, []string{"-h"}, WithoutConnection())
}

// create runs a creation command and extracts the new identifier from its
// confirmation message.
func (c *Client) create(ctx context.Context, operation string, args []string, pattern *regexp.Regexp) (string, error) {
	out, err := c.Run(ctx, args)
	if err != nil {
		return "", err
	}
	id, err := extractID(operation, out, pattern)
	if err != nil {
		return "", err
	}
	c.logger.Debug("fileset created", "operation", operation, "id", id)
	c.notifyCreated(id)
	return id, nil
}

func extractID(operation, out string, pattern *regexp.Regexp) (string, error) {
	m := pattern.FindStringSubmatch(out)
	if m == nil {
		return "", &NoIdentifierError{Operation: operation, Output: out}
	}
	id := m[pattern.SubexpIndex("id")]
	if id == "" {
		return "", &NoIdentifierError{Operation: operation, Output: out}
	}
	return id, nil
}
