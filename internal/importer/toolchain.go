// SPDX-License-Identifier: MPL-2.0

package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/filewave/fwtool/internal/fwadmin"
	"github.com/filewave/fwtool/internal/processor"
)

// Common processor input names.
const (
	InputServerHost    = "FW_SERVER_HOST"
	InputServerPort    = "FW_SERVER_PORT"
	InputAdminUser     = "FW_ADMIN_USER"
	InputAdminPassword = "FW_ADMIN_PASSWORD"
	InputRelaxVersion  = "FW_RELAX_VERSION"
)

// ValidationOK is the toolchain message when the server accepted a listing.
const ValidationOK = "VALIDATION OK"

type (
	// ClientFactory creates an admin client for the given connection options.
	ClientFactory func(opts fwadmin.Options) (*fwadmin.Client, error)

	// Toolchain is the outcome of validating the local admin tool against the server.
	Toolchain struct {
		Client *fwadmin.Client
		// Version is the admin tool version.
		Version fwadmin.Version
		// Options are the connection options the client was built with.
		Options fwadmin.Options
		// CanListFilesets reports whether the server answered a fileset listing.
		CanListFilesets bool
		// Message is ValidationOK or the description of the listing failure.
		Message string
		// Filesets is the probe listing, reused by the version gate.
		Filesets []fwadmin.Fileset
		// ListErr is the probe failure, if any.
		ListErr error
	}
)

// DefaultClientFactory returns a ClientFactory that resolves the admin tool for
// the current platform and applies clientOpts to every client.
func DefaultClientFactory(clientOpts ...fwadmin.ClientOption) ClientFactory {
	return func(opts fwadmin.Options) (*fwadmin.Client, error) {
		return fwadmin.New(opts, clientOpts...)
	}
}

// CommonInputs returns the connection inputs shared by the validating processors.
func CommonInputs() map[string]processor.InputVariable {
	return map[string]processor.InputVariable{
		InputServerHost: {
			Default:     fwadmin.DefaultHost,
			Description: "The hostname/ip of the FileWave server. Defaults to " + fwadmin.DefaultHost,
		},
		InputServerPort: {
			Default:     fwadmin.DefaultPort,
			Description: "The port number of the FileWave server. Defaults to " + fwadmin.DefaultPort,
		},
		InputAdminUser: {
			Default:     fwadmin.DefaultUsername,
			Description: "The username to use when connecting to the FileWave server. Defaults to " + fwadmin.DefaultUsername,
		},
		InputAdminPassword: {
			Default:     fwadmin.DefaultPassword,
			Description: "The password to use when connecting to the FileWave server. Defaults to " + fwadmin.DefaultPassword,
		},
		InputRelaxVersion: {
			Default:     false,
			Description: "Relax the version check and continue on regardless",
		},
	}
}

// ConnectionOptions reads the common connection inputs from env.
func ConnectionOptions(env processor.Env) fwadmin.Options {
	return fwadmin.Options{
		Username: env.String(InputAdminUser),
		Password: env.String(InputAdminPassword),
		Host:     env.String(InputServerHost),
		Port:     env.String(InputServerPort),
	}
}

// NewToolchain builds the admin client from env, checks its version and probes
// the server with a fileset listing. A version below the minimum fails unless
// FW_RELAX_VERSION is set, in which case it is reported through output. A
// failed probe is recorded in the Toolchain rather than returned.
func NewToolchain(ctx context.Context, env processor.Env, factory ClientFactory, output processor.OutputFunc) (*Toolchain, error) {
	opts := ConnectionOptions(env)
	client, err := factory(opts)
	if err != nil {
		return nil, fmt.Errorf("create admin client: %w", err)
	}

	version, err := client.Version(ctx)
	if err != nil {
		return nil, fmt.Errorf("query admin tool version: %w", err)
	}
	if err := fwadmin.CheckMinimumVersion(version); err != nil {
		if !env.Bool(InputRelaxVersion) {
			return nil, err
		}
		output("%s", err.Error())
	}

	tc := &Toolchain{
		Client:  client,
		Version: version,
		Options: opts,
		Message: ValidationOK,
	}

	filesets, err := client.Filesets(ctx)
	if err != nil {
		tc.ListErr = err
		var cmdErr *fwadmin.CommandError
		if errors.As(err, &cmdErr) {
			tc.Message = cmdErr.Status().Description
		} else {
			tc.Message = err.Error()
		}
	} else {
		tc.CanListFilesets = true
		tc.Filesets = filesets
	}

	if opts.Username == fwadmin.DefaultUsername {
		output("WARNING: You are using the FileWave super-user account (%s)", fwadmin.DefaultUsername)
	}
	return tc, nil
}

// Summary returns the validation report stored under FWToolSummaryKey.
func (tc *Toolchain) Summary() processor.SummaryResult {
	canList := "No"
	if tc.CanListFilesets {
		canList = "Yes"
	}
	return processor.SummaryResult{
		SummaryText: "Here are the results of installation validation:",
		ReportFields: []string{
			"fw_admin_console_version",
			"fw_admin_user",
			"fw_server_host",
			"fw_server_port",
			"fw_can_list_filesets",
			"fw_message",
		},
		Data: map[string]string{
			"fw_admin_console_version": tc.Version.String(),
			"fw_admin_user":            tc.Options.Username,
			"fw_server_host":           tc.Options.Host,
			"fw_server_port":           tc.Options.Port,
			"fw_can_list_filesets":     canList,
			"fw_message":               tc.Message,
		},
	}
}
