// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filewave/fwtool/internal/fwadmin"
)

// withClient runs fn with an admin client built from the loaded configuration
// and routes any failure through App.fail.
func (a *App) withClient(ctx context.Context, fn func(*fwadmin.Client) error) error {
	client, err := a.adminClient(ctx)
	if err != nil {
		return a.fail(err)
	}
	return a.fail(fn(client))
}

// printRecords prints records one per line, or as a JSON array.
func printRecords[T fmt.Stringer](a *App, records []T, asJSON bool) error {
	if asJSON {
		if records == nil {
			records = []T{}
		}
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	for _, r := range records {
		fmt.Fprintln(a.stdout, r.String())
	}
	return nil
}

func (a *App) printCreated(what, id string) {
	fmt.Fprintf(a.stdout, "%s %s %s\n", SuccessStyle.Render("Created"), what, KeyStyle.Render(id))
}

func newListCommand[T fmt.Stringer](app *App, short string, list func(*fwadmin.Client, context.Context) ([]T, error)) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withClient(cmd.Context(), func(c *fwadmin.Client) error {
				records, err := list(c, cmd.Context())
				if err != nil {
					return err
				}
				return printRecords(app, records, asJSON)
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON")
	return cmd
}

func newClientsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Inspect clients and client groups",
	}
	cmd.AddCommand(newListCommand(app, "List clients, flattened parent before children", (*fwadmin.Client).Clients))
	return cmd
}

func newFilesetsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filesets",
		Short: "Manage filesets",
	}
	cmd.AddCommand(newListCommand(app, "List filesets, flattened parent before children", (*fwadmin.Client).Filesets))

	var group string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty fileset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withClient(cmd.Context(), func(c *fwadmin.Client) error {
				id, err := c.CreateFileset(cmd.Context(), args[0], group)
				if err != nil {
					return err
				}
				app.printCreated("fileset", id)
				return nil
			})
		},
	}
	create.Flags().StringVar(&group, "group", "", "fileset group to create the fileset in")

	remove := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a fileset",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withClient(cmd.Context(), func(c *fwadmin.Client) error {
				id, err := c.DeleteFileset(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(app.stdout, "%s fileset %s\n", SuccessStyle.Render("Deleted"), KeyStyle.Render(id))
				return nil
			})
		},
	}

	setProperty := &cobra.Command{
		Use:     "set-property <id> <key> <value>",
		Short:   "Set a custom property on a fileset",
		Example: "  fwtool filesets set-property 42 fw_app_version 128.0",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withClient(cmd.Context(), func(c *fwadmin.Client) error {
				return c.SetProperty(cmd.Context(), args[0], args[1], args[2])
			})
		},
	}

	cmd.AddCommand(create, remove, setProperty)
	return cmd
}

func newAssociationsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "associations",
		Short: "Manage client-to-fileset associations",
	}
	cmd.AddCommand(newListCommand(app, "List associations", (*fwadmin.Client).Associations))

	var req fwadmin.AssociationRequest
	create := &cobra.Command{
		Use:   "create <client-id> <fileset-id>",
		Short: "Associate a fileset with a client or client group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.ClientID, req.FilesetID = args[0], args[1]
			return app.withClient(cmd.Context(), func(c *fwadmin.Client) error {
				if err := c.CreateAssociation(cmd.Context(), req); err != nil {
					return err
				}
				fmt.Fprintf(app.stdout, "%s fileset %s with client %s\n",
					SuccessStyle.Render("Associated"), KeyStyle.Render(req.FilesetID), KeyStyle.Render(req.ClientID))
				return nil
			})
		},
	}
	create.Flags().BoolVar(&req.Kiosk, "kiosk", false, "offer the fileset in Kiosk instead of installing it")
	create.Flags().BoolVar(&req.SoftwareUpdate, "software-update", false, "deliver the fileset as a software update")

	remove := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an association",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withClient(cmd.Context(), func(c *fwadmin.Client) error {
				return c.DeleteAssociation(cmd.Context(), args[0])
			})
		},
	}

	cmd.AddCommand(create, remove)
	return cmd
}

func newImageCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Manage imaging filesets",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "import <path>",
		Short: "Import a system image as an imaging fileset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withClient(cmd.Context(), func(c *fwadmin.Client) error {
				id, err := c.ImportImage(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				app.printCreated("imaging fileset", id)
				return nil
			})
		},
	})
	return cmd
}

func newModelCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Manage the deployment model",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "update",
		Short: "Ask the server to recompute deployment assignments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withClient(cmd.Context(), func(c *fwadmin.Client) error {
				if err := c.UpdateModel(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(app.stdout, SuccessStyle.Render("Model updated"))
				return nil
			})
		},
	})
	return cmd
}

func newAdminCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Inspect the local FileWave Admin tool",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "version",
			Short: "Print the admin tool version and check it is supported",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.withClient(cmd.Context(), func(c *fwadmin.Client) error {
					v, err := c.Version(cmd.Context())
					if err != nil {
						return err
					}
					fmt.Fprintln(app.stdout, v.String())
					return fwadmin.CheckMinimumVersion(v)
				})
			},
		},
		&cobra.Command{
			Use:   "help",
			Short: "Print the admin tool's own usage text",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.withClient(cmd.Context(), func(c *fwadmin.Client) error {
					out, err := c.Help(cmd.Context())
					if err != nil {
						return err
					}
					fmt.Fprintln(app.stdout, out)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the resolved admin tool executable",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.withClient(cmd.Context(), func(c *fwadmin.Client) error {
					fmt.Fprintln(app.stdout, c.Executable())
					return nil
				})
			},
		},
	)
	return cmd
}
