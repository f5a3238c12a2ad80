package main

import (
	"fmt"

	"github.com/garments-erp/backend/internal/bootstrap"
	"github.com/spf13/cobra"
)

func newSeedCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert default reference data",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "permissions",
		Short: "Create the Admin, Manager and Employee roles and their permissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd.Context(), flags, func(c *bootstrap.Container) error {
				summary, err := c.Services.PermissionSeeder.Seed(cmd.Context())
				if err != nil {
					return err
				}
				if !summary.Changed() {
					fmt.Fprintln(cmd.OutOrStdout(), "permissions already up to date")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "permissions created: %d, updated: %d, roles created: %d, links created: %d\n",
					summary.PermissionsCreated, summary.PermissionsUpdated, summary.RolesCreated, summary.LinksCreated)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "categories",
		Short: "Create the default garments transaction categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd.Context(), flags, func(c *bootstrap.Container) error {
				created, err := c.Services.CategorySeeder.Seed(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "categories created: %d\n", created)
				return nil
			})
		},
	})

	return cmd
}
