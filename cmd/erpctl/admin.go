package main

import (
	"errors"
	"fmt"
	"os"

	identityapp "github.com/garments-erp/backend/internal/application/identity"
	"github.com/garments-erp/backend/internal/bootstrap"
	"github.com/spf13/cobra"
)

// adminPasswordEnv lets scripts pass the password without exposing it in the process list
const adminPasswordEnv = "ERP_ADMIN_PASSWORD"

type adminOptions struct {
	username  string
	email     string
	password  string
	firstName string
	lastName  string
}

func (o *adminOptions) input() (identityapp.RegisterInput, error) {
	password := o.password
	if password == "" {
		password = os.Getenv(adminPasswordEnv)
	}
	if password == "" {
		return identityapp.RegisterInput{}, errors.New("password required: use --password or " + adminPasswordEnv)
	}
	return identityapp.RegisterInput{
		Username:  o.username,
		Email:     o.email,
		Password:  password,
		FirstName: o.firstName,
		LastName:  o.lastName,
	}, nil
}

func newCreateAdminCommand(flags *globalFlags) *cobra.Command {
	opts := &adminOptions{}

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create the first administrator (only while no Admin user exists)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := opts.input()
			if err != nil {
				return err
			}
			return withContainer(cmd.Context(), flags, func(c *bootstrap.Container) error {
				if _, err := c.Services.PermissionSeeder.Seed(cmd.Context()); err != nil {
					return fmt.Errorf("seed permissions: %w", err)
				}
				result, err := c.Services.Auth.SetupAdmin(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "administrator %s created (id %s)\n", result.User.Username, result.User.ID)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.username, "username", "", "Login name")
	f.StringVar(&opts.email, "email", "", "Email address")
	f.StringVar(&opts.password, "password", "", "Password (or set "+adminPasswordEnv+")")
	f.StringVar(&opts.firstName, "first-name", "", "First name")
	f.StringVar(&opts.lastName, "last-name", "", "Last name")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
