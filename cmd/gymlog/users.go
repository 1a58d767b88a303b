package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (a *app) initSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-schema",
		Short: "Create the gym log tables if they do not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.store.EnsureSchema(cmd.Context()); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintln(a.out, "✓ schema ready")
			return nil
		},
	}
}

func (a *app) registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Register a new user (with an empty gym log)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, password, err := a.credentials()
			if err != nil {
				return err
			}
			user, err := a.svc.RegisterUser(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(a.out, "✓ registered %s ", user.Username)
			color.New(color.Faint).Fprintf(a.out, "(id %d)\n", user.ID)
			return nil
		},
	}
}

func (a *app) deleteUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-user",
		Short: "Delete the user together with their gym log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, password, err := a.credentials()
			if err != nil {
				return err
			}
			if err := a.svc.DeleteUser(cmd.Context(), username, password); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(a.out, "✓ deleted %s\n", username)
			return nil
		},
	}
}
