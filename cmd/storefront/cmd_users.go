package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/database"
)

// storefront user:promote EMAIL
var userPromoteCmd = &cobra.Command{
	Use:   "user:promote EMAIL",
	Short: "Grant the admin role to an existing user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setAdmin(cmd, args[0], true)
	},
}

// storefront user:demote EMAIL
var userDemoteCmd = &cobra.Command{
	Use:   "user:demote EMAIL",
	Short: "Revoke the admin role from a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setAdmin(cmd, args[0], false)
	},
}

func setAdmin(cmd *cobra.Command, email string, admin bool) error {
	cfg, db, err := bootDB()
	if err != nil {
		return err
	}
	defer database.Close(db)

	auth := services.NewAuthService(repositories.NewUserRepository(db), cfg.Auth.BcryptCost)
	if err := auth.SetAdmin(cmd.Context(), email, admin); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return fmt.Errorf("no user with email %q", email)
		}
		return err
	}

	verb := "promoted to admin"
	if !admin {
		verb = "demoted to customer"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅  %s %s\n", email, verb)
	return nil
}
