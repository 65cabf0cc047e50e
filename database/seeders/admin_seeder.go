package seeders

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/services"
)

func init() {
	Register("admin", SeedAdmin)
}

// SeedAdmin creates or promotes the account named by ADMIN_EMAIL.
// It does nothing when no admin is configured.
func SeedAdmin(ctx context.Context, env Env) error {
	admin := env.Config.Admin
	if admin.Email == "" {
		fmt.Fprint(env.Out, "(ADMIN_EMAIL not set, skipped) ")
		return nil
	}

	auth := services.NewAuthService(repositories.NewUserRepository(env.DB), env.Config.Auth.BcryptCost)
	created, err := auth.EnsureAdmin(ctx, "Administrator", admin.Email, admin.Password)
	if err != nil {
		return err
	}
	if !created {
		fmt.Fprint(env.Out, "(existing account promoted) ")
	}
	return nil
}
