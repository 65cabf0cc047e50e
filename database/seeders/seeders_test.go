package seeders_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/database/seeders"
	"github.com/shashiranjanraj/storefront/internal/testdb"
	"github.com/shashiranjanraj/storefront/pkg/auth"
)

func TestRunAllIsRepeatable(t *testing.T) {
	db := testdb.Open(t)
	cfg := &config.Config{
		Auth:  config.AuthConfig{BcryptCost: config.MinBcryptCost},
		Admin: config.AdminConfig{Email: "admin@example.com", Password: "change-me-please"},
	}
	var out bytes.Buffer
	env := seeders.Env{DB: db, Config: cfg, Out: &out}

	require.NoError(t, seeders.RunAll(context.Background(), env))
	require.NoError(t, seeders.RunAll(context.Background(), env))

	var products int64
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	assert.Equal(t, int64(4), products, "catalog seeded once")

	var admin models.User
	require.NoError(t, db.Where("email = ?", "admin@example.com").First(&admin).Error)
	assert.True(t, admin.IsAdmin)
	assert.True(t, auth.CheckPassword(admin.Password, "change-me-please"))

	assert.Contains(t, out.String(), "existing account promoted")
	assert.Contains(t, out.String(), "products present, skipped")
}

func TestAdminSeederSkipsWithoutConfig(t *testing.T) {
	db := testdb.Open(t)
	var out bytes.Buffer

	err := seeders.SeedAdmin(context.Background(), seeders.Env{DB: db, Config: &config.Config{}, Out: &out})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "ADMIN_EMAIL not set")

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users)
}
