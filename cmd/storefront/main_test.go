package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDatabaseCommands(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD", "change-me-please")

	out, err := execute(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Migrated: 20260101000000_create_users_table")

	out, err = execute(t, "migrate:status")
	require.NoError(t, err)
	assert.Contains(t, out, "create_orders_table")
	assert.Contains(t, out, "Yes")

	out, err = execute(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Running seeder: admin")
	assert.Contains(t, out, "Running seeder: catalog")

	out, err = execute(t, "user:demote", "admin@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "demoted to customer")

	_, err = execute(t, "user:promote", "ghost@example.com")
	assert.EqualError(t, err, `no user with email "ghost@example.com"`)

	out, err = execute(t, "migrate:rollback")
	require.NoError(t, err)
	assert.Contains(t, out, "Rolled back:")
}

func TestRouteListCommand(t *testing.T) {
	out, err := execute(t, "route:list")
	require.NoError(t, err)
	assert.Contains(t, out, "/admin/orders/{id}/delete")
	assert.Contains(t, out, "admin.orders.delete")
	assert.Contains(t, out, "healthz")
}
