// Package testdb opens migrated in-memory SQLite databases for tests.
package testdb

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/migration"

	_ "github.com/shashiranjanraj/storefront/database/migrations"
)

var seq atomic.Int64

// Open returns an isolated, fully migrated database that is closed when t ends.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	db := OpenEmpty(t)
	if _, err := migration.New(db, nil).Run(); err != nil {
		t.Fatalf("testdb: migrate: %v", err)
	}
	return db
}

// OpenEmpty returns an isolated database without any tables.
func OpenEmpty(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=1", name, seq.Add(1))

	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", DSN: dsn})
	if err != nil {
		t.Fatalf("testdb: open: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
