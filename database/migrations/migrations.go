// Package migrations holds the storefront schema migrations.
// Each file registers itself from init(); importing the package for its side
// effects is enough to make them visible to the migration runner.
package migrations
