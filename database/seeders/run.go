// Package seeders provides a registry of database seed functions.
//
// Usage (define a seeder in any file in this package):
//
//	func init() {
//	    seeders.Register("catalog", SeedCatalog)
//	}
//
//	func SeedCatalog(ctx context.Context, env seeders.Env) error {
//	    // insert rows …
//	    return nil
//	}
//
// Then run via CLI: storefront seed
package seeders

import (
	"context"
	"fmt"
	"io"
	"sync"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/config"
)

// Env is what every seeder is handed.
type Env struct {
	DB     *gorm.DB
	Config *config.Config
	Out    io.Writer
}

// SeederFunc is the signature for a seed function. Seeders must be safe to
// run more than once.
type SeederFunc func(ctx context.Context, env Env) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder to the global registry.
// Call this from init() in your seeder files.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// RunAll executes every registered seeder in registration order.
// It stops on the first error.
func RunAll(ctx context.Context, env Env) error {
	if env.Out == nil {
		env.Out = io.Discard
	}

	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	if len(current) == 0 {
		fmt.Fprintln(env.Out, "  (no seeders registered)")
		return nil
	}

	for _, e := range current {
		fmt.Fprintf(env.Out, "  • Running seeder: %s … ", e.name)
		if err := e.fn(ctx, env); err != nil {
			fmt.Fprintln(env.Out, "FAILED")
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
		fmt.Fprintln(env.Out, "done")
	}
	return nil
}
