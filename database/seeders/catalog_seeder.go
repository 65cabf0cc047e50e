package seeders

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
)

func init() {
	Register("catalog", SeedCatalog)
}

var sampleProducts = []models.Product{
	{ProductName: "Espresso beans 1kg", Price: 24.90},
	{ProductName: "Ceramic mug", Price: 9.50},
	{ProductName: "Pour-over kettle", Price: 42.00},
	{ProductName: "Paper filters (100)", Price: 4.75},
}

// SeedCatalog fills an empty catalogue with sample products.
func SeedCatalog(ctx context.Context, env Env) error {
	products := repositories.NewProductRepository(env.DB)

	n, err := products.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		fmt.Fprintf(env.Out, "(%d products present, skipped) ", n)
		return nil
	}

	for _, p := range sampleProducts {
		if err := products.Create(ctx, &p); err != nil {
			return err
		}
	}
	return nil
}
