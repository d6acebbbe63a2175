// internal/repository/seed.go
package repository

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/vapeshop/vapeshop-backend/internal/models"
)

// Launch inventory, created once on first startup against an empty catalog.
var sampleProducts = []models.Product{
	{Name: "Mango Liquid", Category: "liquids", Price: 450, Stock: 10, Description: "Sweet mango flavor", Emoji: "🥭"},
	{Name: "JUUL Cartridge", Category: "cartridges", Price: 300, Stock: 20, Description: "Original cartridges", Emoji: "💨"},
	{Name: "RELX Mint Pod", Category: "pods", Price: 280, Stock: 12, Description: "Mint flavor", Emoji: "🔥"},
	{Name: "Vaporesso XROS 3", Category: "devices", Price: 2800, Stock: 5, Description: "Compact pod system", Emoji: "⚡"},
}

// SeedProducts populates the catalog with the starter products when it is
// empty. Does nothing otherwise.
func SeedProducts(ctx context.Context, products *ProductRepository) error {
	existing, err := products.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, p := range sampleProducts {
		if _, err := products.Save(ctx, p); err != nil {
			return err
		}
	}

	logrus.WithField("count", len(sampleProducts)).Info("Seeded sample products")
	return nil
}
