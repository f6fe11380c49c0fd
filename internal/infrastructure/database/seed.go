package database

import (
	"context"
	"fmt"

	"github.com/injapanfood/pos-api/internal/domain/entity"
	"github.com/injapanfood/pos-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
)

// DefaultCatalog is the starter menu loaded into an empty products collection
func DefaultCatalog() []entity.Product {
	return []entity.Product{
		{Name: "Tonkotsu Ramen", Category: "Ramen", Price: 980, Active: true},
		{Name: "Shoyu Ramen", Category: "Ramen", Price: 880, Active: true},
		{Name: "Miso Ramen", Category: "Ramen", Price: 920, Active: true},
		{Name: "Gyoza (6 pcs)", Category: "Sides", Price: 380, Active: true},
		{Name: "Karaage", Category: "Sides", Price: 450, Active: true},
		{Name: "Edamame", Category: "Sides", Price: 300, Active: true},
		{Name: "Salmon Onigiri", Category: "Rice", Price: 220, Active: true},
		{Name: "Katsu Curry", Category: "Rice", Price: 1100, Active: true},
		{Name: "Gyudon", Category: "Rice", Price: 690, Active: true},
		{Name: "Matcha Latte", Category: "Drinks", Price: 480, Active: true},
		{Name: "Ramune", Category: "Drinks", Price: 250, Active: true},
		{Name: "Green Tea", Category: "Drinks", Price: 0, Active: true},
	}
}

// SeedCatalog inserts DefaultCatalog when the store has no products yet
func SeedCatalog(ctx context.Context, products repository.ProductRepository) error {
	count, err := products.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		log.Debug().Int64("products", count).Msg("catalog already seeded")
		return nil
	}

	catalog := DefaultCatalog()
	if err := products.CreateBatch(ctx, catalog); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	log.Info().Int("products", len(catalog)).Msg("seeded default catalog")
	return nil
}
