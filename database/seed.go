package database

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront-backend/models"
)

type seedFile struct {
	Categories []models.Category `json:"categories"`
	Products   []models.Product  `json:"products"`
}

// SeedCatalog loads the catalog from a JSON file into MongoDB. Existing
// documents are replaced by id, so re-running the seed is idempotent. The
// catalog is read-only at request time; this is the out-of-band load path.
func SeedCatalog(ctx context.Context, db *mongo.Database, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	upsert := options.Replace().SetUpsert(true)

	categories := db.Collection("categories")
	for i := range seed.Categories {
		c := &seed.Categories[i]
		if _, err := categories.ReplaceOne(ctx, bson.M{"_id": c.ID}, c, upsert); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", c.Slug, err)
		}
	}

	products := db.Collection("products")
	for i := range seed.Products {
		p := &seed.Products[i]
		if _, err := products.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, upsert); err != nil {
			return fmt.Errorf("failed to seed product %d: %w", p.ID, err)
		}
	}

	return nil
}
