package catalog

import (
	"context"
	"log"

	"villas/src/models"
	"villas/src/store"
)

type Catalog struct {
	store store.Store
}

func New(s store.Store) *Catalog {
	return &Catalog{store: s}
}

func (c *Catalog) List(ctx context.Context) ([]models.Villa, error) {
	return c.store.ListVillas(ctx)
}

func (c *Catalog) Get(ctx context.Context, id string) (*models.Villa, error) {
	return c.store.FindVilla(ctx, id)
}

// Seed inserts the reference villas when the collection is empty. Returns the number inserted.
func (c *Catalog) Seed(ctx context.Context) (int, error) {
	count, err := c.store.CountVillas(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Printf("[catalog] %d villas found. Skipping seed\n", count)
		return 0, nil
	}
	villas := ReferenceVillas()
	if err := c.store.InsertVillas(ctx, villas); err != nil {
		return 0, err
	}
	log.Printf("[catalog] Initialized %d villas\n", len(villas))
	return len(villas), nil
}
