package services

import (
	"context"
	"time"

	"github.com/vytor/brainboost/internal/catalog"
	"github.com/vytor/brainboost/internal/errors"
)

// DefaultCatalogWait bounds how long a request waits for the catalog during startup.
const DefaultCatalogWait = 2 * time.Second

func loadCatalog(ctx context.Context, holder *catalog.Holder) (*catalog.Catalog, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultCatalogWait)
	defer cancel()

	cat, err := holder.Get(ctx)
	if err != nil {
		return nil, errors.NewUnavailableError("content catalog", err)
	}
	return cat, nil
}
