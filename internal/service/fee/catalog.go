// Package fee looks up catalog fees and computes booking payables.
package fee

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/pawcare-api/internal/model"
	"github.com/jwalitptl/pawcare-api/internal/repository"
	"github.com/jwalitptl/pawcare-api/pkg/errors"
)

type CacheConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

// Catalog serves the fee catalogs with an in-process cache of base fees.
type Catalog struct {
	repo  repository.FeeRepository
	cache *cache.Cache
}

func NewCatalog(repo repository.FeeRepository, cfg CacheConfig) *Catalog {
	return &Catalog{
		repo:  repo,
		cache: cache.New(cfg.TTL, cfg.CleanupInterval),
	}
}

func baseFeeKey(t model.ApplicationType) string {
	return string(model.FeeCatalogService) + ":" + t.FeeTitle()
}

// FindFeeByType returns the base service fee for an application type.
func (c *Catalog) FindFeeByType(ctx context.Context, t model.ApplicationType) (*model.Fee, error) {
	if !t.Valid() {
		return nil, errors.BadRequest(fmt.Sprintf("unknown application type %q", t), nil)
	}

	key := baseFeeKey(t)
	if cached, ok := c.cache.Get(key); ok {
		return cached.(*model.Fee), nil
	}

	fee, err := c.repo.FindByTitle(ctx, model.FeeCatalogService, t.FeeTitle())
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, fee, cache.DefaultExpiration)
	return fee, nil
}

// GroomingFees returns the fee of every known grooming add-on in ids.
func (c *Catalog) GroomingFees(ctx context.Context, ids []uuid.UUID) (model.FeeMap, error) {
	if len(ids) == 0 {
		return model.FeeMap{}, nil
	}
	fees, err := c.repo.ListByIDs(ctx, model.FeeCatalogGrooming, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load grooming services: %w", err)
	}
	return model.NewFeeMap(fees), nil
}

func (c *Catalog) ListServiceFees(ctx context.Context, title string) ([]*model.Fee, error) {
	return c.repo.List(ctx, model.FeeCatalogService, title)
}

func (c *Catalog) ListGroomingServices(ctx context.Context, title string) ([]*model.Fee, error) {
	return c.repo.List(ctx, model.FeeCatalogGrooming, title)
}

func (c *Catalog) ListVaccinationServices(ctx context.Context, title string) ([]*model.Fee, error) {
	return c.repo.List(ctx, model.FeeCatalogVaccination, title)
}

// UpdateServiceFee changes a base service fee. Empty title and zero fee keep
// the stored values.
func (c *Catalog) UpdateServiceFee(ctx context.Context, id uuid.UUID, req *model.UpdateFeeRequest) (*model.Fee, error) {
	fee, err := c.repo.Get(ctx, model.FeeCatalogService, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service fee: %w", err)
	}

	if req.Title != "" {
		fee.Title = req.Title
	}
	if req.Fee > 0 {
		fee.Fee = req.Fee
	}

	if err := c.repo.Update(ctx, model.FeeCatalogService, fee); err != nil {
		return nil, fmt.Errorf("failed to update service fee: %w", err)
	}

	// the title may have moved, so no single key is enough
	c.cache.Flush()
	return fee, nil
}
