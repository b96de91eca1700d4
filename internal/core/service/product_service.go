package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/prodmanage/catalog-api/internal/api/metrics"
	"github.com/prodmanage/catalog-api/internal/core/domain"
	"github.com/prodmanage/catalog-api/internal/core/ports"
)

// ProductService implements owner-scoped product CRUD. The cache is optional;
// a nil cache disables read-through behaviour without changing semantics.
type ProductService struct {
	repo   ports.ProductRepository
	cache  ports.ProductCache
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, cache ports.ProductCache, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, logger: logger}
}

// List returns all products owned by ownerID, in store order.
func (s *ProductService) List(ctx context.Context, ownerID string) ([]domain.Product, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Create persists a new product owned by input.OwnerID.
func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, domain.Validation("name is required")
	}
	if input.Price < 0 {
		return nil, domain.Validation("price must not be negative")
	}

	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		OwnerID:     input.OwnerID,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", input.OwnerID).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("owner_id", created.OwnerID).Msg("product created")
	return created, nil
}

// Get returns the product only when it is owned by ownerID; any other id,
// including someone else's, is ErrProductNotFound.
func (s *ProductService) Get(ctx context.Context, ownerID, productID string) (*domain.Product, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, ownerID, productID); err != nil {
			s.logger.Warn().Err(err).Str("product_id", productID).Msg("cache read failed, falling back to store")
		} else if cached != nil {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return cached, nil
		} else {
			metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		}
	}

	product, err := s.repo.FindByID(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, product); err != nil {
			s.logger.Warn().Err(err).Str("product_id", productID).Msg("cache write failed")
		}
	}
	return product, nil
}

// Edit applies a full replace of the three mutable fields and stamps
// updated_at. Ownership semantics match Get.
func (s *ProductService) Edit(ctx context.Context, input ports.EditProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, domain.Validation("name is required")
	}
	if input.Price < 0 {
		return nil, domain.Validation("price must not be negative")
	}

	updated, err := s.repo.Update(ctx, input.OwnerID, input.ProductID, ports.ProductUpdate{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, input.OwnerID, input.ProductID)
	s.logger.Info().Str("product_id", input.ProductID).Str("owner_id", input.OwnerID).Msg("product updated")
	return updated, nil
}

// Delete removes the product and returns its last state before deletion.
func (s *ProductService) Delete(ctx context.Context, ownerID, productID string) (*domain.Product, error) {
	deleted, err := s.repo.Delete(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, ownerID, productID)
	s.logger.Info().Str("product_id", productID).Str("owner_id", ownerID).Msg("product deleted")
	return deleted, nil
}

func (s *ProductService) invalidate(ctx context.Context, ownerID, productID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ownerID, productID); err != nil {
		s.logger.Warn().Err(err).Str("product_id", productID).Msg("cache invalidation failed")
	}
}
