package ports

import (
	"context"

	"github.com/prodmanage/catalog-api/internal/core/domain"
)

// ProductUpdate is the full replacement set applied by an edit. There is no
// partial patch; all three fields are written together.
type ProductUpdate struct {
	Name        string
	Description string
	Price       float64
}

// ProductRepository defines persistence operations for products. Every
// single-record operation filters by both product id and owner id, so a
// record owned by someone else is indistinguishable from a missing one.
type ProductRepository interface {
	Insert(ctx context.Context, p *domain.Product) (*domain.Product, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Product, error)
	FindByID(ctx context.Context, ownerID, productID string) (*domain.Product, error)
	// Update applies a full replace and sets updated_at, then returns the
	// stored record.
	Update(ctx context.Context, ownerID, productID string, upd ProductUpdate) (*domain.Product, error)
	// Delete removes the record and returns its last state as read before
	// deletion.
	Delete(ctx context.Context, ownerID, productID string) (*domain.Product, error)
}

// ProductCache is a read-through cache for single-product lookups.
// Get returns (nil, nil) on a miss.
type ProductCache interface {
	Get(ctx context.Context, ownerID, productID string) (*domain.Product, error)
	Set(ctx context.Context, p *domain.Product) error
	Invalidate(ctx context.Context, ownerID, productID string) error
}
