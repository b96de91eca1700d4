package ports

import (
	"context"

	"github.com/prodmanage/catalog-api/internal/core/domain"
)

// CreateProductInput carries all data needed to create a product.
type CreateProductInput struct {
	OwnerID     string
	Name        string
	Description string
	Price       float64
}

// EditProductInput carries a full-replace edit of the three mutable fields.
type EditProductInput struct {
	OwnerID     string
	ProductID   string
	Name        string
	Description string
	Price       float64
}

// ProductService defines the owner-scoped use-case operations.
type ProductService interface {
	List(ctx context.Context, ownerID string) ([]domain.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Get(ctx context.Context, ownerID, productID string) (*domain.Product, error)
	Edit(ctx context.Context, input EditProductInput) (*domain.Product, error)
	Delete(ctx context.Context, ownerID, productID string) (*domain.Product, error)
}
