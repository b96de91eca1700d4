package handler

import (
	"time"

	"github.com/prodmanage/catalog-api/internal/core/domain"
)

// productRequest is shared by create and edit: both carry the same three
// required fields and edit is a full replace. Description and Price are
// pointers so that present-but-zero values ("" and 0) pass the presence
// check; presence itself is checked by hand because a required tag would
// reject those zero values once the pointer is dereferenced.
type productRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

func (r *productRequest) missingFields() bool {
	return r.Description == nil || r.Price == nil
}

type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductListResponse(products []domain.Product) []productResponse {
	out := make([]productResponse, len(products))
	for i := range products {
		out[i] = toProductResponse(&products[i])
	}
	return out
}
