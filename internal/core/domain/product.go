package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")

// Product is a catalog entry owned by exactly one user. OwnerID is set at
// creation and never changes; every read and mutation is filtered by it.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	// UpdatedAt stays zero (and absent from JSON) until the first edit.
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}
