package ports

import (
	"context"

	"github.com/prodmanage/catalog-api/internal/core/domain"
)

// AuthRepository defines the interface for user identity persistence.
// Emails are stored normalized (lower-case); uniqueness is enforced by the
// backing store.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
