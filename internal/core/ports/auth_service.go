package ports

import (
	"context"

	"github.com/prodmanage/catalog-api/internal/core/domain"
)

// RegisterInput carries the raw registration payload. Role is optional and
// coerced to customer unless it is exactly customer or admin.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type AuthService interface {
	// Register creates an account and returns a fresh session token with it.
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	// Login verifies credentials. Unknown email and wrong password are
	// indistinguishable to the caller (both ErrInvalidCredentials).
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
