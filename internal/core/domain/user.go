package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

var ErrUserExists = errors.New("email already registered")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User models a registered account. PasswordHash never leaves the process.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// NormalizeRole coerces any value other than the two known roles to customer.
func NormalizeRole(role string) string {
	if role != RoleAdmin && role != RoleCustomer {
		return RoleCustomer
	}
	return role
}
