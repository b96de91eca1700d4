package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/prodmanage/catalog-api/internal/core/auth"
	"github.com/prodmanage/catalog-api/internal/core/domain"
	"github.com/prodmanage/catalog-api/internal/core/ports"
)

const minPasswordLength = 8

var validate = validator.New()

// AuthService implements registration and login over an AuthRepository.
type AuthService struct {
	repo   ports.AuthRepository
	tokens *auth.TokenService
	logger zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, tokens *auth.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, logger: logger}
}

// Register validates and persists a new account, then issues a session token
// for it. Checks run in order and the first failure wins. Name is trimmed and
// email lower-cased before any check or write.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (string, *domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)

	if name == "" {
		return "", nil, domain.Validation("name is required")
	}
	if len([]rune(name)) < 2 {
		return "", nil, domain.Validation("name must be at least 2 characters")
	}
	if email == "" {
		return "", nil, domain.Validation("email is required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return "", nil, domain.Validation("email must be a valid email address")
	}
	if input.Password == "" {
		return "", nil, domain.Validation("password is required")
	}
	if len(input.Password) < minPasswordLength {
		return "", nil, domain.Validation("password must be at least 8 characters")
	}

	// Best-effort uniqueness check; the unique index on email is what
	// actually closes the race between concurrent registrations.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return "", nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return "", nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.NormalizeRole(input.Role),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(created.ID, created.Role)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return token, created, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password both surface as ErrInvalidCredentials so account existence cannot
// be probed.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.Validation("email and password are required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return "", nil, domain.Validation("email must be a valid email address")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
