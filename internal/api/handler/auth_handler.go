package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prodmanage/catalog-api/internal/api/metrics"
	"github.com/prodmanage/catalog-api/internal/core/domain"
	"github.com/prodmanage/catalog-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account and returns a session token with it.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	token, user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			metrics.RegistrationsTotal.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: ve.Reason})
		case errors.Is(err, domain.ErrUserExists):
			// Duplicate email stays a 400, matching the documented contract.
			metrics.RegistrationsTotal.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		default:
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, toAuthResponse(token, user))
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: ve.Reason})
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, toAuthResponse(token, user))
}
