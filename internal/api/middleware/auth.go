package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/prodmanage/catalog-api/internal/core/auth"
)

// Auth validates the bearer token and injects the authenticated identity into
// the request context. The "Bearer " prefix is stripped when present;
// otherwise the whole header value is treated as the token. Downstream
// handlers read the identity from the context only, never from the body.
func Auth(tokens *auth.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token is missing")
			}

			token := header
			if after, ok := strings.CutPrefix(header, "Bearer "); ok {
				token = after
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "token has expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "token is invalid")
			}

			c.Set("user_id", claims.UserID)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}
