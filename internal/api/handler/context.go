package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the authenticated user id injected by the Auth
// middleware. A missing id means the middleware did not run (or the token
// carried no identity); either way the request cannot proceed.
func ctxIdentity(c echo.Context) (string, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}
