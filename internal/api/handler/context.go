package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dextasynergyservices/myweddingpage/internal/api/middleware"
)

// ctxClaims extracts the claims injected by the Auth middleware and performs
// a fast-fail check before any service call: both fields must be non-empty,
// their presence proves the middleware ran.
func ctxClaims(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	role, _ = c.Get(middleware.CtxRole).(string)
	if userID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}
