package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dextasynergyservices/myweddingpage/internal/core/service"
)

// SessionCookie is the name of the HTTP-only cookie carrying the session
// credential.
const SessionCookie = "session"

// Context keys populated by Auth for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// Auth validates the session credential and injects the typed claims into
// context. The credential is read from the session cookie first, falling
// back to a bearer Authorization header. Fails closed: no valid credential,
// no route body.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractCredential(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
			}

			claims, err := service.ParseSessionToken(jwtSecret, raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}

			c.Set(CtxUserID, claims.Subject)
			c.Set(CtxRole, string(claims.Role))

			return next(c)
		}
	}
}

func extractCredential(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
