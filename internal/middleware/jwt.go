package middleware // reusable HTTP middleware for the task tracker

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/task-tracker/internal/utils"
)

// ContextEmailKey is the echo context key under which JWTAuth stores the
// verified token subject (the caller's email).
const ContextEmailKey = "email"

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject into the request context. The provided
// secret must match the one used when issuing tokens. Refresh tokens are
// rejected here: carrying type:"refresh" disqualifies a token from acting as
// an access token regardless of its signature. This middleware should wrap
// every task and profile route; handlers read the subject via
// c.Get(middleware.ContextEmailKey).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			subject, err := utils.VerifyAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(ContextEmailKey, subject)
			return next(c)
		}
	}
}

// subjectFrom returns the authenticated subject stored by JWTAuth, or ""
// when the request is unauthenticated.
func subjectFrom(c echo.Context) string {
	if v, ok := c.Get(ContextEmailKey).(string); ok {
		return v
	}
	return ""
}
