package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// OwnerIDContextKey is the echo context key under which the authenticated
// caller id is stored.
const OwnerIDContextKey = "owner-id"

// Identity verifies the bearer token and stores its subject as the caller
// id. Requests without a valid token are rejected before any handler runs.
func Identity(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := strings.TrimSpace(c.Request().Header.Get("Authorization"))
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			const prefix = "Bearer "
			if !strings.HasPrefix(authHeader, prefix) {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization scheme")
			}

			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid || claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(OwnerIDContextKey, claims.Subject)
			return next(c)
		}
	}
}

// OwnerID returns the caller id set by Identity, or "" when absent.
func OwnerID(c echo.Context) string {
	id, _ := c.Get(OwnerIDContextKey).(string)
	return id
}
