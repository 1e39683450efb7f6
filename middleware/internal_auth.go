package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// internalAuthHeader carries the fleet-internal shared secret. The secret
// itself never appears in logs or error bodies.
const internalAuthHeader = "X-Internal-Auth"

// InternalAuth guards service-to-service endpoints such as the system-token
// mint with a shared secret. Both sides are hashed before comparison so the
// check is constant-time for inputs of any length.
func InternalAuth(secret string) echo.MiddlewareFunc {
	want := sha256.Sum256([]byte(secret))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			presented := c.Request().Header.Get(internalAuthHeader)
			if presented == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "internal credential required")
			}

			got := sha256.Sum256([]byte(presented))
			if subtle.ConstantTimeCompare(got[:], want[:]) != 1 {
				return echo.NewHTTPError(http.StatusForbidden, "internal credential rejected")
			}

			return next(c)
		}
	}
}
