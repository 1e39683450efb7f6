package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"mailhub/internal/domain"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// mapDomainError converts a domain error into an appropriate echo.HTTPError.
// Unanticipated errors are logged with full context and surfaced only as an
// opaque message plus a correlation identifier.
func mapDomainError(err error) *echo.HTTPError {
	var validationErr *domain.ValidationError
	var upstreamErr *domain.UpstreamError

	switch {
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrTokenMissing),
		errors.Is(err, domain.ErrTokenInvalid):
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")

	case errors.Is(err, domain.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "insufficient role")

	case errors.As(err, &validationErr):
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{
			"error":  "validation failed",
			"fields": validationErr.Fields,
		})

	case errors.Is(err, domain.ErrDuplicateAccount):
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{
			"error": "account already exists",
		})

	case errors.As(err, &upstreamErr):
		// Forward the upstream status where feasible, message redacted.
		status := upstreamErr.Status
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		return echo.NewHTTPError(status, "upstream service error")

	case errors.Is(err, domain.ErrAuthorityUnavailable):
		return echo.NewHTTPError(http.StatusBadGateway, "identity authority unavailable")

	case errors.Is(err, domain.ErrStoreUnavailable):
		return echo.NewHTTPError(http.StatusBadGateway, "backing service unavailable")

	case errors.Is(err, domain.ErrTokenGeneration):
		return echo.NewHTTPError(http.StatusInternalServerError, "token generation error")

	case errors.Is(err, domain.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")

	default:
		correlationID := uuid.NewString()
		slog.Error("unhandled error", "error", err, "correlation_id", correlationID)
		return echo.NewHTTPError(http.StatusInternalServerError, echo.Map{
			"error":          "internal error",
			"correlation_id": correlationID,
		})
	}
}
