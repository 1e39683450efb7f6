package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"mailhub/internal/domain"
	"mailhub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// sessionCookieName is the fallback credential for browser clients that
// cannot set an Authorization header.
const sessionCookieName = "mail_session"

// SessionHandler handles /api/session returning the resolved identity as
// JSON for the web client.
type SessionHandler struct {
	sessions *usecase.ResolveSession
	issuer   domain.TokenIssuer
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessions *usecase.ResolveSession, issuer domain.TokenIssuer) *SessionHandler {
	return &SessionHandler{sessions: sessions, issuer: issuer}
}

// sessionResponse represents the JSON response structure.
type sessionResponse struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	Active   bool     `json:"active"`
}

// Handle processes the /api/session endpoint. Unauthenticated callers get a
// 401 with an empty body; every call re-resolves against the authority.
func (h *SessionHandler) Handle(c echo.Context) error {
	session, err := h.sessions.Execute(c.Request().Context(), c.Request().Header.Get("Authorization"), cookieValue(c))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return c.NoContent(http.StatusUnauthorized)
		}
		return mapDomainError(err)
	}

	// Short-lived trust token for calls the client makes to backend services.
	backendToken, err := h.issuer.IssueBackendToken(&session.Identity)
	if err != nil {
		slog.ErrorContext(c.Request().Context(), "failed to issue backend token",
			"error", err,
			"user", session.Identity.Username)
		return mapDomainError(fmt.Errorf("%w: %w", domain.ErrTokenGeneration, err))
	}
	c.Response().Header().Set("X-Mail-Backend-Token", backendToken)

	return c.JSON(http.StatusOK, sessionResponse{
		Username: session.Identity.Username,
		Roles:    session.Identity.Roles,
		Active:   true,
	})
}

// cookieValue returns the session cookie value, or empty when absent.
func cookieValue(c echo.Context) string {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
