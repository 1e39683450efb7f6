package handler

import (
	"net/http"
	"strings"

	"mailhub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ValidateHandler handles /validate for ingress auth_request checks: headers
// only, no body, so the ingress can forward identity to upstream services.
type ValidateHandler struct {
	sessions *usecase.ResolveSession
}

// NewValidateHandler creates a new validate handler.
func NewValidateHandler(sessions *usecase.ResolveSession) *ValidateHandler {
	return &ValidateHandler{sessions: sessions}
}

// Handle processes the /validate endpoint.
func (h *ValidateHandler) Handle(c echo.Context) error {
	session, err := h.sessions.Execute(c.Request().Context(), c.Request().Header.Get("Authorization"), cookieValue(c))
	if err != nil {
		return mapDomainError(err)
	}

	c.Response().Header().Set("X-Mail-User", session.Identity.Username)
	c.Response().Header().Set("X-Mail-Roles", strings.Join(session.Identity.Roles, ","))
	return c.NoContent(http.StatusOK)
}
