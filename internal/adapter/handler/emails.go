package handler

import (
	"net/http"
	"strings"

	"mailhub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// EmailsHandler handles /emails mailbox reads on the IMAP-shaped gateway.
type EmailsHandler struct {
	uc *usecase.FetchEmails
}

// NewEmailsHandler creates a new emails handler.
func NewEmailsHandler(uc *usecase.FetchEmails) *EmailsHandler {
	return &EmailsHandler{uc: uc}
}

// Handle processes GET /emails?user_id=<id>.
func (h *EmailsHandler) Handle(c echo.Context) error {
	emails, err := h.uc.Execute(c.Request().Context(), c.QueryParam("user_id"), bearerFromHeader(c))
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, emails)
}

// bearerFromHeader extracts the raw bearer token from the request, or empty.
func bearerFromHeader(c echo.Context) string {
	token, ok := strings.CutPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
