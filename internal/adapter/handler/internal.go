package handler

import (
	"log/slog"
	"net/http"

	"mailhub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// InternalHandler handles internal service-to-service requests.
type InternalHandler struct {
	uc *usecase.IssueSystemToken
}

// NewInternalHandler creates a new internal handler.
func NewInternalHandler(uc *usecase.IssueSystemToken) *InternalHandler {
	return &InternalHandler{uc: uc}
}

// systemTokenResponse represents the response for the system token endpoint.
type systemTokenResponse struct {
	Token string `json:"token"`
}

// HandleSystemToken mints a backend token for internal jobs.
func (h *InternalHandler) HandleSystemToken(c echo.Context) error {
	ctx := c.Request().Context()

	token, err := h.uc.Execute(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to issue system token", "error", err, "remote_addr", c.RealIP())
		return mapDomainError(err)
	}

	slog.InfoContext(ctx, "system token issued", "remote_addr", c.RealIP())
	return c.JSON(http.StatusOK, systemTokenResponse{Token: token})
}
