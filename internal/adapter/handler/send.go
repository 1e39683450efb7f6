package handler

import (
	"net/http"

	"mailhub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SendHandler handles /send submissions on the SMTP-shaped gateway.
type SendHandler struct {
	uc *usecase.RelayMessage
}

// NewSendHandler creates a new send handler.
func NewSendHandler(uc *usecase.RelayMessage) *SendHandler {
	return &SendHandler{uc: uc}
}

// sendResponse acknowledges an accepted submission.
type sendResponse struct {
	Status string `json:"status"`
}

// Handle processes POST /send.
func (h *SendHandler) Handle(c echo.Context) error {
	var req usecase.SendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	if err := h.uc.Execute(c.Request().Context(), req, bearerFromHeader(c)); err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusAccepted, sendResponse{Status: "queued"})
}
