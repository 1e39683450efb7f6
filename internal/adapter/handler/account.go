package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"mailhub/internal/domain"
	"mailhub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AccountHandler handles /manage-user account creation requests.
type AccountHandler struct {
	uc *usecase.CreateAccount
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(uc *usecase.CreateAccount) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// manageUserRequest binds the /manage-user form fields. The caller token is
// accepted as a form field for legacy admin clients, with the Authorization
// header taking precedence.
type manageUserRequest struct {
	usecase.CreateAccountRequest
	Token string `form:"token" json:"token"`
}

// Handle processes POST /manage-user.
func (h *AccountHandler) Handle(c echo.Context) error {
	ctx := c.Request().Context()

	var req manageUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	token := bearerFromHeader(c)
	if token == "" {
		token = req.Token
	}

	ref, err := h.uc.Execute(ctx, req.CreateAccountRequest, token)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateAccount) {
			// The conflict body identifies the offending key so admin
			// clients can detect the duplicate without parsing messages.
			return echo.NewHTTPError(http.StatusBadRequest, echo.Map{
				"error":    "account already exists",
				"username": req.Username,
				"domain":   req.Domain,
			})
		}
		return mapDomainError(err)
	}

	slog.InfoContext(ctx, "manage-user create handled", "account", ref.Username+"@"+ref.Domain)
	return c.JSON(http.StatusOK, ref)
}
