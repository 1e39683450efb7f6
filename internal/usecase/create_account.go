package usecase

import (
	"context"
	"log/slog"

	"mailhub/internal/domain"
	"mailhub/utils/validator"
)

// CreateAccountRequest carries the fields of a /manage-user submission.
type CreateAccountRequest struct {
	Username string `json:"username" form:"username" validate:"required,account_name"`
	Domain   string `json:"domain" form:"domain" validate:"required,fqdn"`
	Role     string `json:"role" form:"role" validate:"required,account_role"`
	Password string `json:"password" form:"password" validate:"required,account_password"`
}

// CreateAccount mediates account creation against the external account store.
// It does not own the uniqueness invariant: the store's constraint on
// (username, domain) is authoritative and its rejection is translated into a
// stable duplicate error.
type CreateAccount struct {
	sessions *ResolveSession
	store    domain.AccountStore
	validate *validator.Validator
	logger   *slog.Logger
}

// NewCreateAccount creates a new CreateAccount usecase.
func NewCreateAccount(s *ResolveSession, store domain.AccountStore, v *validator.Validator, l *slog.Logger) *CreateAccount {
	return &CreateAccount{sessions: s, store: store, validate: v, logger: l}
}

// Execute verifies the caller, validates the request and submits exactly one
// create to the store. Unauthenticated and unauthorized callers are rejected
// before the store is contacted; no failure path leaves a partial write.
func (uc *CreateAccount) Execute(ctx context.Context, req CreateAccountRequest, callerToken string) (*domain.AccountRef, error) {
	session, err := uc.sessions.ResolveToken(ctx, callerToken)
	if err != nil {
		return nil, err
	}

	if !session.Identity.IsAdmin() {
		uc.logger.WarnContext(ctx, "account create refused",
			"caller", session.Identity.Username,
			"reason", "missing admin role")
		return nil, domain.ErrForbidden
	}

	if err := uc.validate.Struct(req); err != nil {
		return nil, err
	}

	ref, err := uc.store.CreateAccount(ctx, domain.Account{
		Username: req.Username,
		Domain:   req.Domain,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "account created",
		"account", ref.Username+"@"+ref.Domain,
		"role", ref.Role,
		"caller", session.Identity.Username)
	return ref, nil
}
