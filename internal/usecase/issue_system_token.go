package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"mailhub/internal/domain"
)

// IssueSystemToken mints a backend token for the configured system user so
// internal jobs can call downstream services without a user session.
type IssueSystemToken struct {
	issuer     domain.TokenIssuer
	systemUser string
	logger     *slog.Logger
}

// NewIssueSystemToken creates a new IssueSystemToken usecase.
func NewIssueSystemToken(issuer domain.TokenIssuer, systemUser string, l *slog.Logger) *IssueSystemToken {
	return &IssueSystemToken{issuer: issuer, systemUser: systemUser, logger: l}
}

// Execute issues a signed token carrying the system role.
func (uc *IssueSystemToken) Execute(ctx context.Context) (string, error) {
	token, err := uc.issuer.IssueBackendToken(&domain.Identity{
		Username: uc.systemUser,
		Roles:    []string{"system"},
		Status:   "ok",
	})
	if err != nil {
		uc.logger.ErrorContext(ctx, "failed to issue system token", "error", err)
		return "", fmt.Errorf("%w: %w", domain.ErrTokenGeneration, err)
	}
	return token, nil
}
