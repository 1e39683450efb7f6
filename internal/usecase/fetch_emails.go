package usecase

import (
	"context"
	"log/slog"

	"mailhub/internal/domain"
)

// FetchEmails authenticates a caller and relays a scoped mailbox read to the
// backing resource service. Single hop: no retries, no aggregation.
type FetchEmails struct {
	sessions *ResolveSession
	mailbox  domain.MailboxReader
	logger   *slog.Logger
}

// NewFetchEmails creates a new FetchEmails usecase.
func NewFetchEmails(s *ResolveSession, m domain.MailboxReader, l *slog.Logger) *FetchEmails {
	return &FetchEmails{sessions: s, mailbox: m, logger: l}
}

// Execute resolves the caller's session, then relays the read. Verification
// strictly precedes every other check: an unauthenticated caller learns
// nothing about the request's validity. The requested user_id must match the
// resolved identity unless the caller holds the admin role; the backing store
// is never contacted on any refusal.
func (uc *FetchEmails) Execute(ctx context.Context, userID, callerToken string) ([]domain.Email, error) {
	session, err := uc.sessions.ResolveToken(ctx, callerToken)
	if err != nil {
		return nil, err
	}

	if userID == "" {
		return nil, domain.NewValidationError("user_id", "user_id is required")
	}

	if session.Identity.Username != userID && !session.Identity.IsAdmin() {
		uc.logger.WarnContext(ctx, "mailbox read refused",
			"caller", session.Identity.Username,
			"requested_user", userID)
		return nil, domain.ErrForbidden
	}

	emails, err := uc.mailbox.ListEmails(ctx, userID)
	if err != nil {
		return nil, err
	}
	return emails, nil
}
