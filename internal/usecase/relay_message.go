package usecase

import (
	"context"
	"log/slog"
	"strings"

	"mailhub/internal/domain"
	"mailhub/utils/validator"
)

// SendRequest carries the fields of a /send submission.
type SendRequest struct {
	From    string `json:"from" validate:"required,email"`
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"max=998"`
	Body    string `json:"body"`
}

// RelayMessage authenticates a caller and relays an outbound message to the
// backing store's submission queue.
type RelayMessage struct {
	sessions  *ResolveSession
	submitter domain.MessageSubmitter
	logger    *slog.Logger
	validate  *validator.Validator
}

// NewRelayMessage creates a new RelayMessage usecase.
func NewRelayMessage(s *ResolveSession, sub domain.MessageSubmitter, v *validator.Validator, l *slog.Logger) *RelayMessage {
	return &RelayMessage{sessions: s, submitter: sub, validate: v, logger: l}
}

// Execute resolves the caller's session and relays the message. The sender
// address must belong to the resolved identity unless the caller holds the
// admin role.
func (uc *RelayMessage) Execute(ctx context.Context, req SendRequest, callerToken string) error {
	session, err := uc.sessions.ResolveToken(ctx, callerToken)
	if err != nil {
		return err
	}

	if err := uc.validate.Struct(req); err != nil {
		return err
	}

	if localPart(req.From) != session.Identity.Username && !session.Identity.IsAdmin() {
		uc.logger.WarnContext(ctx, "submission refused",
			"caller", session.Identity.Username,
			"from", req.From)
		return domain.ErrForbidden
	}

	if err := uc.submitter.SubmitMessage(ctx, domain.OutboundMessage{
		From:    req.From,
		To:      req.To,
		Subject: req.Subject,
		Body:    req.Body,
	}); err != nil {
		return err
	}

	uc.logger.InfoContext(ctx, "message relayed", "from", req.From, "to", req.To)
	return nil
}

func localPart(address string) string {
	local, _, _ := strings.Cut(address, "@")
	return local
}
