package domain

import "context"

// TokenVerifier confirms a bearer token against the identity authority.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*Identity, error)
}

// AccountStore creates account records in the external account store.
type AccountStore interface {
	CreateAccount(ctx context.Context, account Account) (*AccountRef, error)
}

// MailboxReader lists mailbox records from the backing resource service.
type MailboxReader interface {
	ListEmails(ctx context.Context, userID string) ([]Email, error)
}

// MessageSubmitter relays an outbound message to the backing store.
type MessageSubmitter interface {
	SubmitMessage(ctx context.Context, msg OutboundMessage) error
}

// TokenIssuer generates signed backend JWT tokens for downstream trust.
type TokenIssuer interface {
	IssueBackendToken(identity *Identity) (string, error)
}
