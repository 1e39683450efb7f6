package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"mailhub/internal/domain"
)

// ResolveSession turns an inbound request credential into a request-scoped
// session by consulting the identity authority. Sessions are never cached or
// reused between requests; every protected operation re-resolves.
type ResolveSession struct {
	verifier domain.TokenVerifier
	logger   *slog.Logger
}

// NewResolveSession creates a new ResolveSession usecase.
func NewResolveSession(v domain.TokenVerifier, l *slog.Logger) *ResolveSession {
	return &ResolveSession{verifier: v, logger: l}
}

// Execute resolves the credential carried by an Authorization header, falling
// back to a session cookie value when no header is present. A missing or
// malformed credential yields domain.ErrUnauthenticated, never a panic; only
// an unreachable authority propagates as a distinct internal error.
func (uc *ResolveSession) Execute(ctx context.Context, authorizationHeader, cookieToken string) (*domain.Session, error) {
	token := extractBearer(authorizationHeader)
	if token == "" {
		token = cookieToken
	}
	if token == "" {
		return nil, fmt.Errorf("%w: no credential presented", domain.ErrUnauthenticated)
	}
	return uc.ResolveToken(ctx, token)
}

// ResolveToken resolves a raw bearer token. Verification strictly precedes
// any domain operation: callers must not proceed on error.
func (uc *ResolveSession) ResolveToken(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: no credential presented", domain.ErrUnauthenticated)
	}

	identity, err := uc.verifier.VerifyToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrAuthorityUnavailable) {
			// Fail closed, but keep the transport failure distinguishable
			// from an authorization decision.
			uc.logger.ErrorContext(ctx, "identity authority unreachable during resolve", "error", err)
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}

	return &domain.Session{Identity: *identity, Token: token}, nil
}

// extractBearer pulls the token out of an "Authorization: Bearer <token>"
// header. A header missing the Bearer scheme is a caller contract violation
// and yields an empty token without any authority call.
func extractBearer(header string) string {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
