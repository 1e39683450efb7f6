package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"mailhub/internal/domain"

	"github.com/stretchr/testify/assert"
)

// mockVerifier implements domain.TokenVerifier for testing.
type mockVerifier struct {
	identity *domain.Identity
	err      error
	calls    int
}

func (m *mockVerifier) VerifyToken(_ context.Context, _ string) (*domain.Identity, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.identity, nil
}

func adminIdentity() *domain.Identity {
	return &domain.Identity{Username: "admin", Roles: []string{"admin"}, Status: "ok"}
}

func TestResolveSession_BearerHeader(t *testing.T) {
	verifier := &mockVerifier{identity: adminIdentity()}
	uc := NewResolveSession(verifier, slog.Default())

	session, err := uc.Execute(context.Background(), "Bearer token-abc", "")

	assert.NoError(t, err)
	assert.Equal(t, "admin", session.Identity.Username)
	assert.Equal(t, "token-abc", session.Token)
	assert.Equal(t, 1, verifier.calls)
}

func TestResolveSession_CookieFallback(t *testing.T) {
	verifier := &mockVerifier{identity: adminIdentity()}
	uc := NewResolveSession(verifier, slog.Default())

	session, err := uc.Execute(context.Background(), "", "cookie-token")

	assert.NoError(t, err)
	assert.Equal(t, "cookie-token", session.Token)
}

func TestResolveSession_HeaderTakesPrecedence(t *testing.T) {
	verifier := &mockVerifier{identity: adminIdentity()}
	uc := NewResolveSession(verifier, slog.Default())

	session, err := uc.Execute(context.Background(), "Bearer header-token", "cookie-token")

	assert.NoError(t, err)
	assert.Equal(t, "header-token", session.Token)
}

func TestResolveSession_NoCredential(t *testing.T) {
	verifier := &mockVerifier{identity: adminIdentity()}
	uc := NewResolveSession(verifier, slog.Default())

	session, err := uc.Execute(context.Background(), "", "")

	assert.Nil(t, session)
	assert.True(t, errors.Is(err, domain.ErrUnauthenticated))
	assert.Equal(t, 0, verifier.calls, "no authority call without a credential")
}

func TestResolveSession_MalformedScheme(t *testing.T) {
	verifier := &mockVerifier{identity: adminIdentity()}
	uc := NewResolveSession(verifier, slog.Default())

	session, err := uc.Execute(context.Background(), "Basic dXNlcjpwYXNz", "")

	assert.Nil(t, session)
	assert.True(t, errors.Is(err, domain.ErrUnauthenticated))
	assert.Equal(t, 0, verifier.calls, "malformed scheme must fail fast")
}

func TestResolveSession_AuthorityRejects(t *testing.T) {
	verifier := &mockVerifier{err: domain.ErrTokenInvalid}
	uc := NewResolveSession(verifier, slog.Default())

	session, err := uc.Execute(context.Background(), "Bearer rejected", "")

	assert.Nil(t, session)
	assert.True(t, errors.Is(err, domain.ErrUnauthenticated))
}

func TestResolveSession_AuthorityUnreachable(t *testing.T) {
	verifier := &mockVerifier{err: domain.ErrAuthorityUnavailable}
	uc := NewResolveSession(verifier, slog.Default())

	session, err := uc.Execute(context.Background(), "Bearer any", "")

	assert.Nil(t, session)
	// Fail closed, but as a distinguishable internal error.
	assert.True(t, errors.Is(err, domain.ErrAuthorityUnavailable))
	assert.False(t, errors.Is(err, domain.ErrUnauthenticated))
}

func TestResolveToken_Empty(t *testing.T) {
	verifier := &mockVerifier{identity: adminIdentity()}
	uc := NewResolveSession(verifier, slog.Default())

	session, err := uc.ResolveToken(context.Background(), "")

	assert.Nil(t, session)
	assert.True(t, errors.Is(err, domain.ErrUnauthenticated))
	assert.Equal(t, 0, verifier.calls)
}
