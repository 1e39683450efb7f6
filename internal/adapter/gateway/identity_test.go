package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mailhub/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestIdentityGateway_VerifyToken_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/verify", r.URL.Path)
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(verifyResponse{
			Username: "admin",
			Roles:    []string{"admin"},
			Status:   "ok",
		})
	}))
	defer server.Close()

	gw := NewIdentityGateway(server.URL, 5*time.Second, nil)
	identity, err := gw.VerifyToken(context.Background(), "token-abc")

	assert.NoError(t, err)
	assert.Equal(t, "admin", identity.Username)
	assert.True(t, identity.HasRole("admin"))
}

func TestIdentityGateway_VerifyToken_EmptyToken(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	gw := NewIdentityGateway(server.URL, 5*time.Second, nil)
	identity, err := gw.VerifyToken(context.Background(), "")

	assert.Nil(t, identity)
	assert.True(t, errors.Is(err, domain.ErrTokenMissing))
	assert.Equal(t, 0, calls, "empty token must fail fast without a network call")
}

func TestIdentityGateway_VerifyToken_Rejected(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		gw := NewIdentityGateway(server.URL, 5*time.Second, nil)
		identity, err := gw.VerifyToken(context.Background(), "some-token")

		assert.Nil(t, identity)
		assert.True(t, errors.Is(err, domain.ErrTokenInvalid), "status %d must mean not verified", status)
		server.Close()
	}
}

func TestIdentityGateway_VerifyToken_ErrorStatusInBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(verifyResponse{Username: "bob", Status: "error"})
	}))
	defer server.Close()

	gw := NewIdentityGateway(server.URL, 5*time.Second, nil)
	identity, err := gw.VerifyToken(context.Background(), "some-token")

	assert.Nil(t, identity)
	assert.True(t, errors.Is(err, domain.ErrTokenInvalid))
}

func TestIdentityGateway_VerifyToken_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	gw := NewIdentityGateway(server.URL, 1*time.Second, nil)
	identity, err := gw.VerifyToken(context.Background(), "some-token")

	assert.Nil(t, identity)
	assert.True(t, errors.Is(err, domain.ErrAuthorityUnavailable))
	assert.False(t, errors.Is(err, domain.ErrTokenInvalid), "transport failure is not an authorization decision")
}

func TestIdentityGateway_VerifyToken_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	gw := NewIdentityGateway(server.URL, 5*time.Second, nil)
	identity, err := gw.VerifyToken(context.Background(), "some-token")

	assert.Nil(t, identity)
	assert.True(t, errors.Is(err, domain.ErrAuthorityUnavailable))
}
