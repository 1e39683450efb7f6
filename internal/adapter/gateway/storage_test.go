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

func testAccount() domain.Account {
	return domain.Account{
		Username: "itestuser",
		Domain:   "example.com",
		Role:     "user",
		Password: "TempPass1!",
	}
}

func TestStorageGateway_CreateAccount_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/accounts", r.URL.Path)

		var account domain.Account
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&account))
		assert.Equal(t, "itestuser", account.Username)

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	gw := NewStorageGateway(server.URL, 5*time.Second, nil)
	ref, err := gw.CreateAccount(context.Background(), testAccount())

	assert.NoError(t, err)
	assert.Equal(t, "itestuser", ref.Username)
	assert.Equal(t, "example.com", ref.Domain)
	assert.Equal(t, "user", ref.Role)
}

func TestStorageGateway_CreateAccount_Conflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	gw := NewStorageGateway(server.URL, 5*time.Second, nil)
	ref, err := gw.CreateAccount(context.Background(), testAccount())

	assert.Nil(t, ref)
	assert.True(t, errors.Is(err, domain.ErrDuplicateAccount))
	assert.False(t, errors.Is(err, domain.ErrStoreUnavailable))
	assert.Contains(t, err.Error(), "itestuser@example.com")
}

func TestStorageGateway_CreateAccount_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(storeError{Error: "disk full"})
	}))
	defer server.Close()

	gw := NewStorageGateway(server.URL, 5*time.Second, nil)
	ref, err := gw.CreateAccount(context.Background(), testAccount())

	assert.Nil(t, ref)
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
}

func TestStorageGateway_CreateAccount_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	gw := NewStorageGateway(server.URL, 1*time.Second, nil)
	ref, err := gw.CreateAccount(context.Background(), testAccount())

	assert.Nil(t, ref)
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
}

func TestStorageGateway_ListEmails_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "u1", r.URL.Query().Get("user_id"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]domain.Email{
			{ID: "m2", Subject: "newer"},
			{ID: "m1", Subject: "older"},
		})
	}))
	defer server.Close()

	gw := NewStorageGateway(server.URL, 5*time.Second, nil)
	emails, err := gw.ListEmails(context.Background(), "u1")

	assert.NoError(t, err)
	assert.Len(t, emails, 2)
	assert.Equal(t, "m2", emails[0].ID, "order must be preserved as returned")
}

func TestStorageGateway_ListEmails_NullBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("null"))
	}))
	defer server.Close()

	gw := NewStorageGateway(server.URL, 5*time.Second, nil)
	emails, err := gw.ListEmails(context.Background(), "u1")

	assert.NoError(t, err)
	// An empty mailbox renders as [] to clients, never null.
	assert.NotNil(t, emails)
	assert.Len(t, emails, 0)
}

func TestStorageGateway_ListEmails_UpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	gw := NewStorageGateway(server.URL, 5*time.Second, nil)
	emails, err := gw.ListEmails(context.Background(), "u1")

	assert.Nil(t, emails)
	var upErr *domain.UpstreamError
	assert.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusServiceUnavailable, upErr.Status)
}

func TestStorageGateway_SubmitMessage_Accepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/outbound", r.URL.Path)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	gw := NewStorageGateway(server.URL, 5*time.Second, nil)
	err := gw.SubmitMessage(context.Background(), domain.OutboundMessage{From: "u1@example.com", To: "x@y.com"})

	assert.NoError(t, err)
}

func TestStorageGateway_SubmitMessage_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	gw := NewStorageGateway(server.URL, 5*time.Second, nil)
	err := gw.SubmitMessage(context.Background(), domain.OutboundMessage{From: "u1@example.com", To: "x@y.com"})

	var upErr *domain.UpstreamError
	assert.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusBadGateway, upErr.Status)
}
