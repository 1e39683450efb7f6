package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"mailhub/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized},
		{"token missing", domain.ErrTokenMissing, http.StatusUnauthorized},
		{"token invalid", domain.ErrTokenInvalid, http.StatusUnauthorized},
		{"wrapped token invalid", fmt.Errorf("verify: %w", domain.ErrTokenInvalid), http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"duplicate account", domain.ErrDuplicateAccount, http.StatusBadRequest},
		{"authority unavailable", domain.ErrAuthorityUnavailable, http.StatusBadGateway},
		{"store unavailable", domain.ErrStoreUnavailable, http.StatusBadGateway},
		{"token generation", domain.ErrTokenGeneration, http.StatusInternalServerError},
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := mapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.Code)
		})
	}
}

func TestMapDomainError_ValidationFields(t *testing.T) {
	err := &domain.ValidationError{Fields: map[string]string{"username": "username is required"}}

	httpErr := mapDomainError(err)

	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	body, ok := httpErr.Message.(echo.Map)
	require.True(t, ok)
	fields, ok := body["fields"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "username is required", fields["username"])
}

func TestMapDomainError_UpstreamStatusForwarded(t *testing.T) {
	httpErr := mapDomainError(&domain.UpstreamError{Status: http.StatusServiceUnavailable, Message: "down"})
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.Code)

	// Sub-4xx upstream statuses are not forwarded as-is.
	httpErr = mapDomainError(&domain.UpstreamError{Status: http.StatusFound, Message: "redirect"})
	assert.Equal(t, http.StatusBadGateway, httpErr.Code)
}

func TestMapDomainError_UnknownGetsCorrelationID(t *testing.T) {
	httpErr := mapDomainError(errors.New("disk on fire"))

	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	body, ok := httpErr.Message.(echo.Map)
	require.True(t, ok)
	assert.Equal(t, "internal error", body["error"])
	assert.NotEmpty(t, body["correlation_id"])
	// The raw error text never reaches the client.
	assert.NotContains(t, fmt.Sprint(body), "disk on fire")
}
