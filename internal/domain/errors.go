package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Authentication and authorization errors.
var (
	ErrTokenMissing    = errors.New("bearer token missing")
	ErrTokenInvalid    = errors.New("token rejected by identity authority")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("insufficient role")
)

// Account registry errors.
var (
	ErrDuplicateAccount = errors.New("account already exists")
)

// External service errors.
var (
	ErrAuthorityUnavailable = errors.New("identity authority unavailable")
	ErrStoreUnavailable     = errors.New("backing store unavailable")
)

// Token issuance errors.
var (
	ErrTokenGeneration = errors.New("token generation failed")
)

// Rate limiting errors.
var (
	ErrRateLimited = errors.New("rate limit exceeded")
)

// ValidationError reports field-level input violations. Fields maps the
// offending field name to a human-readable message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// UpstreamError carries a non-success status returned by the backing
// resource service. The message is redacted before it reaches callers.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Message)
}
