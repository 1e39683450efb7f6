package token

import (
	"time"

	"mailhub/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig holds JWT generation configuration.
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// backendClaims represents the JWT claims for backend service trust.
type backendClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTIssuer generates JWT tokens for downstream service trust.
// Implements domain.TokenIssuer.
type JWTIssuer struct {
	cfg JWTConfig
}

// NewJWTIssuer creates a new JWT issuer.
func NewJWTIssuer(cfg JWTConfig) *JWTIssuer {
	return &JWTIssuer{cfg: cfg}
}

// IssueBackendToken generates a signed JWT token for the identity.
func (j *JWTIssuer) IssueBackendToken(identity *domain.Identity) (string, error) {
	now := time.Now()
	claims := backendClaims{
		Roles: identity.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.cfg.Issuer,
			Audience:  jwt.ClaimStrings{j.cfg.Audience},
			Subject:   identity.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.cfg.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.cfg.Secret))
}
