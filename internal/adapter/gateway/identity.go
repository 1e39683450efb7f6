package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"mailhub/internal/domain"
	"mailhub/internal/metrics"
)

// IdentityGateway verifies bearer tokens against the identity authority.
// Implements domain.TokenVerifier.
type IdentityGateway struct {
	baseURL    string
	httpClient *http.Client
	collector  *metrics.Collector
}

// NewIdentityGateway creates a new identity gateway with tuned HTTP transport.
// Credentials are attached per request, never to the shared client.
func NewIdentityGateway(baseURL string, timeout time.Duration, collector *metrics.Collector) *IdentityGateway {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	return &IdentityGateway{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		collector: collector,
	}
}

// verifyResponse is the identity authority's /verify payload.
type verifyResponse struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	Status   string   `json:"status"`
}

// VerifyToken issues a single GET /verify to the identity authority.
// Any non-200 status means "not verified". Transport failures are reported as
// domain.ErrAuthorityUnavailable and never conflated with an authorization
// decision. No retries, no caching.
func (g *IdentityGateway) VerifyToken(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, domain.ErrTokenMissing
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	url := fmt.Sprintf("%s/verify", g.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthorityUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.collector.RecordAuthorityCall("transport_error")
		slog.ErrorContext(ctx, "identity authority unreachable", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthorityUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.collector.RecordAuthorityCall("rejected")
		return nil, fmt.Errorf("%w: authority returned status %d", domain.ErrTokenInvalid, resp.StatusCode)
	}

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		g.collector.RecordAuthorityCall("transport_error")
		slog.ErrorContext(ctx, "malformed verify response", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthorityUnavailable, err)
	}

	// The authority may answer 200 with an error status in the body.
	if body.Status != "" && body.Status != "ok" {
		g.collector.RecordAuthorityCall("rejected")
		return nil, fmt.Errorf("%w: authority reported status %q", domain.ErrTokenInvalid, body.Status)
	}

	g.collector.RecordAuthorityCall("verified")
	return &domain.Identity{
		Username: body.Username,
		Roles:    body.Roles,
		Status:   body.Status,
	}, nil
}
