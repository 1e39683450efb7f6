package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"mailhub/internal/domain"
	"mailhub/internal/metrics"
)

// StorageGateway relays account and mailbox operations to the backing
// resource service. Implements domain.AccountStore, domain.MailboxReader and
// domain.MessageSubmitter.
type StorageGateway struct {
	baseURL    string
	httpClient *http.Client
	collector  *metrics.Collector
}

// NewStorageGateway creates a new storage gateway with tuned HTTP transport.
func NewStorageGateway(baseURL string, timeout time.Duration, collector *metrics.Collector) *StorageGateway {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	return &StorageGateway{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		collector: collector,
	}
}

// storeError is the backing store's error payload shape.
type storeError struct {
	Error string `json:"error"`
}

// CreateAccount submits a new account record. The store's unique constraint
// on (username, domain) is authoritative: a 409 is translated into
// domain.ErrDuplicateAccount, everything else non-2xx into
// domain.ErrStoreUnavailable.
func (g *StorageGateway) CreateAccount(ctx context.Context, account domain.Account) (*domain.AccountRef, error) {
	payload, err := json.Marshal(account)
	if err != nil {
		return nil, fmt.Errorf("encode account: %w", err)
	}

	url := fmt.Sprintf("%s/accounts", g.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.collector.RecordStoreCall("accounts", "transport_error")
		slog.ErrorContext(ctx, "account store unreachable", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		g.collector.RecordStoreCall("accounts", "created")
		return &domain.AccountRef{
			Username: account.Username,
			Domain:   account.Domain,
			Role:     account.Role,
		}, nil

	case resp.StatusCode == http.StatusConflict:
		g.collector.RecordStoreCall("accounts", "duplicate")
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateAccount, account.Key())

	default:
		g.collector.RecordStoreCall("accounts", "error")
		slog.ErrorContext(ctx, "account store rejected create",
			"status", resp.StatusCode,
			"detail", readStoreError(resp.Body))
		return nil, fmt.Errorf("%w: store returned status %d", domain.ErrStoreUnavailable, resp.StatusCode)
	}
}

// ListEmails fetches the mailbox records for userID. Record order is
// preserved exactly as returned by the store.
func (g *StorageGateway) ListEmails(ctx context.Context, userID string) ([]domain.Email, error) {
	reqURL := fmt.Sprintf("%s/emails?user_id=%s", g.baseURL, url.QueryEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.collector.RecordStoreCall("emails", "transport_error")
		slog.ErrorContext(ctx, "resource service unreachable", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.collector.RecordStoreCall("emails", "error")
		return nil, &domain.UpstreamError{
			Status:  resp.StatusCode,
			Message: "resource service error",
		}
	}

	var emails []domain.Email
	if err := json.NewDecoder(resp.Body).Decode(&emails); err != nil {
		g.collector.RecordStoreCall("emails", "transport_error")
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	if emails == nil {
		// A store body of JSON null must render as [] to clients.
		emails = []domain.Email{}
	}

	g.collector.RecordStoreCall("emails", "ok")
	return emails, nil
}

// SubmitMessage relays an outbound message to the store's submission queue.
// Single hop, no retries.
func (g *StorageGateway) SubmitMessage(ctx context.Context, msg domain.OutboundMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	url := fmt.Sprintf("%s/outbound", g.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.collector.RecordStoreCall("outbound", "transport_error")
		slog.ErrorContext(ctx, "submission service unreachable", "error", err)
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		g.collector.RecordStoreCall("outbound", "error")
		return &domain.UpstreamError{
			Status:  resp.StatusCode,
			Message: "submission rejected",
		}
	}

	g.collector.RecordStoreCall("outbound", "ok")
	return nil
}

// readStoreError extracts the store's error detail for server-side logs.
func readStoreError(r io.Reader) string {
	var body storeError
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&body); err != nil {
		return ""
	}
	return body.Error
}
