package coreapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/pulgashop/envios-backend/pkg/errors"
)

const (
	defaultTimeout        = 10 * time.Second
	responseBodyReadLimit = int64(2048)
)

// Client talks to the PulgaShop core API, the collaborator that also persists
// deliveries and quote echoes. Every non-2xx response is wrapped with its
// HTTP status; callers decide whether the failure is degradable.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds a core API client for the given base URL. An empty base
// URL yields a client whose calls all fail as dependency errors, which the
// delivery workflow degrades around.
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

// CreateDelivery persists a delivery remotely and returns the backend-issued
// identifiers.
func (c *Client) CreateDelivery(ctx context.Context, payload DeliveryPayload) (*CreatedDelivery, error) {
	if c == nil || c.baseURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "core api not configured")
	}

	var created CreatedDelivery
	if err := c.postJSON(ctx, "/deliveries", payload, &created); err != nil {
		return nil, err
	}
	if strings.TrimSpace(created.ID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "core api returned delivery without id")
	}
	return &created, nil
}

// CreateAddress mirrors a saved address to the core API. The local store is
// the system of record for addresses; this write is best effort.
func (c *Client) CreateAddress(ctx context.Context, payload AddressPayload) error {
	if c == nil || c.baseURL == "" {
		return pkgerrors.New(pkgerrors.CodeDependency, "core api not configured")
	}
	return c.postJSON(ctx, "/addresses", payload, nil)
}

// ListDeliveries fetches the remote delivery list for a user.
func (c *Client) ListDeliveries(ctx context.Context, userID string) ([]DeliveryPayload, error) {
	if c == nil || c.baseURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "core api not configured")
	}

	query := url.Values{}
	query.Set("userId", userID)

	var deliveries []DeliveryPayload
	if err := c.getJSON(ctx, "/deliveries", query, &deliveries); err != nil {
		return nil, err
	}
	return deliveries, nil
}

// RecordQuote forwards the raw quote echo for remote persistence.
func (c *Client) RecordQuote(ctx context.Context, payload json.RawMessage) error {
	if c == nil || c.baseURL == "" {
		return pkgerrors.New(pkgerrors.CodeDependency, "core api not configured")
	}
	return c.postJSON(ctx, "/quotes/record", payload, nil)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal core api request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build core api request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return c.execute(httpReq, dest)
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build core api request")
	}
	httpReq.Header.Set("Accept", "application/json")

	return c.execute(httpReq, dest)
}

func (c *Client) execute(req *http.Request, dest any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute core api request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return pkgerrors.Wrap(
			pkgerrors.CodeDependency,
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			"core api request failed",
		)
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode core api response")
	}
	return nil
}
