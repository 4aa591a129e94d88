package postal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/pulgashop/envios-backend/pkg/errors"
)

const (
	defaultTimeout        = 10 * time.Second
	responseBodyReadLimit = int64(2048)
	treeCacheKey          = "postal:regions-with-communes"
)

// Cache mirrors the carrier cache surface so both clients can share a backend.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// Client consumes the postal-code API's region/commune hierarchy.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      Cache
	cacheTTL   time.Duration
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

// WithCache installs a session-lifetime cache for the hierarchy.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// NewClient builds a postal-code API client for the given base URL.
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

// RegionsWithCommunes fetches the full three-level hierarchy. The upstream
// payload is heterogeneous, so it is normalized exactly once here; callers
// only ever see the canonical shape.
func (c *Client) RegionsWithCommunes(ctx context.Context) ([]Region, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "postal client not configured")
	}

	if c.cache != nil {
		if raw, found, err := c.cache.Get(ctx, treeCacheKey); err == nil && found {
			var regions []Region
			if err := json.Unmarshal(raw, &regions); err == nil {
				return regions, nil
			}
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/regions/with-communes", nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build postal request")
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute postal request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return nil, pkgerrors.Wrap(
			pkgerrors.CodeDependency,
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			"postal request failed",
		)
	}

	var rows []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode postal response")
	}

	regions := normalizeRegions(rows)

	if c.cache != nil {
		if raw, err := json.Marshal(regions); err == nil {
			_ = c.cache.Set(ctx, treeCacheKey, raw, c.cacheTTL)
		}
	}

	return regions, nil
}
