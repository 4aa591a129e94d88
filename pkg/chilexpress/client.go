package chilexpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/pulgashop/envios-backend/pkg/errors"
)

const (
	defaultBaseURL             = "https://services.wschilexpress.com"
	responseBodyReadLimit      = int64(2048)
	defaultTimeout             = 10 * time.Second
	regionsCacheKey            = "regions"
	coverageCacheKeyFmt        = "coverage:%s:%s"
	// Default classifiers for the rating request; callers may override.
	DefaultProductType  = 3
	DefaultContentType  = 1
	DefaultDeliveryTime = 0
)

// Client wraps the Chilexpress coverage and rating APIs. Responses for the
// territorial endpoints are cached for the session lifetime in the client's
// own cache instance.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
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

// WithBaseURL overrides the carrier base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithCache installs the cache backing the territorial endpoints.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		if cache != nil {
			c.cache = cache
		}
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// NewClient builds a Chilexpress client. The API key may be empty when the
// service runs against a proxy that injects it.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.cache == nil {
		client.cache = NewMemoryCache(nil)
	}

	return client
}

// Region is a carrier-side region row.
type Region struct {
	RegionID      string `json:"regionId"`
	RegionName    string `json:"regionName"`
	IneRegionCode string `json:"ineRegionCode,omitempty"`
}

// CoverageArea is the carrier's commune-equivalent serviceable area.
type CoverageArea struct {
	CountyCode       string `json:"countyCode"`
	CountyName       string `json:"countyName"`
	CoverageAreaID   string `json:"coverageAreaId"`
	CoverageAreaName string `json:"coverageAreaName"`
}

// QuoteRequest is the rating payload. The carrier contract expects textual
// numeric fields for the package dimensions and declared worth.
type QuoteRequest struct {
	OriginCountyCode      string `json:"originCountyCode"`
	DestinationCountyCode string `json:"destinationCountyCode"`
	Package               struct {
		Weight string `json:"weight"`
		Height string `json:"height"`
		Width  string `json:"width"`
		Length string `json:"length"`
	} `json:"package"`
	ProductType   int    `json:"productType"`
	ContentType   int    `json:"contentType"`
	DeclaredWorth string `json:"declaredWorth"`
	DeliveryTime  int    `json:"deliveryTime"`
}

// QuoteOption is one priced service returned by the rating API.
type QuoteOption struct {
	ServiceCode string `json:"service_code"`
	ServiceName string `json:"service_name"`
	Price       int64  `json:"price"`
	Currency    string `json:"currency"`
	ETA         string `json:"eta,omitempty"`
}

// ClearCache drops every cached carrier response.
func (c *Client) ClearCache(ctx context.Context) error {
	if c == nil || c.cache == nil {
		return nil
	}
	return c.cache.Clear(ctx)
}

// Regions lists the carrier regions, cached unconditionally per session.
func (c *Client) Regions(ctx context.Context) ([]Region, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "chilexpress client not configured")
	}

	if cached, ok := c.cachedRegions(ctx); ok {
		return cached, nil
	}

	var apiResp struct {
		Regions []Region `json:"regions"`
	}
	if err := c.getJSON(ctx, "/georeference/api/v1.0/regions", nil, &apiResp); err != nil {
		return nil, err
	}

	c.storeCache(ctx, regionsCacheKey, apiResp.Regions)
	return apiResp.Regions, nil
}

// CoverageAreas lists serviceable areas for a region, cached per region+type.
func (c *Client) CoverageAreas(ctx context.Context, regionCode, queryType string) ([]CoverageArea, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "chilexpress client not configured")
	}
	regionCode = strings.TrimSpace(regionCode)
	if regionCode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "regionCode is required")
	}
	if queryType == "" {
		queryType = "0"
	}

	key := fmt.Sprintf(coverageCacheKeyFmt, regionCode, queryType)
	if raw, found := c.cachedPayload(ctx, key); found {
		var areas []CoverageArea
		if err := json.Unmarshal(raw, &areas); err == nil {
			return areas, nil
		}
	}

	query := url.Values{}
	query.Set("RegionCode", regionCode)
	query.Set("type", queryType)

	var apiResp struct {
		CoverageAreas []CoverageArea `json:"coverageAreas"`
	}
	if err := c.getJSON(ctx, "/georeference/api/v1.0/coverage-areas", query, &apiResp); err != nil {
		return nil, err
	}

	c.storeCache(ctx, key, apiResp.CoverageAreas)
	return apiResp.CoverageAreas, nil
}

// Quote requests priced service options for a route and package. Quotes are
// never cached; every call hits the carrier.
func (c *Client) Quote(ctx context.Context, req QuoteRequest) ([]QuoteOption, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "chilexpress client not configured")
	}
	if strings.TrimSpace(req.OriginCountyCode) == "" || strings.TrimSpace(req.DestinationCountyCode) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "origin and destination county codes are required")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal quote request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rating/api/v1.0/rates/courier", bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build quote request")
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute quote request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, "quote request failed")
	}

	var apiResp struct {
		Data struct {
			CourierServiceOptions []struct {
				ServiceTypeCode    json.Number `json:"serviceTypeCode"`
				ServiceDescription string      `json:"serviceDescription"`
				ServiceValue       json.Number `json:"serviceValue"`
				ConditionsDelivery string      `json:"conditionsDelivery"`
			} `json:"courierServiceOptions"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode quote response")
	}

	options := make([]QuoteOption, 0, len(apiResp.Data.CourierServiceOptions))
	for _, opt := range apiResp.Data.CourierServiceOptions {
		price, _ := strconv.ParseInt(opt.ServiceValue.String(), 10, 64)
		options = append(options, QuoteOption{
			ServiceCode: opt.ServiceTypeCode.String(),
			ServiceName: opt.ServiceDescription,
			Price:       price,
			Currency:    "CLP",
			ETA:         opt.ConditionsDelivery,
		})
	}

	return options, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build carrier request")
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute carrier request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp, "carrier request failed")
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode carrier response")
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)
	}
}

func statusError(resp *http.Response, message string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	return pkgerrors.Wrap(
		pkgerrors.CodeDependency,
		fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		message,
	)
}

func (c *Client) cachedRegions(ctx context.Context) ([]Region, bool) {
	raw, found := c.cachedPayload(ctx, regionsCacheKey)
	if !found {
		return nil, false
	}
	var regions []Region
	if err := json.Unmarshal(raw, &regions); err != nil {
		return nil, false
	}
	return regions, true
}

func (c *Client) cachedPayload(ctx context.Context, key string) ([]byte, bool) {
	raw, found, err := c.cache.Get(ctx, key)
	if err != nil || !found {
		return nil, false
	}
	return raw, true
}

func (c *Client) storeCache(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	// A failed cache write is harmless; the next call re-fetches.
	_ = c.cache.Set(ctx, key, raw, c.cacheTTL)
}
