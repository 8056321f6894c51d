package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/motovision/motovision/internal/credstore"
	"github.com/motovision/motovision/internal/logging"
)

const (
	// DefaultBaseURL is the production API origin.
	DefaultBaseURL = "https://motovision-api-8077.azurewebsites.net/api"

	// DefaultTimeout is the HTTP request timeout. Every call is a single
	// attempt; there is no retry.
	DefaultTimeout = 10 * time.Second

	// listCacheTTL is how long full-collection list responses stay cached.
	listCacheTTL = 15 * time.Second

	motosCacheKey  = "motos_list"
	patiosCacheKey = "patios_list"
)

// Client talks to the MotoVision backend. Instances are safe for concurrent
// use.
type Client struct {
	// BaseURL is the API origin including the /api prefix.
	BaseURL string

	// HTTPClient is the underlying HTTP client.
	HTTPClient *http.Client

	creds *credstore.Store
	cache *gocache.Cache
}

// NewClient creates a client for the given origin. An empty baseURL selects
// the production API.
func NewClient(baseURL string, creds *credstore.Store) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		creds:      creds,
		cache:      gocache.New(listCacheTTL, time.Minute),
	}
}

// do performs one authenticated request and returns the raw response body.
// An empty body decodes to nil. A 2xx body that is not valid JSON is
// returned as-is; the typed wrappers decide whether that is acceptable.
func (c *Client) do(method, path string, query url.Values, payload any) (json.RawMessage, error) {
	token, err := c.creds.Token()
	if err != nil {
		// Propagated unchanged: callers must see "no session" distinctly.
		return nil, err
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	reqURL := c.BaseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequest(method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+token)

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logging.Warn("request failed before a response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, classifyNetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		// A response was received, so this is not a transport failure in
		// the NetworkError sense; surface it as a plain wrapped error.
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	logging.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	// The body is always read as text first; malformed JSON is kept raw
	// rather than failing the call.
	var parsed any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			parsed = string(raw)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, parsed)
	}

	if len(raw) == 0 {
		return nil, nil
	}
	return json.RawMessage(raw), nil
}

// decodeList normalizes a list envelope and decodes it into out.
func decodeList(raw json.RawMessage, out any) error {
	items, err := normalizeList(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(items, out); err != nil {
		return fmt.Errorf("failed to decode list response: %w", err)
	}
	return nil
}

// invalidateLists drops cached list responses after a mutation. A patio
// mutation also invalidates the moto list, whose grouping depends on yard
// names.
func (c *Client) invalidateLists(keys ...string) {
	for _, k := range keys {
		c.cache.Delete(k)
	}
}
