// Package registry looks up the current owner of a username in the external
// naming service. The orchestrator only consumes the Client interface; the
// HTTP implementation talks to a Blockstack-compatible core API.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public registry endpoint used when no override is
// configured.
const DefaultBaseURL = "https://core.blockstack.org"

// userAgent identifies this library on registry requests.
const userAgent = "authverify-0.3.0"

var (
	// ErrNameNotFound is returned when the registry reports that the
	// username is not registered (HTTP 404).
	ErrNameNotFound = fmt.Errorf("name not found in registry")
	// ErrUnavailable is returned on transport failures, non-success
	// statuses other than 404, and unparseable response bodies.
	ErrUnavailable = fmt.Errorf("registry unavailable")
)

// Record is the registry's view of a registered name.
type Record struct {
	Address string `json:"address"`
	Status  string `json:"status"`
}

// Client resolves usernames to their owning address.
type Client interface {
	Lookup(ctx context.Context, username string) (*Record, error)
}

// HTTPClient is the HTTP implementation of Client.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a registry client for the given base URL. An empty
// base URL selects DefaultBaseURL. The underlying HTTP client carries a
// bounded timeout so a slow registry cannot stall verification forever.
func NewHTTPClient(baseURL string) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Lookup fetches the registry record for a username. A 404 response maps to
// ErrNameNotFound; every other failure maps to ErrUnavailable.
func (c *HTTPClient) Lookup(ctx context.Context, username string) (*Record, error) {
	lookupURL := fmt.Sprintf("%s/v1/names/%s", c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNameNotFound, username)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d from %s", ErrUnavailable, resp.StatusCode, lookupURL)
	}

	var rec Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: decoding response for %s: %v", ErrUnavailable, username, err)
	}
	return &rec, nil
}
