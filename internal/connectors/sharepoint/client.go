package sharepoint

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Azure/go-ntlmssp"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
	"github.com/cadastral-labs/pointhist-cli/internal/core/ports/driven"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// acceptVerboseJSON selects the verbose OData envelope that every
	// JSON response is unwrapped from.
	acceptVerboseJSON = "application/json;odata=verbose"

	// maxListItems caps how many list items a single query returns.
	maxListItems = 5000

	// errorBodyLimit bounds how much of an error response body is kept.
	errorBodyLimit = 2048
)

// Config holds the connection settings for one document library.
type Config struct {
	// BaseURL is the server root, without a trailing slash.
	BaseURL string

	// SiteName is the site under /sites/ the library lives in.
	SiteName string

	// Library is the document library title.
	Library string

	// Credentials authenticate the NTLM session.
	Credentials domain.Credentials

	// RateLimit paces requests. Zero values use DefaultRateLimit.
	RateLimit RateLimitConfig
}

// Ensure Client implements the repository port.
var _ driven.Repository = (*Client)(nil)

// Client talks to the REST API of one SharePoint site over an NTLM
// authenticated session.
type Client struct {
	http        *http.Client
	baseURL     string
	site        string
	library     string
	account     string
	password    string
	rateLimiter *RateLimiter
}

// NewClient creates a client with an NTLM negotiating transport.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" || cfg.SiteName == "" || cfg.Library == "" {
		return nil, ErrConfigMissing
	}

	httpClient := &http.Client{
		Timeout: DefaultTimeout,
		Transport: ntlmssp.Negotiator{
			RoundTripper: http.DefaultTransport,
		},
	}

	return newClient(httpClient, cfg), nil
}

// NewClientWithHTTPClient creates a client with a custom http.Client.
// Useful for tests where no NTLM handshake is wanted.
func NewClientWithHTTPClient(httpClient *http.Client, cfg Config) *Client {
	return newClient(httpClient, cfg)
}

func newClient(httpClient *http.Client, cfg Config) *Client {
	return &Client{
		http:        httpClient,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		site:        cfg.SiteName,
		library:     cfg.Library,
		account:     cfg.Credentials.Account(),
		password:    cfg.Credentials.Password,
		rateLimiter: NewRateLimiter(cfg.RateLimit),
	}
}

// webURL returns the _api/web root for the site.
func (c *Client) webURL() string {
	return fmt.Sprintf("%s/sites/%s/_api/web", c.baseURL, c.site)
}

// serverRelativePath builds a percent-encoded server-relative path from
// the site root through the library to the given segments.
func (c *Client) serverRelativePath(segments ...string) string {
	parts := make([]string, 0, len(segments)+3)
	parts = append(parts, "sites", c.site, c.library)
	parts = append(parts, segments...)

	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return "/" + strings.Join(escaped, "/")
}

// do issues a single paced request and returns the response body.
// Every request gets exactly one attempt; there are no retries.
func (c *Client) do(
	ctx context.Context, method, rawURL string, body []byte, headers map[string]string,
) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.SetBasicAuth(c.account, c.password)
	req.Header.Set("Accept", acceptVerboseJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit)) //nolint:errcheck // body is diagnostic only
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(msg)),
			URL:        req.URL.String(),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}
