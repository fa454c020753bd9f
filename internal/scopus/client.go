// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scopus is the remote publication source client: a rate-limited,
// typed HTTP client for the bibliographic search and abstract-retrieval
// endpoints.
package scopus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/pubwatch/internal/httputil"
	"github.com/pdiddy/pubwatch/pkg/types"
)

const (
	// BaseURL is the production API root.
	BaseURL = "https://api.elsevier.com"

	searchPath   = "/content/search/scopus"
	abstractPath = "/content/abstract/scopus_id/"

	defaultRateLimit = 5.0
	defaultPageSize  = 25
	defaultTimeout   = 60 * time.Second
)

// Client is a rate-limited HTTP client for the remote publication source.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cfg        types.SourceConfig
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// NewClient creates a remote source client from the source configuration.
func NewClient(cfg types.SourceConfig, opts ...Option) *Client {
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = defaultRateLimit
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		cfg:        cfg,
		baseURL:    BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AuthorWorkIDs returns every remote publication ID attributed to the given
// remote author profile. Pagination is handled internally; any transport or
// HTTP failure aborts the whole listing for this author.
func (c *Client) AuthorWorkIDs(ctx context.Context, authorID string) ([]string, error) {
	var ids []string
	start := 0

	for {
		params := url.Values{
			"query": {fmt.Sprintf("AU-ID(%s)", authorID)},
			"field": {"dc:identifier"},
			"count": {strconv.Itoa(c.cfg.PageSize)},
			"start": {strconv.Itoa(start)},
		}

		var page searchResponse
		if err := c.getJSON(ctx, c.baseURL+searchPath+"?"+params.Encode(), &page); err != nil {
			return nil, fmt.Errorf("searching works for author %s: %w", authorID, err)
		}

		total, _ := strconv.Atoi(page.Results.TotalResults)
		for _, entry := range page.Results.Entries {
			if entry.Error != "" || entry.Identifier == "" {
				continue
			}
			ids = append(ids, stripIDPrefix(entry.Identifier))
		}

		start += c.cfg.PageSize
		if start >= total || len(page.Results.Entries) == 0 {
			return ids, nil
		}
	}
}

// FetchWork retrieves the full record for one remote publication ID.
// Not-found and transport failures are returned to the caller; the
// pipeline treats them as per-item skips.
func (c *Client) FetchWork(ctx context.Context, id string) (*Work, error) {
	u := c.baseURL + abstractPath + url.PathEscape(id) + "?view=FULL"

	var ar abstractResponse
	if err := c.getJSON(ctx, u, &ar); err != nil {
		return nil, fmt.Errorf("fetching work %s: %w", id, err)
	}

	work := ar.Response.toWork()
	if work.ID == "" {
		// Some records omit dc:identifier in the abstract view.
		work.ID = id
	}
	return work, nil
}

// getJSON performs one rate-limited, retried GET and decodes the JSON body.
func (c *Client) getJSON(ctx context.Context, reqURL string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if c.cfg.APIKey != "" {
		req.Header.Set("X-ELS-APIKey", c.cfg.APIKey)
	}
	if c.cfg.InstToken != "" {
		req.Header.Set("X-ELS-Insttoken", c.cfg.InstToken)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.cfg.MaxRetries)
	if err != nil {
		return fmt.Errorf("API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
