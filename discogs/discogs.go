// Package discogs is a rate-limited client for the two Discogs API endpoints
// the scraper needs: paginated marketplace inventory listing and single
// release detail fetch.
package discogs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"cratedig/limiter"
)

const (
	defaultBaseURL = "https://api.discogs.com"
	userAgent      = "cratedig/1.0"

	// MaxPerPage is the largest page size the inventory endpoint accepts.
	MaxPerPage = 100
)

// New creates a Client authenticated with the given personal access token.
// All calls made through the client share one rate limiter sized to the
// documented 60-requests-per-minute quota.
func New(token string) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	return &Client{
		baseURL: defaultBaseURL,
		token:   token,
		lim:     limiter.New(60, time.Minute),
		http:    &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type Client struct {
	baseURL string
	token   string
	lim     *limiter.Limiter
	http    *http.Client
}

// SetQuota replaces the client's rate limit. Call before issuing requests.
func (c *Client) SetQuota(n int, window time.Duration) {
	if n > 0 && window > 0 {
		c.lim = limiter.New(n, window)
	}
}

// GetInventory fetches one page of a seller's marketplace inventory. perPage
// values outside [1, MaxPerPage] are clamped.
func (c *Client) GetInventory(ctx context.Context, seller string, page, perPage int) (*InventoryResponse, error) {
	if perPage < 1 || perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	query := url.Values{}
	query.Set("page", fmt.Sprintf("%d", page))
	query.Set("per_page", fmt.Sprintf("%d", perPage))

	resp, err := c.get(ctx, fmt.Sprintf("/users/%s/inventory", url.PathEscape(seller)), query)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := remoteError(resp); err != nil {
		return nil, err
	}

	var inventory InventoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&inventory); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &inventory, nil
}

// GetRelease fetches the full catalog record for one release.
func (c *Client) GetRelease(ctx context.Context, releaseID int64) (*Release, error) {
	resp, err := c.get(ctx, fmt.Sprintf("/releases/%d", releaseID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if err := remoteError(resp); err != nil {
		return nil, err
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &release, nil
}

// get acquires a rate-limit token, then issues the request. A 429 maps to
// ErrRateLimited here since both endpoints treat it the same way; other
// statuses are left to the caller.
func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	if err := c.lim.Wait(ctx); err != nil {
		return nil, err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("request error: %w", err)
	}
	req.Header.Set("Authorization", "Discogs token="+c.token)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		resp.Body.Close()
		return nil, ErrRateLimited
	}
	return resp, nil
}

func remoteError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &RemoteError{Status: resp.StatusCode, Body: string(body)}
}
