package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avaldes/hubview/models"
)

// DefaultBaseURL is the public GitHub REST API endpoint.
const DefaultBaseURL = "https://api.github.com"

// Client handles GitHub API interactions. The token is optional;
// without one the public API applies its unauthenticated rate limit.
type Client struct {
	BaseURL string
	Token   string
	client  *http.Client
	log     *slog.Logger
}

// NewClient creates a new GitHub API client.
func NewClient(baseURL, token string, timeout time.Duration, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		client: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListUsers retrieves one page of users. Pages are 1-indexed; the endpoint
// paginates by the last seen user ID, so page n starts after ID
// (n-1)*perPage. An empty result means the listing is exhausted.
func (c *Client) ListUsers(ctx context.Context, page, perPage int) ([]models.User, error) {
	q := url.Values{}
	q.Set("since", strconv.Itoa((page-1)*perPage))
	q.Set("per_page", strconv.Itoa(perPage))

	var users []models.User
	if err := c.get(ctx, "/users", q, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SearchUsers runs a free-text user search and returns the matching user
// summaries. An empty slice means no matches, not an error.
func (c *Client) SearchUsers(ctx context.Context, query string, perPage int) ([]models.User, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("per_page", strconv.Itoa(perPage))

	var result models.SearchResult
	if err := c.get(ctx, "/search/users", q, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// GetUser retrieves the full profile for a login.
func (c *Client) GetUser(ctx context.Context, login string) (*models.Profile, error) {
	var profile models.Profile
	if err := c.get(ctx, "/users/"+url.PathEscape(login), nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListRepositories retrieves up to limit repositories for a login,
// most recently updated first. A single capped request; no paging.
func (c *Client) ListRepositories(ctx context.Context, login string, limit int) ([]models.Repository, error) {
	q := url.Values{}
	q.Set("sort", "updated")
	q.Set("per_page", strconv.Itoa(limit))

	var repos []models.Repository
	if err := c.get(ctx, "/users/"+url.PathEscape(login)+"/repos", q, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	reqURL := c.BaseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("github: build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("github: %s: %w", path, err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("github: read response for %s: %w", path, err)
	}

	c.log.Debug("github request",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newStatusError(resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("github: decode response for %s: %w", path, err)
	}
	return nil
}
