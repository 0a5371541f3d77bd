package readeck

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

	"github.com/rs/zerolog"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "readeckctl"
	apiPrefix        = "/api"

	// Error bodies are read for classification only; cap them so a broken
	// proxy can't make us buffer an arbitrary payload.
	maxErrorBody = 4 << 10
)

// Client is a Readeck API client. Configuration is immutable after
// construction; concurrent calls share the one underlying http.Client.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new Readeck client for the given instance URL and API
// bearer token. Both are required; the URL must be a well-formed http(s)
// URL. A trailing slash on the URL is stripped.
func NewClient(baseURL, token string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	if token == "" {
		return nil, fmt.Errorf("%w: API token is required", ErrInvalidConfig)
	}

	baseURL = strings.TrimRight(baseURL, "/")
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: malformed base URL %q", ErrInvalidConfig, baseURL)
	}

	c := &Client{
		baseURL:   baseURL,
		token:     token,
		userAgent: defaultUserAgent,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the normalized instance URL the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// Close releases idle connections held by the underlying transport.
// Idempotent; safe to defer alongside further Close calls.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// newRequest builds an authenticated request for an endpoint under /api.
func (c *Client) newRequest(ctx context.Context, method, endpoint string, query url.Values, body any) (*http.Request, error) {
	reqURL := c.baseURL + apiPrefix + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do executes the request and classifies non-2xx responses. On success the
// caller owns resp.Body.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Msg("readeck API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, newStatusError(resp.StatusCode, string(body))
	}

	return resp, nil
}

// getJSON issues a GET and decodes the JSON response body into v.
func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, v any) error {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, query, nil)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeJSON(resp, v)
}

// decodeJSON decodes a successful response body, mapping failures to a
// parse error.
func decodeJSON(resp *http.Response, v any) error {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return newParseError(resp.StatusCode, "failed to decode response body", err)
	}
	return nil
}

// GetUserProfile fetches the authenticated user's profile, including
// provider metadata and reader settings.
func (c *Client) GetUserProfile(ctx context.Context) (*UserProfile, error) {
	var profile UserProfile
	if err := c.getJSON(ctx, "/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// TestConnection checks that the instance is reachable and the token valid
// by fetching the user profile.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.GetUserProfile(ctx)
	return err
}

// ListBookmarks fetches one page of bookmarks. Order is whatever the server
// returned; pagination is a passthrough of params, the client never
// auto-paginates.
func (c *Client) ListBookmarks(ctx context.Context, params *BookmarkListParams) ([]Bookmark, error) {
	var bookmarks []Bookmark
	if err := c.getJSON(ctx, "/bookmarks", params.Values(), &bookmarks); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// GetBookmark fetches a single bookmark by ID.
func (c *Client) GetBookmark(ctx context.Context, id string) (*Bookmark, error) {
	var bookmark Bookmark
	if err := c.getJSON(ctx, "/bookmarks/"+url.PathEscape(id), nil, &bookmark); err != nil {
		return nil, err
	}
	return &bookmark, nil
}

// CreateBookmark submits a URL for bookmarking. The server accepts the
// bookmark asynchronously (202) and identifies it only through response
// headers, which the result exposes as BookmarkID and Location. A success
// response without a Bookmark-Id header is a parse error: the result would
// be unusable.
func (c *Client) CreateBookmark(ctx context.Context, create BookmarkCreateRequest) (*BookmarkCreateResult, error) {
	if create.URL == "" {
		return nil, newValidationError("bookmark URL is required")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/bookmarks", nil, create)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body BookmarkCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, newParseError(resp.StatusCode, "failed to decode create response", err)
	}

	id := resp.Header.Get("Bookmark-Id")
	if id == "" {
		return nil, newParseError(resp.StatusCode, "create response is missing the Bookmark-Id header", nil)
	}

	return &BookmarkCreateResult{
		Response:   body,
		BookmarkID: id,
		Location:   resp.Header.Get("Location"),
	}, nil
}

// UpdateBookmark applies a partial update to a bookmark.
func (c *Client) UpdateBookmark(ctx context.Context, id string, update BookmarkUpdateRequest) error {
	req, err := c.newRequest(ctx, http.MethodPatch, "/bookmarks/"+url.PathEscape(id), nil, update)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// DeleteBookmark marks a bookmark as deleted.
func (c *Client) DeleteBookmark(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/bookmarks/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
