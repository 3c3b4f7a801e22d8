// Package sanity is a small read-only client for the hosted content store's
// GROQ query API.
package sanity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Perspective selects which document revisions a query sees.
type Perspective string

const (
	Published     Perspective = "published"
	PreviewDrafts Perspective = "previewDrafts"
)

// ErrNotConfigured is returned when no project id is set.
var ErrNotConfigured = errors.New("sanity: client not configured")

// Config holds connection settings.
type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	UseCDN     bool
	// BaseURL overrides the derived host (tests, self-hosted proxies).
	BaseURL string
	Timeout time.Duration
}

// APIError is a non-2xx response from the query API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sanity: query failed with status %d: %s", e.Status, e.Body)
}

// Temporary reports whether retrying the request may succeed.
func (e *APIError) Temporary() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// QueryOptions tune one query.
type QueryOptions struct {
	Perspective Perspective
	// NoCDN forces the live API host even when the client uses the CDN.
	NoCDN bool
}

type Client struct {
	cfg  Config
	http *http.Client
}

// New returns a client, or ErrNotConfigured when cfg lacks a project id.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, ErrNotConfigured
	}
	if cfg.Dataset == "" {
		cfg.Dataset = "production"
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2024-01-01"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}, nil
}

// ProjectID returns the configured project.
func (c *Client) ProjectID() string { return c.cfg.ProjectID }

// Dataset returns the configured dataset.
func (c *Client) Dataset() string { return c.cfg.Dataset }

func (c *Client) host(noCDN bool) string {
	if c.cfg.BaseURL != "" {
		return strings.TrimRight(c.cfg.BaseURL, "/")
	}
	sub := "api"
	// drafts and authenticated reads never go through the CDN
	if c.cfg.UseCDN && !noCDN {
		sub = "apicdn"
	}
	return fmt.Sprintf("https://%s.%s.sanity.io", c.cfg.ProjectID, sub)
}

// QueryURL builds the GET URL for a query.
func (c *Client) QueryURL(query string, params map[string]any, opts QueryOptions) (string, error) {
	v := url.Values{}
	v.Set("query", query)
	for name, val := range params {
		b, err := json.Marshal(val)
		if err != nil {
			return "", fmt.Errorf("sanity: encode param %q: %w", name, err)
		}
		v.Set("$"+name, string(b))
	}
	if opts.Perspective != "" {
		v.Set("perspective", string(opts.Perspective))
	}
	noCDN := opts.NoCDN || opts.Perspective == PreviewDrafts
	u := fmt.Sprintf("%s/v%s/data/query/%s?%s", c.host(noCDN), strings.TrimPrefix(c.cfg.APIVersion, "v"),
		url.PathEscape(c.cfg.Dataset), v.Encode())
	return u, nil
}

type envelope struct {
	Result json.RawMessage `json:"result"`
	Ms     int             `json:"ms"`
	Query  string          `json:"query"`
}

// Query runs a GROQ query and returns the raw result.
func (c *Client) Query(ctx context.Context, query string, params map[string]any, opts QueryOptions) (json.RawMessage, error) {
	u, err := c.QueryURL(query, params, opts)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sanity: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("sanity: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("sanity: decode response: %w", err)
	}
	if len(env.Result) == 0 {
		return json.RawMessage("null"), nil
	}
	return env.Result, nil
}
