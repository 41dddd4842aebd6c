package httpsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/kbukum/lazykit/logger"
)

// Client fetches pages from one paginated endpoint.
type Client struct {
	httpClient *http.Client
	cfg        Config
	log        *logger.Logger
}

// New creates a Client for cfg. A nil log uses the registered httpsource
// logger.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Get(logger.ComponentHTTPSource)
	}
	return &Client{
		httpClient: &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
			Timeout:   cfg.Timeout,
		},
		cfg: cfg,
		log: log.WithComponent(logger.ComponentHTTPSource),
	}, nil
}

// Unwrap returns the underlying *http.Client.
func (c *Client) Unwrap() *http.Client {
	return c.httpClient
}

// page is one decoded response.
type page struct {
	items []json.RawMessage
	next  string
}

// fetch requests the page addressed by token.
func (c *Client) fetch(ctx context.Context, token string) (page, error) {
	req, err := c.buildRequest(ctx, token)
	if err != nil {
		return page{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return page{}, fmt.Errorf("httpsource: request %s: %w", req.URL.Redacted(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return page{}, fmt.Errorf("httpsource: read response body: %w", err)
	}
	if err := classifyStatus(resp.StatusCode, body); err != nil {
		c.log.Warn("page request rejected", logger.Fields(
			"url", req.URL.Redacted(),
			"status", resp.StatusCode,
		))
		return page{}, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return page{}, fmt.Errorf("httpsource: decode page: %w", err)
	}

	var p page
	if raw, ok := fields[c.cfg.ItemsField]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &p.items); err != nil {
			return page{}, fmt.Errorf("httpsource: decode %q: %w", c.cfg.ItemsField, err)
		}
	}
	if raw, ok := fields[c.cfg.NextField]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &p.next); err != nil {
			return page{}, fmt.Errorf("httpsource: decode %q: %w", c.cfg.NextField, err)
		}
	}

	c.log.Debug("page fetched", logger.Fields(
		"url", req.URL.Redacted(),
		"size", len(p.items),
		"next", p.next,
	))
	return p, nil
}

func (c *Client) buildRequest(ctx context.Context, token string) (*http.Request, error) {
	url := strings.TrimRight(c.cfg.BaseURL, "/")
	if c.cfg.Path != "" {
		url += "/" + strings.TrimLeft(c.cfg.Path, "/")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("httpsource: create request: %w", err)
	}

	q := req.URL.Query()
	q.Set(c.cfg.SizeParam, strconv.Itoa(c.cfg.PageSize))
	if token != "" {
		q.Set(c.cfg.TokenParam, token)
	}
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Accept", "application/json")
	for k, v := range c.cfg.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}
