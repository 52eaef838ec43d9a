// Package provider gives cached, read-only access to the remote
// WordPress content API and assembles Game records out of raw posts.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gamefeed/gamefeed/app/store"
	"github.com/gamefeed/gamefeed/pkg/logx"
	"github.com/go-pkgz/requester"
	"github.com/go-pkgz/requester/middleware"
	"golang.org/x/exp/slog"
)

// categoriesPerPage is the flat taxonomy cap; no pagination beyond it.
const categoriesPerPage = 100

// Config contains parameters to build a Client.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	PageSize  int
	// MaxRetries is declared for configuration compatibility, the client
	// does not retry.
	MaxRetries int
}

// Client talks to the WP REST API.
type Client struct {
	log      *slog.Logger
	cl       *http.Client
	base     string
	pageSize int
}

// NewClient validates the configuration and builds the HTTP middleware
// stack. Configuration errors surface here, before any request is made.
func NewClient(lg *slog.Logger, cfg Config) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute http(s)", cfg.BaseURL)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "gamefeed"
	}

	rq := requester.New(http.Client{Timeout: cfg.Timeout},
		middleware.Header("User-Agent", cfg.UserAgent),
		middleware.Header("Accept", "application/json"),
		logx.RequestIDHeader(),
		logx.LoggingRoundTripper(lg, logx.RoundTripperOpts{Level: slog.LevelDebug}),
	)

	return &Client{
		log:      lg,
		cl:       rq.Client(),
		base:     strings.TrimRight(u.String(), "/"),
		pageSize: cfg.PageSize,
	}, nil
}

// PageSize returns the configured upstream page size.
func (c *Client) PageSize() int { return c.pageSize }

// PostsQuery contains listing parameters for Posts.
type PostsQuery struct {
	Page     int
	PerPage  int
	Search   string
	Category int
}

// Posts fetches a page of posts with embedded author/media/term data.
func (c *Client) Posts(ctx context.Context, q PostsQuery) ([]Post, error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("per_page", strconv.Itoa(q.PerPage))
	v.Set("_embed", "true")
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Category != 0 {
		v.Set("categories", strconv.Itoa(q.Category))
	}

	var posts []Post
	if err := c.getJSON(ctx, c.base+"/posts?"+v.Encode(), &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Post fetches a single post. The id addresses the resource by path
// segment, not by query parameter. Upstream 404 maps to store.ErrNotFound.
func (c *Client) Post(ctx context.Context, id int) (*Post, error) {
	var p Post
	if err := c.getJSON(ctx, fmt.Sprintf("%s/posts/%d?_embed=true", c.base, id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Categories fetches up to 100 flat taxonomy terms.
func (c *Client) Categories(ctx context.Context) ([]store.Category, error) {
	var terms []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
		Link string `json:"link"`
	}
	u := fmt.Sprintf("%s/categories?per_page=%d", c.base, categoriesPerPage)
	if err := c.getJSON(ctx, u, &terms); err != nil {
		return nil, err
	}

	result := make([]store.Category, len(terms))
	for i, t := range terms {
		result[i] = store.Category{ID: t.ID, Name: t.Name, Slug: t.Slug, Link: t.Link}
	}
	return result, nil
}

func (c *Client) getJSON(ctx context.Context, u string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.cl.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.WarnCtx(ctx, "failed to close response body", slog.Any("err", err))
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return store.ErrNotFound
	}

	ok := resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
	if !ok {
		return fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
