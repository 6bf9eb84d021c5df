package woo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kasuwa-dev/kasuwa/internal/httputil"
	"github.com/kasuwa-dev/kasuwa/internal/models"
	"golang.org/x/time/rate"
)

const (
	storeAPIPath = "/wp-json/wc/store/v1/products"
	restAPIPath  = "/wp-json/wc/v3/products"

	// MaxPageSize is the largest per_page WooCommerce accepts.
	MaxPageSize = 100
)

// ListParams selects a page of products from the upstream catalog.
type ListParams struct {
	Page     int
	PerPage  int
	Search   string
	Category string
	Featured bool
	Slug     string
}

// Options configures a Client.
type Options struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	UseStoreAPI    bool
	Timeout        time.Duration // per-page request timeout
	Limiter        *rate.Limiter // optional politeness limiter
}

// Client fetches product pages from a WooCommerce store. It performs no
// retries: a failed page is reported as-is and retry policy, if any, belongs
// to the transport.
type Client struct {
	httpClient *http.Client
	opts       Options
}

// NewClient creates a WooCommerce catalog client.
func NewClient(httpClient *http.Client, opts Options) *Client {
	if httpClient == nil {
		httpClient = httputil.NewHTTPClient(nil)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 12 * time.Second
	}
	return &Client{httpClient: httpClient, opts: opts}
}

// ListProducts fetches one page of products and maps them to the canonical
// shape. Page is clamped to >= 1 and PerPage to [1, MaxPageSize].
func (c *Client) ListProducts(ctx context.Context, p ListParams) ([]models.Product, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 24
	}
	if p.PerPage > MaxPageSize {
		p.PerPage = MaxPageSize
	}

	u, err := c.buildURL(p)
	if err != nil {
		return nil, err
	}

	raw, err := c.fetch(ctx, u)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(raw))
	for _, r := range raw {
		products = append(products, MapProduct(r))
	}
	return products, nil
}

// ProductByReference resolves a single product by slug, falling back to a
// free-text search when no slug matches. Returns nil when nothing is found.
func (c *Client) ProductByReference(ctx context.Context, ref string) (*models.Product, error) {
	bySlug, err := c.ListProducts(ctx, ListParams{Page: 1, PerPage: 1, Slug: ref})
	if err != nil {
		return nil, err
	}
	if len(bySlug) > 0 {
		return &bySlug[0], nil
	}

	bySearch, err := c.ListProducts(ctx, ListParams{Page: 1, PerPage: 10, Search: ref})
	if err != nil {
		return nil, err
	}
	for i := range bySearch {
		if bySearch[i].ID == ref || bySearch[i].Slug == ref {
			return &bySearch[i], nil
		}
	}
	if len(bySearch) > 0 {
		return &bySearch[0], nil
	}
	return nil, nil
}

func (c *Client) buildURL(p ListParams) (*url.URL, error) {
	path := restAPIPath
	if c.opts.UseStoreAPI {
		path = storeAPIPath
	}
	u, err := url.Parse(c.opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	u = u.JoinPath(path)

	q := u.Query()
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("per_page", strconv.Itoa(p.PerPage))
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Featured {
		q.Set("featured", "true")
	}
	if p.Slug != "" {
		q.Set("slug", p.Slug)
	}

	if !c.opts.UseStoreAPI {
		if c.opts.ConsumerKey == "" || c.opts.ConsumerSecret == "" {
			return nil, errors.New("WC_CONSUMER_KEY and WC_CONSUMER_SECRET are required when WC_USE_STORE_API=false")
		}
		q.Set("consumer_key", c.opts.ConsumerKey)
		q.Set("consumer_secret", c.opts.ConsumerSecret)
	}
	u.RawQuery = q.Encode()
	return u, nil
}

func (c *Client) fetch(ctx context.Context, u *url.URL) ([]RawProduct, error) {
	if c.opts.Limiter != nil {
		if err := c.opts.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	for k, v := range httputil.JSONHeaders() {
		req.Header[k] = v
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer resp.Body.Close()

	body, err := httputil.ReadBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var raw []RawProduct
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return raw, nil
}
