// Package bestbuy is a client for the Best Buy products and stores APIs.
//
// Every lookup degrades to a local ProductSearcher (normally the bundle
// catalog) when no API key is configured or the API fails, so callers always
// get an answer.
package bestbuy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Veraticus/tech-concierge/internal/common"
	"github.com/Veraticus/tech-concierge/internal/model"
	"github.com/Veraticus/tech-concierge/internal/service"
)

// DefaultBaseURL is the public Best Buy API root.
const DefaultBaseURL = "https://api.bestbuy.com/v1"

// DefaultRadiusMi is used for coordinate store lookups without a radius.
const DefaultRadiusMi = 25

const (
	productFields    = "sku,name,salePrice,image,categoryPath.name,inStoreAvailability,onlineAvailability,manufacturer,customerReviewAverage,customerReviewCount"
	maxStoreResults  = 10
	defaultRateLimit = 5.0
)

var errStatus = errors.New("unexpected status")

// Config holds Best Buy API settings.
type Config struct {
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second
}

// Client talks to the Best Buy API with a local fallback.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	fallback   service.ProductSearcher
	logger     *slog.Logger
	apiKey     string
	baseURL    string
}

var _ service.ProductSearcher = (*Client)(nil)

// NewClient creates a client. fallback answers when the API cannot.
func NewClient(cfg Config, fallback service.ProductSearcher, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limit := cfg.RateLimit
	if limit <= 0 {
		limit = defaultRateLimit
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(limit), int(limit)+1),
		fallback:   fallback,
		logger:     logger,
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
	}
}

// Live reports whether requests go to the real API.
func (c *Client) Live() bool {
	return c.apiKey != ""
}

// SearchProducts searches the product catalog.
func (c *Client) SearchProducts(ctx context.Context, query string, opts service.SearchOptions) ([]model.Product, error) {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return nil, common.NewUserError("search query is required", common.ErrInvalidInput)
	}
	if !c.Live() {
		c.logger.Debug("Best Buy API key not configured, searching local catalog", "query", query)
		return c.fallback.SearchProducts(ctx, query, opts)
	}

	filters := make([]string, 0, len(terms)+3)
	for _, t := range terms {
		filters = append(filters, "search="+url.PathEscape(t))
	}
	if opts.MaxPrice > 0 {
		filters = append(filters, "salePrice<="+strconv.FormatFloat(opts.MaxPrice, 'f', -1, 64))
	}
	if opts.Category != "" {
		filters = append(filters, "categoryPath.name="+url.PathEscape(opts.Category))
	}
	if opts.InStock {
		filters = append(filters, "inStoreAvailability=true")
	}

	page, pageSize := opts.Page, opts.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	params := c.params()
	params.Set("show", productFields)
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(pageSize))

	var resp struct {
		Products []apiProduct `json:"products"`
	}
	endpoint := fmt.Sprintf("%s/products(%s)?%s", c.baseURL, strings.Join(filters, "&"), params.Encode())
	if err := c.get(ctx, endpoint, &resp); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn("Best Buy product search failed, using local catalog", "query", query, "error", err)
		return c.fallback.SearchProducts(ctx, query, opts)
	}

	products := make([]model.Product, 0, len(resp.Products))
	for _, p := range resp.Products {
		products = append(products, p.toModel())
	}
	return products, nil
}

// GetProduct fetches one product by SKU.
func (c *Client) GetProduct(ctx context.Context, sku string) (*model.Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, common.NewUserError("sku is required", common.ErrInvalidInput)
	}
	if !c.Live() {
		return c.fallback.GetProduct(ctx, sku)
	}

	var p apiProduct
	endpoint := fmt.Sprintf("%s/products/%s.json?%s", c.baseURL, url.PathEscape(sku), c.params().Encode())
	if err := c.get(ctx, endpoint, &p); err != nil {
		if errors.Is(err, common.ErrNotFound) || ctx.Err() != nil {
			return nil, fmt.Errorf("product %s: %w", sku, err)
		}
		c.logger.Warn("Best Buy product lookup failed, using local catalog", "sku", sku, "error", err)
		return c.fallback.GetProduct(ctx, sku)
	}

	product := p.toModel()
	return &product, nil
}

// FindStores finds stores by region text or by coordinates.
func (c *Client) FindStores(ctx context.Context, q service.StoreQuery) ([]model.Store, error) {
	var filter string
	switch {
	case q.HasCoords:
		radius := q.RadiusMi
		if radius <= 0 {
			radius = DefaultRadiusMi
		}
		filter = fmt.Sprintf("area(%s,%s,%d)",
			strconv.FormatFloat(q.Latitude, 'f', -1, 64),
			strconv.FormatFloat(q.Longitude, 'f', -1, 64),
			radius)
	case strings.TrimSpace(q.Region) != "":
		filter = "region=" + url.PathEscape(strings.TrimSpace(q.Region))
	default:
		return nil, common.NewUserError("a location or coordinates are required", common.ErrInvalidInput)
	}

	if !c.Live() {
		return c.fallback.FindStores(ctx, q)
	}

	params := c.params()
	params.Set("pageSize", strconv.Itoa(maxStoreResults))

	var resp struct {
		Stores []apiStore `json:"stores"`
	}
	endpoint := fmt.Sprintf("%s/stores(%s)?%s", c.baseURL, filter, params.Encode())
	if err := c.get(ctx, endpoint, &resp); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn("Best Buy store lookup failed, using local stores", "filter", filter, "error", err)
		return c.fallback.FindStores(ctx, q)
	}

	stores := make([]model.Store, 0, len(resp.Stores))
	for _, s := range resp.Stores {
		stores = append(stores, s.toModel())
	}
	return stores, nil
}

// CheckStoreAvailability reports whether sku can be picked up at storeID.
// Without an API key everything is reported available; API failures report
// unavailable.
func (c *Client) CheckStoreAvailability(ctx context.Context, sku, storeID string) (bool, error) {
	if strings.TrimSpace(sku) == "" || strings.TrimSpace(storeID) == "" {
		return false, common.NewUserError("sku and store are required", common.ErrInvalidInput)
	}
	if !c.Live() {
		return true, nil
	}

	var resp struct {
		InStoreAvailability bool `json:"inStoreAvailability"`
	}
	endpoint := fmt.Sprintf("%s/stores/%s/products/%s.json?%s",
		c.baseURL, url.PathEscape(storeID), url.PathEscape(sku), c.params().Encode())
	if err := c.get(ctx, endpoint, &resp); err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		c.logger.Debug("availability check failed", "sku", sku, "store", storeID, "error", err)
		return false, nil
	}
	return resp.InStoreAvailability, nil
}

func (c *Client) params() url.Values {
	v := url.Values{}
	v.Set("apiKey", c.apiKey)
	v.Set("format", "json")
	return v
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return common.ErrRateLimit
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w %d: %s", errStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
