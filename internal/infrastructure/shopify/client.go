package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/ogarmory/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client handles communication with the Shopify Admin REST API
type Client struct {
	httpClient  *http.Client
	accessToken string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// Compile-time check that Client satisfies the engine contract
var _ domain.CatalogSource = (*Client)(nil)

// NewClient creates a new Shopify Admin API client.
// storeDomain is the myshopify host, e.g. "og-armory.myshopify.com".
func NewClient(storeDomain, accessToken, apiVersion string) *Client {
	// Shopify's standard plan allows 2 requests per second with a
	// leaky bucket of 40
	limiter := rate.NewLimiter(rate.Limit(2), 4)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		accessToken: accessToken,
		baseURL:     fmt.Sprintf("https://%s/admin/api/%s", storeDomain, apiVersion),
		rateLimiter: limiter,
	}
}

// SetDebug toggles verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns the wait duration for a retry attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// doRequest executes an HTTP GET request with the auth header set
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamAPIFailure, err)
	}

	return resp, nil
}

// ExistingProducts fetches every product from the store and maps it to
// the canonical form
func (c *Client) ExistingProducts(ctx context.Context) ([]domain.CanonicalProduct, error) {
	log.Printf("[SHOPIFY] Fetching existing products")

	endpoint := fmt.Sprintf("%s/products.json", c.baseURL)
	params := url.Values{}
	params.Add("limit", "250")

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	var products []domain.CanonicalProduct
	for reqURL != "" {
		page, next, err := c.fetchPage(ctx, reqURL)
		if err != nil {
			return nil, err
		}
		products = append(products, page...)
		reqURL = next
	}

	log.Printf("[SHOPIFY] Fetched %d existing products", len(products))
	return products, nil
}

// fetchPage retrieves one page of products, retrying transient failures.
// The returned next URL comes from the Link response header; empty means
// the last page.
func (c *Client) fetchPage(ctx context.Context, reqURL string) ([]domain.CanonicalProduct, string, error) {
	if c.debug {
		log.Printf("[SHOPIFY] GET %s", reqURL)
	}

	// Retry up to 3 times for transient failures
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			log.Printf("[SHOPIFY] Rate limiter error: %v", err)
			return nil, "", fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			log.Printf("[SHOPIFY] Request error (attempt %d): %v", attempt, err)
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			log.Printf("[SHOPIFY] API error (attempt %d) - Status: %d, Body: %s", attempt, resp.StatusCode, string(body))
			if resp.StatusCode == http.StatusNotFound {
				return nil, "", domain.ErrCatalogNotFound
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrUpstreamAPIFailure, resp.StatusCode)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		var page productsResponse
		if err := json.Unmarshal(body, &page); err != nil {
			log.Printf("[SHOPIFY] JSON decode error: %v", err)
			return nil, "", fmt.Errorf("failed to decode response: %w", err)
		}

		products := make([]domain.CanonicalProduct, 0, len(page.Products))
		for i := range page.Products {
			products = append(products, MapToCanonical(&page.Products[i]))
		}

		return products, nextPageURL(resp.Header.Get("Link")), nil
	}

	log.Printf("[SHOPIFY] All retries failed for %s", reqURL)
	return nil, "", lastErr
}
