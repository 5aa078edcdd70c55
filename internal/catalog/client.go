package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/happyshop/storefront/internal/domain"
)

// envelope is the catalog API response wrapper: {"message": "success", "data": ...}.
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Client talks to the catalog service over HTTP/JSON. Calls run through a
// circuit breaker so a flapping catalog fails fast instead of stalling every
// page interaction.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:    "catalog",
			Timeout: 15 * time.Second,
			// a 404 is a valid answer, not a catalog outage
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, domain.ErrProductNotFound)
			},
		}),
	}
}

// FetchAll returns every product, optionally filtered by category.
func (c *Client) FetchAll(ctx context.Context, category string) ([]domain.Product, error) {
	u := c.baseURL + "/api/products"
	if category != "" {
		u += "?category=" + url.QueryEscape(category)
	}

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// FetchOne returns a single product by id, or domain.ErrProductNotFound.
func (c *Client) FetchOne(ctx context.Context, id int64) (domain.Product, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/api/products/%d", c.baseURL, id))
	if err != nil {
		return domain.Product{}, err
	}

	var product domain.Product
	if err := json.Unmarshal(body, &product); err != nil {
		return domain.Product{}, fmt.Errorf("decode product: %w", err)
	}
	return product, nil
}

// get performs the request through the breaker and unwraps the envelope,
// returning the raw data payload.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("catalog request failed: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read catalog response: %w", err)
		}

		if resp.StatusCode == http.StatusNotFound {
			return nil, domain.ErrProductNotFound
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
		}

		var env envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("decode catalog envelope: %w", err)
		}
		if env.Message != "success" {
			return nil, fmt.Errorf("catalog error: %s", env.Error)
		}
		return env.Data, nil
	})
}
