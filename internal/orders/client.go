package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Item is one submitted order line: the id, quantity and the price the user
// saw in the cart.
type Item struct {
	ID       int64   `json:"id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Address is the shipping address collected on the checkout form.
type Address struct {
	Name    string `json:"name,omitempty"`
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

// Submission is the POST /api/orders payload.
type Submission struct {
	Items           []Item  `json:"items"`
	Total           float64 `json:"total"`
	ShippingAddress Address `json:"shippingAddress"`
}

// Confirmation is the order service's success response.
type Confirmation struct {
	Message     string `json:"message"`
	OrderNumber string `json:"orderNumber"`
	OrderID     int64  `json:"orderId"`
}

// Client submits orders to the order service over HTTP/JSON.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Submit posts the order. Any transport or non-2xx failure is returned to the
// caller so it can surface a visible failure: an order is never silently
// treated as placed.
func (c *Client) Submit(ctx context.Context, sub Submission) (Confirmation, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return Confirmation{}, fmt.Errorf("marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders", bytes.NewReader(body))
	if err != nil {
		return Confirmation{}, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Confirmation{}, fmt.Errorf("order submission failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Confirmation{}, fmt.Errorf("order service returned status %d", resp.StatusCode)
	}

	var conf Confirmation
	if err := json.NewDecoder(resp.Body).Decode(&conf); err != nil {
		return Confirmation{}, fmt.Errorf("decode order confirmation: %w", err)
	}
	return conf, nil
}
