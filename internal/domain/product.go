package domain

import "errors"

// Product is a catalog record as served by the catalog API. Immutable from
// the client's point of view within a single page load.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
}

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrStoreUnavailable = errors.New("state store unavailable")
)
