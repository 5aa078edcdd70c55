package domain

// CartLine is one cart entry. Name, price and image are snapshotted from the
// product at add-time and are not refreshed if the catalog record changes
// later; the cart shows what the user saw when they added it.
type CartLine struct {
	ProductID   int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	Quantity    int     `json:"quantity"`
}

// NewCartLine snapshots a product into a fresh line with quantity 1.
func NewCartLine(p Product) CartLine {
	return CartLine{
		ProductID:   p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
		Rating:      p.Rating,
		Quantity:    1,
	}
}

func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}
