package orders

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/happyshop/storefront/internal/cart"
)

var ErrEmptyCart = errors.New("cart is empty")

// Submitter is what the checkout flow needs from the order client.
type Submitter interface {
	Submit(ctx context.Context, sub Submission) (Confirmation, error)
}

// Service drives checkout: snapshot the cart, submit it, and clear the cart
// only once the order service has confirmed.
type Service struct {
	client Submitter
	cart   *cart.Engine
	log    zerolog.Logger
}

func NewService(client Submitter, c *cart.Engine, log zerolog.Logger) *Service {
	return &Service{client: client, cart: c, log: log}
}

// Place submits the current cart. On failure the cart is left untouched so
// the user can retry.
func (s *Service) Place(ctx context.Context, addr Address) (Confirmation, error) {
	lines := s.cart.Lines()
	if len(lines) == 0 {
		return Confirmation{}, ErrEmptyCart
	}

	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, Item{ID: l.ProductID, Quantity: l.Quantity, Price: l.Price})
	}

	conf, err := s.client.Submit(ctx, Submission{
		Items:           items,
		Total:           s.cart.Total(),
		ShippingAddress: addr,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("order submission failed")
		return Confirmation{}, err
	}

	s.cart.Clear(ctx)
	s.log.Info().Str("order_number", conf.OrderNumber).Msg("order placed")
	return conf, nil
}
