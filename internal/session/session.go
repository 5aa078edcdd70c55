// Package session owns the lifecycle of one page load: it builds the state
// store, engines and synchronizer, primes the catalog when the page needs it,
// and performs the first render. There is no module-level mutable state; the
// Session instance is the single owner.
package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/happyshop/storefront/internal/cart"
	"github.com/happyshop/storefront/internal/catalog"
	"github.com/happyshop/storefront/internal/kv"
	"github.com/happyshop/storefront/internal/orders"
	"github.com/happyshop/storefront/internal/view"
	"github.com/happyshop/storefront/internal/wishlist"
)

type Config struct {
	Store    kv.Store
	Catalog  catalog.Fetcher
	Orders   orders.Submitter
	Notifier view.Notifier
	Logger   zerolog.Logger
	Page     view.Page
}

// dealWindow is the rolling deal-of-the-day horizon.
const dealWindow = 48 * time.Hour

type Session struct {
	Cart     *cart.Engine
	Wishlist *wishlist.Engine
	Catalog  *catalog.Cache
	View     *view.Synchronizer
	Checkout *orders.Service
	Deal     *view.Countdown

	log zerolog.Logger
}

// Start wires a session for the given page. Persistence failures degrade to
// in-memory state; a catalog failure leaves the cache empty and the page
// renders its empty state. Neither aborts the session.
func Start(ctx context.Context, cfg Config) *Session {
	store := cfg.Store
	if store == nil {
		store = kv.NewMemoryStore()
	}

	cache := catalog.NewCache(cfg.Catalog, cfg.Logger)
	if pageNeedsCatalog(cfg.Page) {
		_ = cache.Prime(ctx) // already logged; empty cache renders empty views
	}
	if cfg.Page.ProductID != 0 {
		// deep link straight to a detail page: make sure that one product is
		// resolvable even if the full prime failed
		if _, err := cache.Resolve(ctx, cfg.Page.ProductID); err != nil {
			cfg.Logger.Warn().Err(err).Int64("product_id", cfg.Page.ProductID).Msg("detail product unavailable")
		}
	}

	cartEngine := cart.NewEngine(store, cache, cfg.Logger)
	wishlistEngine := wishlist.NewEngine(store, cfg.Logger)
	sync := view.NewSynchronizer(cartEngine, wishlistEngine, cache, cfg.Notifier, cfg.Logger)

	s := &Session{
		Cart:     cartEngine,
		Wishlist: wishlistEngine,
		Catalog:  cache,
		View:     sync,
		Deal:     view.NewCountdown(dealWindow, time.Now()),
		log:      cfg.Logger,
	}
	if cfg.Orders != nil {
		s.Checkout = orders.NewService(cfg.Orders, cartEngine, cfg.Logger)
	}

	sync.SetPage(cfg.Page)
	return s
}

// Navigate switches pages: the drawer closes and the new page's fragments
// render from current state.
func (s *Session) Navigate(page view.Page) {
	s.View.SetPage(page)
}

// Close tears the session down. Engines stop notifying the view.
func (s *Session) Close() {
	s.Cart.SetListener(nil)
	s.Wishlist.SetListener(nil)
}

func pageNeedsCatalog(p view.Page) bool {
	for _, f := range p.Fragments {
		switch f {
		case view.FragmentGrid, view.FragmentDetail, view.FragmentWishlist:
			return true
		}
	}
	return false
}
