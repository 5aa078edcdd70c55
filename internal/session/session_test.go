package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happyshop/storefront/internal/domain"
	"github.com/happyshop/storefront/internal/kv"
	"github.com/happyshop/storefront/internal/view"
)

type stubFetcher struct {
	products []domain.Product
	err      error
	allCalls int
}

func (s *stubFetcher) FetchAll(context.Context, string) ([]domain.Product, error) {
	s.allCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func (s *stubFetcher) FetchOne(_ context.Context, id int64) (domain.Product, error) {
	if s.err != nil {
		return domain.Product{}, s.err
	}
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

var catalogFixture = []domain.Product{
	{ID: 1, Name: "Block Set", Category: "Toys", Price: 29.99},
	{ID: 3, Name: "Fountain Pen", Category: "Gifts", Price: 89.99},
}

func TestStart_PrimesCatalogAndRendersFirstFrame(t *testing.T) {
	fetcher := &stubFetcher{products: catalogFixture}
	s := Start(context.Background(), Config{
		Store:   kv.NewMemoryStore(),
		Catalog: fetcher,
		Logger:  zerolog.Nop(),
		Page:    view.Page{Name: "home", Fragments: []view.Fragment{view.FragmentGrid, view.FragmentCartDrawer}},
	})
	defer s.Close()

	assert.Equal(t, 1, fetcher.allCalls)
	assert.Equal(t, 2, s.Catalog.Len())

	grid, ok := s.View.HTML(view.FragmentGrid)
	require.True(t, ok)
	assert.Contains(t, grid, "Block Set")
	assert.Equal(t, "0", s.View.CartBadge())
	assert.Equal(t, view.DrawerClosed, s.View.Drawer())
}

func TestStart_CheckoutPageSkipsCatalogPrime(t *testing.T) {
	fetcher := &stubFetcher{products: catalogFixture}
	s := Start(context.Background(), Config{
		Store:   kv.NewMemoryStore(),
		Catalog: fetcher,
		Logger:  zerolog.Nop(),
		Page:    view.Page{Name: "checkout", Fragments: []view.Fragment{view.FragmentCheckout}},
	})
	defer s.Close()

	assert.Equal(t, 0, fetcher.allCalls)
}

func TestStart_DeepLinkResolvesDetailProduct(t *testing.T) {
	fetcher := &stubFetcher{products: catalogFixture, err: errors.New("list endpoint down")}
	// FetchAll fails but FetchOne works: simulate by clearing the error for
	// individual lookups
	listBroken := &listOnlyBroken{inner: fetcher}

	s := Start(context.Background(), Config{
		Store:   kv.NewMemoryStore(),
		Catalog: listBroken,
		Logger:  zerolog.Nop(),
		Page:    view.Page{Name: "product", Fragments: []view.Fragment{view.FragmentDetail}, ProductID: 3},
	})
	defer s.Close()

	detail, ok := s.View.HTML(view.FragmentDetail)
	require.True(t, ok)
	assert.Contains(t, detail, "Fountain Pen")
}

type listOnlyBroken struct {
	inner *stubFetcher
}

func (l *listOnlyBroken) FetchAll(ctx context.Context, category string) ([]domain.Product, error) {
	l.inner.allCalls++
	return nil, errors.New("list endpoint down")
}

func (l *listOnlyBroken) FetchOne(ctx context.Context, id int64) (domain.Product, error) {
	for _, p := range l.inner.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

func TestStart_CatalogFailureRendersEmptyGrid(t *testing.T) {
	s := Start(context.Background(), Config{
		Store:   kv.NewMemoryStore(),
		Catalog: &stubFetcher{err: errors.New("network down")},
		Logger:  zerolog.Nop(),
		Page:    view.Page{Name: "home", Fragments: []view.Fragment{view.FragmentGrid}},
	})
	defer s.Close()

	grid, ok := s.View.HTML(view.FragmentGrid)
	require.True(t, ok)
	assert.Contains(t, grid, "No products found")
}

func TestStart_NilStoreDegradesToMemory(t *testing.T) {
	s := Start(context.Background(), Config{
		Catalog: &stubFetcher{products: catalogFixture},
		Logger:  zerolog.Nop(),
		Page:    view.Page{Name: "home", Fragments: []view.Fragment{view.FragmentGrid, view.FragmentCartDrawer}},
	})
	defer s.Close()

	require.NoError(t, s.Cart.Add(context.Background(), 1))
	assert.Equal(t, "1", s.View.CartBadge())
}

func TestNavigate_ClosesDrawerAndSwitchesFragments(t *testing.T) {
	s := Start(context.Background(), Config{
		Store:   kv.NewMemoryStore(),
		Catalog: &stubFetcher{products: catalogFixture},
		Logger:  zerolog.Nop(),
		Page:    view.Page{Name: "home", Fragments: []view.Fragment{view.FragmentGrid, view.FragmentCartDrawer}},
	})
	defer s.Close()

	require.NoError(t, s.Cart.Add(context.Background(), 1))
	assert.Equal(t, view.DrawerOpen, s.View.Drawer())

	s.Navigate(view.Page{Name: "checkout", Fragments: []view.Fragment{view.FragmentCheckout}})
	assert.Equal(t, view.DrawerClosed, s.View.Drawer())

	_, ok := s.View.HTML(view.FragmentGrid)
	assert.False(t, ok)
	checkout, ok := s.View.HTML(view.FragmentCheckout)
	require.True(t, ok)
	assert.Contains(t, checkout, "Block Set")
}

func TestSessionStatePersistsAcrossSessions(t *testing.T) {
	store := kv.NewMemoryStore()
	page := view.Page{Name: "home", Fragments: []view.Fragment{view.FragmentGrid, view.FragmentCartDrawer}}

	first := Start(context.Background(), Config{
		Store:   store,
		Catalog: &stubFetcher{products: catalogFixture},
		Logger:  zerolog.Nop(),
		Page:    page,
	})
	require.NoError(t, first.Cart.Add(context.Background(), 1))
	first.Wishlist.Toggle(context.Background(), 3)
	first.Close()

	second := Start(context.Background(), Config{
		Store:   store,
		Catalog: &stubFetcher{products: catalogFixture},
		Logger:  zerolog.Nop(),
		Page:    page,
	})
	defer second.Close()

	assert.Equal(t, "1", second.View.CartBadge())
	assert.Equal(t, "1", second.View.WishlistBadge())
	assert.True(t, second.Wishlist.Contains(3))
	line, ok := second.Cart.Get(1)
	require.True(t, ok)
	assert.Equal(t, 29.99, line.Price)
}

func TestStart_DealClockRunsFromSessionStart(t *testing.T) {
	s := Start(context.Background(), Config{
		Store:   kv.NewMemoryStore(),
		Catalog: &stubFetcher{products: catalogFixture},
		Logger:  zerolog.Nop(),
		Page:    view.Page{Name: "checkout", Fragments: []view.Fragment{view.FragmentCheckout}},
	})
	defer s.Close()

	require.NotNil(t, s.Deal)
	r := s.Deal.Tick(time.Now().Add(time.Second))
	assert.Equal(t, "01", r.Days)
	assert.Equal(t, "23", r.Hours)
}
