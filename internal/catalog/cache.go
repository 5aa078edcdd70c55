package catalog

import (
	"context"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/happyshop/storefront/internal/domain"
)

// Fetcher is what the cache needs from the catalog client.
type Fetcher interface {
	FetchAll(ctx context.Context, category string) ([]domain.Product, error)
	FetchOne(ctx context.Context, id int64) (domain.Product, error)
}

// Cache is the per-page-load product snapshot, indexed by id and kept in
// fetch order. It primes once; consumers needing a product it never saw fall
// back to Resolve, which does an individual lookup.
//
// A slow individual lookup can resolve after a newer user action and is
// applied to the cache as-is. The data is re-derivable from the catalog, so
// the occasional reorder is accepted rather than guarded.
type Cache struct {
	client Fetcher
	log    zerolog.Logger

	mu     sync.RWMutex
	byID   map[int64]domain.Product
	order  []int64
	primed bool

	sfg singleflight.Group // dedupes concurrent lookups for the same id
}

func NewCache(client Fetcher, log zerolog.Logger) *Cache {
	return &Cache{
		client: client,
		log:    log,
		byID:   make(map[int64]domain.Product),
	}
}

// Prime fetches the full catalog once. On failure the cache stays empty and
// dependent views render their empty state; the error is returned for
// logging, not propagation.
func (c *Cache) Prime(ctx context.Context) error {
	c.mu.Lock()
	if c.primed {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	products, err := c.client.FetchAll(ctx, "")
	if err != nil {
		c.log.Warn().Err(err).Msg("catalog prime failed, cache stays empty")
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range products {
		if _, ok := c.byID[p.ID]; !ok {
			c.order = append(c.order, p.ID)
		}
		c.byID[p.ID] = p
	}
	c.primed = true
	return nil
}

// Get returns a cached product without touching the network.
func (c *Cache) Get(id int64) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byID[id]
	return p, ok
}

// Resolve returns the product from cache, or fetches it individually and
// caches the result. Returns domain.ErrProductNotFound when the catalog does
// not know the id either.
func (c *Cache) Resolve(ctx context.Context, id int64) (domain.Product, error) {
	if p, ok := c.Get(id); ok {
		return p, nil
	}

	v, err, _ := c.sfg.Do(cacheKey(id), func() (interface{}, error) {
		p, err := c.client.FetchOne(ctx, id)
		if err != nil {
			return domain.Product{}, err
		}

		c.mu.Lock()
		if _, ok := c.byID[p.ID]; !ok {
			c.order = append(c.order, p.ID)
		}
		c.byID[p.ID] = p
		c.mu.Unlock()
		return p, nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	return v.(domain.Product), nil
}

// All returns every cached product in fetch order.
func (c *Cache) All() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	products := make([]domain.Product, 0, len(c.order))
	for _, id := range c.order {
		products = append(products, c.byID[id])
	}
	return products
}

// ByCategory filters the cached snapshot.
func (c *Cache) ByCategory(category string) []domain.Product {
	var filtered []domain.Product
	for _, p := range c.All() {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}

func cacheKey(id int64) string {
	return "product:" + strconv.FormatInt(id, 10)
}
