package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/happyshop/storefront/internal/catalog"
	"github.com/happyshop/storefront/internal/domain"
	"github.com/happyshop/storefront/internal/kv"
)

// Event describes a completed cart mutation, emitted after the new state has
// been persisted. The view layer subscribes to keep badges and fragments in
// step with the engine.
type Event struct {
	OpenDrawer bool
	Toast      string
}

type Listener func(Event)

// Engine owns the cart collection and its invariants: at most one line per
// product id, quantity always >= 1, insertion order preserved. Every mutation
// writes the store before notifying, so a reload immediately after any
// mutation sees the new state.
type Engine struct {
	store   kv.Store
	catalog *catalog.Cache
	log     zerolog.Logger

	mu       sync.Mutex
	lines    []domain.CartLine
	degraded bool // store failed; serve in-memory for the rest of the session

	onChange Listener
}

func NewEngine(store kv.Store, cache *catalog.Cache, log zerolog.Logger) *Engine {
	e := &Engine{
		store:   store,
		catalog: cache,
		log:     log,
	}
	e.load()
	return e
}

// SetListener registers the change hook. A nil listener disables notification.
func (e *Engine) SetListener(fn Listener) {
	e.mu.Lock()
	e.onChange = fn
	e.mu.Unlock()
}

// load reads the persisted cart. Absent or malformed data yields an empty
// cart; corruption is logged, never propagated.
func (e *Engine) load() {
	data, err := e.store.Load(context.Background(), kv.KeyCart)
	if err != nil {
		if !errors.Is(err, kv.ErrKeyNotFound) {
			e.log.Warn().Err(err).Msg("cart load failed, starting empty")
		}
		return
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		e.log.Warn().Err(err).Msg("persisted cart is corrupt, starting empty")
		return
	}
	// drop anything a buggy writer may have left behind
	for _, l := range lines {
		if l.Quantity >= 1 {
			e.lines = append(e.lines, l)
		}
	}
}

// Add puts one unit of the product in the cart. The product is resolved via
// the catalog cache with an individual-lookup fallback; if it cannot be
// resolved the cart is left untouched and domain.ErrProductNotFound (or the
// network error) is returned.
func (e *Engine) Add(ctx context.Context, productID int64) error {
	product, err := e.catalog.Resolve(ctx, productID)
	if err != nil {
		return fmt.Errorf("resolve product %d: %w", productID, err)
	}

	e.mu.Lock()
	if i := e.indexOf(productID); i >= 0 {
		e.lines[i].Quantity++
	} else {
		e.lines = append(e.lines, domain.NewCartLine(product))
	}
	e.persistLocked(ctx)
	fn := e.onChange
	e.mu.Unlock()

	if fn != nil {
		fn(Event{OpenDrawer: true, Toast: product.Name + " added to cart!"})
	}
	return nil
}

// UpdateQuantity adjusts a line by delta. Unknown ids are a no-op; a result
// of zero or less removes the line.
func (e *Engine) UpdateQuantity(ctx context.Context, productID int64, delta int) {
	e.mu.Lock()
	i := e.indexOf(productID)
	if i < 0 {
		e.mu.Unlock()
		return
	}
	e.lines[i].Quantity += delta
	if e.lines[i].Quantity <= 0 {
		e.lines = append(e.lines[:i], e.lines[i+1:]...)
	}
	e.persistLocked(ctx)
	fn := e.onChange
	e.mu.Unlock()

	if fn != nil {
		fn(Event{})
	}
}

// Remove deletes the line if present. Removal is idempotent.
func (e *Engine) Remove(ctx context.Context, productID int64) {
	e.mu.Lock()
	i := e.indexOf(productID)
	if i < 0 {
		e.mu.Unlock()
		return
	}
	e.lines = append(e.lines[:i], e.lines[i+1:]...)
	e.persistLocked(ctx)
	fn := e.onChange
	e.mu.Unlock()

	if fn != nil {
		fn(Event{})
	}
}

// Clear empties the cart. Called after a confirmed order submission.
func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	e.lines = nil
	e.persistLocked(ctx)
	fn := e.onChange
	e.mu.Unlock()

	if fn != nil {
		fn(Event{})
	}
}

// Lines returns a copy of the cart in insertion order.
func (e *Engine) Lines() []domain.CartLine {
	e.mu.Lock()
	defer e.mu.Unlock()
	cp := make([]domain.CartLine, len(e.lines))
	copy(cp, e.lines)
	return cp
}

// Get returns the line for a product id, if any.
func (e *Engine) Get(productID int64) (domain.CartLine, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i := e.indexOf(productID); i >= 0 {
		return e.lines[i], true
	}
	return domain.CartLine{}, false
}

// Count is the badge number: the sum of quantities.
func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	total := 0
	for _, l := range e.lines {
		total += l.Quantity
	}
	return total
}

// Total accumulates quantity*price unrounded; rounding is a display concern.
func (e *Engine) Total() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	var total float64
	for _, l := range e.lines {
		total += l.Subtotal()
	}
	return total
}

// FormatTotal renders a total for display, e.g. "$59.98".
func FormatTotal(total float64) string {
	return fmt.Sprintf("$%.2f", total)
}

func (e *Engine) indexOf(productID int64) int {
	for i, l := range e.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// persistLocked writes the current cart before the mutation returns. A store
// failure downgrades the engine to in-memory for the rest of the session.
func (e *Engine) persistLocked(ctx context.Context) {
	data, err := json.Marshal(e.lines)
	if err != nil {
		e.log.Error().Err(err).Msg("marshal cart failed")
		return
	}
	if err := e.store.Save(ctx, kv.KeyCart, data); err != nil {
		if !e.degraded {
			e.log.Warn().Err(err).Msg("cart persistence unavailable, continuing in memory")
			e.degraded = true
		}
	}
}
