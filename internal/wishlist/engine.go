package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/happyshop/storefront/internal/kv"
)

// Event describes a completed toggle, emitted after persistence.
type Event struct {
	ProductID int64
	Added     bool
	Toast     string
}

type Listener func(Event)

// Engine owns wishlist membership: a duplicate-free, insertion-ordered set of
// product ids. Toggle is the only mutation, mirroring the single heart-icon
// affordance in the UI.
type Engine struct {
	store kv.Store
	log   zerolog.Logger

	mu       sync.Mutex
	ids      []int64
	members  map[int64]struct{}
	degraded bool

	onChange Listener
}

func NewEngine(store kv.Store, log zerolog.Logger) *Engine {
	e := &Engine{
		store:   store,
		log:     log,
		members: make(map[int64]struct{}),
	}
	e.load()
	return e
}

func (e *Engine) SetListener(fn Listener) {
	e.mu.Lock()
	e.onChange = fn
	e.mu.Unlock()
}

func (e *Engine) load() {
	data, err := e.store.Load(context.Background(), kv.KeyWishlist)
	if err != nil {
		if !errors.Is(err, kv.ErrKeyNotFound) {
			e.log.Warn().Err(err).Msg("wishlist load failed, starting empty")
		}
		return
	}
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		e.log.Warn().Err(err).Msg("persisted wishlist is corrupt, starting empty")
		return
	}
	for _, id := range ids {
		if _, ok := e.members[id]; ok {
			continue // set semantics even if an old writer persisted a dup
		}
		e.ids = append(e.ids, id)
		e.members[id] = struct{}{}
	}
}

// Toggle flips membership for a product id and reports whether it was added.
func (e *Engine) Toggle(ctx context.Context, productID int64) bool {
	e.mu.Lock()
	_, member := e.members[productID]
	if member {
		delete(e.members, productID)
		for i, id := range e.ids {
			if id == productID {
				e.ids = append(e.ids[:i], e.ids[i+1:]...)
				break
			}
		}
	} else {
		e.members[productID] = struct{}{}
		e.ids = append(e.ids, productID)
	}
	e.persistLocked(ctx)
	fn := e.onChange
	e.mu.Unlock()

	added := !member
	if fn != nil {
		toast := "Added to wishlist"
		if !added {
			toast = "Removed from wishlist"
		}
		fn(Event{ProductID: productID, Added: added, Toast: toast})
	}
	return added
}

func (e *Engine) Contains(productID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.members[productID]
	return ok
}

func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.ids)
}

// IDs returns the membership in insertion order.
func (e *Engine) IDs() []int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	cp := make([]int64, len(e.ids))
	copy(cp, e.ids)
	return cp
}

func (e *Engine) persistLocked(ctx context.Context) {
	ids := e.ids
	if ids == nil {
		ids = []int64{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		e.log.Error().Err(err).Msg("marshal wishlist failed")
		return
	}
	if err := e.store.Save(ctx, kv.KeyWishlist, data); err != nil {
		if !e.degraded {
			e.log.Warn().Err(err).Msg("wishlist persistence unavailable, continuing in memory")
			e.degraded = true
		}
	}
}
