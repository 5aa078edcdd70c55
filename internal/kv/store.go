package kv

import (
	"context"
	"errors"
)

// Keys used by the storefront engines.
const (
	KeyCart     = "cart"
	KeyWishlist = "wishlist"
)

// Store is the client-scoped persistence contract. Save must be atomic from a
// reader's point of view: a concurrent Load never observes a partial write.
// Consumers define this interface, not the backing implementation.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

var ErrKeyNotFound = errors.New("key not found")
