// internal/repository/allocator.go
package repository

import (
	"context"

	"github.com/vapeshop/vapeshop-backend/internal/kvstore"
)

// Allocator issues unique monotonically increasing integer ids per entity
// type, starting at 1, backed by the store's atomic increment on the
// "<entity>:counter" key. A crash between allocation and the following save
// leaves a gap in the sequence but never a duplicate id.
type Allocator struct {
	store kvstore.Store
}

func NewAllocator(store kvstore.Store) *Allocator {
	return &Allocator{store: store}
}

func (a *Allocator) Next(ctx context.Context, entity string) (int64, error) {
	id, err := a.store.Increment(ctx, entity+":counter")
	if err != nil {
		return 0, storeErr("increment", err)
	}
	return id, nil
}
