// internal/kvstore/kvstore.go
package kvstore

import "context"

// Store is the contract with the key-value store collaborator. Records are
// flat field maps namespaced by "<entity>:<id>" keys; a parallel
// "<entity>:counter" key holds the id-allocator state.
//
// Every method maps onto a single store round-trip. The store serializes
// individual operations but offers no multi-operation transactions, so
// nothing built on top of this interface is atomic across more than one
// call except the two increment primitives.
type Store interface {
	// Increment atomically increments the integer value at a plain key,
	// creating it at 0 first when absent, and returns the new value.
	Increment(ctx context.Context, key string) (int64, error)

	// IncrementField atomically increments one integer field of a record.
	IncrementField(ctx context.Context, key, field string) (int64, error)

	// SetFields writes the given fields into the record at key. Fields not
	// mentioned keep their stored value (merge at field level, overwrite at
	// value level).
	SetFields(ctx context.Context, key string, fields map[string]string) error

	// GetFields loads the full record at key. A missing record yields an
	// empty map and no error.
	GetFields(ctx context.Context, key string) (map[string]string, error)

	// DeleteKey removes the record at key and reports whether it existed.
	DeleteKey(ctx context.Context, key string) (bool, error)

	// KeysWithPrefix enumerates every key starting with prefix, in no
	// particular order.
	KeysWithPrefix(ctx context.Context, prefix string) ([]string, error)

	// ExistsKey reports whether a record exists at key.
	ExistsKey(ctx context.Context, key string) (bool, error)
}
