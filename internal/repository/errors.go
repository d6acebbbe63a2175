// internal/repository/errors.go
package repository

import (
	"errors"
	"fmt"
)

// Typed outcomes surfaced to the caller-facing layer. Anything else coming
// out of a repository is a store failure wrapped by storeErr.
var (
	ErrNotFound     = errors.New("record not found")
	ErrConflict     = errors.New("record already exists")
	ErrLimitReached = errors.New("promo usage limit reached")
)

func storeErr(op string, err error) error {
	return fmt.Errorf("store %s: %w", op, err)
}
