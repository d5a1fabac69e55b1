// Package namecache holds resolved user display names between lookups.
//
// The in-memory backend lives for a single report run; the redis backend
// lets resolved names survive across runs so repeat reports skip most
// user lookups entirely.
package namecache

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an id has no cached name.
var ErrNotFound = errors.New("namecache: name not found")

// Cache maps user ids to resolved display names.
type Cache interface {
	Get(ctx context.Context, userID string) (string, error)
	Set(ctx context.Context, userID, name string) error
	Close() error
}
