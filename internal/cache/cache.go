// Package cache stores computed balances between ledger writes.
package cache

import (
	"context"
	"fmt"
)

// Cache is a JSON value cache used for pair and group balances.
//
// Every key has a generation that Invalidate advances. A reader takes the
// generation before loading from storage and stores with SetIfVersion, so a
// result computed before a concurrent write is never cached after that
// write's invalidation.
type Cache interface {
	// Get decodes the value at key into dst. It reports false on a miss.
	Get(ctx context.Context, key string, dst any) (bool, error)

	// Version returns the current generation of key.
	Version(ctx context.Context, key string) (int64, error)

	// SetIfVersion stores v at key if its generation is still version.
	// It reports whether v was stored.
	SetIfVersion(ctx context.Context, key string, version int64, v any) (bool, error)

	// Invalidate removes keys and advances their generations. Missing keys
	// are ignored.
	Invalidate(ctx context.Context, keys ...string) error
}

// PairKey is the key of self's balance against other. It is not symmetric.
func PairKey(selfID, otherID string) string {
	return fmt.Sprintf("balance:pair:%s:%s", selfID, otherID)
}

// GroupKey is the key of a group's folded balances.
func GroupKey(groupID string) string {
	return fmt.Sprintf("balance:group:%s", groupID)
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string, any) (bool, error)                { return false, nil }
func (Nop) Version(context.Context, string) (int64, error)                { return 0, nil }
func (Nop) SetIfVersion(context.Context, string, int64, any) (bool, error) { return false, nil }
func (Nop) Invalidate(context.Context, ...string) error                   { return nil }
