// Package kv defines the key-value slot the expense store persists into.
// Implementations live in the sub-packages, one per backend.
package kv

import (
	"context"
	"errors"
)

// ErrInvalidKey is returned by backends that cannot represent a key.
var ErrInvalidKey = errors.New("invalid key")

// Ports for storage adapters.
type (
	Getter interface {
		// Get returns the value under key. found is false when the key is
		// absent; that is not an error.
		Get(ctx context.Context, key string) (value []byte, found bool, err error)
	}

	Setter interface {
		// Set replaces the whole value under key.
		Set(ctx context.Context, key string, value []byte) error
		// Remove deletes key. Removing an absent key is not an error.
		Remove(ctx context.Context, key string) error
	}

	Store interface {
		Getter
		Setter
		Close() error
	}
)

// Pinger is implemented by backends that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
